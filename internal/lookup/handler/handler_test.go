package handler

import (
	"context"
	"testing"
	"time"

	"github.com/alraulpm-lang/checador/internal/lookup/catalog"
	"github.com/alraulpm-lang/checador/internal/lookup/messages"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/alraulpm-lang/checador/internal/lookup/view"
)

var display = model.DisplayConfig{Currency: "$", PlaceholderImage: "placeholder.png"}

func product(code, name, price, image string) model.Record {
	return model.Record{
		Values:  map[string]string{"CODE": code, "NOMBRE": name, "PRECIO": price},
		Product: model.Product{Code: code, Name: name, Price: price, ImageURL: image},
	}
}

func newLoadedHandler(records ...model.Record) (*Handler, *view.Controller, *catalog.Catalog) {
	cat := catalog.New("CODE")
	cat.Load(records)
	vc := view.NewController()
	return New(cat, vc, display), vc, cat
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"5", "$5.00"},
		{"", "$0.00"},
		{"  ", "$0.00"},
		{"45.5", "$45.50"},
		{"12.345", "$12.35"},
		{" 7 ", "$7.00"},
		{"abc", "$0.00"},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			if got := FormatPrice(tc.raw, "$"); got != tc.want {
				t.Fatalf("FormatPrice(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestHandleFoundShowsDetails(t *testing.T) {
	h, vc, _ := newLoadedHandler(product("123", "A", "5", ""))

	if outcome := h.Handle(model.NewDecodeEvent("test", "123")); outcome != model.OutcomeFound {
		t.Fatalf("want found, got %s", outcome)
	}
	if h.State() != Showing {
		t.Fatalf("expected showing state")
	}
	snap := vc.Snapshot()
	if snap.Display == nil {
		t.Fatalf("expected display state")
	}
	want := model.DisplayState{Code: "123", Name: "A", Price: "$5.00", ImageURL: "placeholder.png"}
	if *snap.Display != want {
		t.Fatalf("want %+v, got %+v", want, *snap.Display)
	}
}

func TestHandleMissStaysAndReportsCode(t *testing.T) {
	h, vc, _ := newLoadedHandler(product("123", "A", "5", ""))

	if outcome := h.Handle(model.NewDecodeEvent("test", "999")); outcome != model.OutcomeNotFound {
		t.Fatalf("want not found, got %s", outcome)
	}
	if h.State() != Scanning {
		t.Fatalf("expected to remain scanning")
	}
	fb := vc.Snapshot().Feedback
	if fb.Severity != model.SeverityError || fb.Message != "Product 999 not found." {
		t.Fatalf("unexpected feedback %+v", fb)
	}
}

func TestHandleMissWhileShowingKeepsProduct(t *testing.T) {
	h, vc, _ := newLoadedHandler(product("1", "A", "5", ""))
	h.Handle(model.NewDecodeEvent("test", "1"))
	h.Handle(model.NewDecodeEvent("test", "2"))

	if h.State() != Showing {
		t.Fatalf("a miss must not leave the details view")
	}
	if got := vc.Snapshot().Display.Code; got != "1" {
		t.Fatalf("displayed product changed to %s", got)
	}
}

func TestConsecutiveScansWhileShowing(t *testing.T) {
	h, vc, _ := newLoadedHandler(product("1", "A", "5", "a.png"), product("2", "B", "7.5", "b.png"))

	h.Handle(model.NewDecodeEvent("test", "1"))
	if got := vc.Snapshot().Display; got.Name != "A" || got.ImageURL != "a.png" {
		t.Fatalf("unexpected first display %+v", got)
	}
	h.Handle(model.NewDecodeEvent("test", "2"))
	got := vc.Snapshot().Display
	if got.Name != "B" || got.Price != "$7.50" {
		t.Fatalf("second scan did not replace the display: %+v", got)
	}
	if h.State() != Showing {
		t.Fatalf("expected showing")
	}
}

func TestBackReturnsToScanning(t *testing.T) {
	h, _, _ := newLoadedHandler(product("1", "A", "5", ""))
	h.Back()
	if h.State() != Scanning {
		t.Fatalf("back from scanning must stay scanning")
	}
	h.Handle(model.NewDecodeEvent("test", "1"))
	h.Back()
	if h.State() != Scanning {
		t.Fatalf("back must return to scanning")
	}
}

func TestHandleBeforeLoadReportsLoading(t *testing.T) {
	cat := catalog.New("CODE")
	vc := view.NewController()
	h := New(cat, vc, display)

	if outcome := h.Handle(model.NewDecodeEvent("test", "1")); outcome != model.OutcomeLoading {
		t.Fatalf("want loading, got %s", outcome)
	}
	fb := vc.Snapshot().Feedback
	if fb.Message != messages.English.StillLoading || fb.Severity != model.SeverityInfo {
		t.Fatalf("unexpected feedback %+v", fb)
	}
}

func TestHandleAfterFailedLoadIsMiss(t *testing.T) {
	cat := catalog.New("CODE")
	cat.Fail()
	vc := view.NewController()
	h := New(cat, vc, display)

	if outcome := h.Handle(model.NewDecodeEvent("test", "1")); outcome != model.OutcomeNotFound {
		t.Fatalf("want not found, got %s", outcome)
	}
	if vc.Snapshot().Feedback.Severity != model.SeverityError {
		t.Fatalf("expected error feedback")
	}
}

func TestRunConsumesUntilClosed(t *testing.T) {
	h, vc, _ := newLoadedHandler(product("1", "A", "5", ""), product("2", "B", "6", ""))
	events := make(chan model.DecodeEvent, 3)
	events <- model.NewDecodeEvent("test", "1")
	events <- model.NewDecodeEvent("test", "404")
	events <- model.NewDecodeEvent("test", "2")
	close(events)

	done := make(chan struct{})
	go func() {
		h.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after channel close")
	}
	snap := vc.Snapshot()
	if snap.Display.Code != "2" {
		t.Fatalf("events processed out of order, display=%s", snap.Display.Code)
	}
	if snap.Feedback.Message != "Product 404 not found." {
		t.Fatalf("unexpected feedback %+v", snap.Feedback)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h, _, _ := newLoadedHandler()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx, make(chan model.DecodeEvent))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop on cancel")
	}
}

func TestHandleSpanishFeedback(t *testing.T) {
	cat := catalog.New("CODE")
	vc := view.NewController()
	h := New(cat, vc, model.DisplayConfig{Currency: "$", Language: "es"})

	h.Handle(model.NewDecodeEvent("test", "1"))
	if got := vc.Snapshot().Feedback.Message; got != messages.Spanish.StillLoading {
		t.Fatalf("unexpected loading feedback %q", got)
	}

	cat.Load([]model.Record{product("123", "A", "5", "")})
	h.Handle(model.NewDecodeEvent("test", "999"))
	if got := vc.Snapshot().Feedback.Message; got != "Producto 999 no encontrado." {
		t.Fatalf("unexpected miss feedback %q", got)
	}
}
