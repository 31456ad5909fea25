package errx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestKindsAndUnwrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		target error
		status int
	}{
		{"network status", Network(nil, 500), KindNetwork, ErrNetwork, http.StatusBadGateway},
		{"network transport", Network(errors.New("dial tcp: refused"), 0), KindNetwork, ErrNetwork, http.StatusBadGateway},
		{"empty catalog", EmptyCatalog(), KindEmptyCatalog, ErrEmptyCatalog, http.StatusBadGateway},
		{"lookup miss", LookupMiss("999"), KindLookupMiss, ErrLookupMiss, http.StatusNotFound},
		{"scanner init", ScannerInit("stdin", errors.New("closed")), KindScannerInit, ErrScannerInit, http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tc.err)
			if got := KindOf(wrapped); got != tc.kind {
				t.Fatalf("kind: want %s, got %s", tc.kind, got)
			}
			if !errors.Is(wrapped, tc.target) {
				t.Fatalf("expected errors.Is(%v, %v)", wrapped, tc.target)
			}
			if got := StatusOf(wrapped); got != tc.status {
				t.Fatalf("status: want %d, got %d", tc.status, got)
			}
		})
	}
}

func TestNetworkCarriesUpstreamStatus(t *testing.T) {
	err := Network(nil, 503)
	if err.Upstream != 503 {
		t.Fatalf("expected upstream 503, got %d", err.Upstream)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status in message, got %q", err.Error())
	}
}

func TestFeedbackMessages(t *testing.T) {
	if got := Feedback(LookupMiss("123")); got != "Product 123 not found." {
		t.Fatalf("unexpected miss feedback %q", got)
	}
	if got := Feedback(errors.New("boom")); got != SystemErrorMessage {
		t.Fatalf("unexpected fallback feedback %q", got)
	}
	if KindOf(errors.New("boom")) != KindSystem {
		t.Fatalf("plain errors must map to KindSystem")
	}
}

func TestWrapRedis(t *testing.T) {
	if WrapRedis(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
	if got := KindOf(WrapRedis(redis.ErrClosed)); got != KindScannerInit {
		t.Fatalf("closed client: want %s, got %s", KindScannerInit, got)
	}
	if got := StatusOf(WrapRedis(errors.New("timeout"))); got != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", got)
	}
}

type upstreamErr struct{ host string }

func (u *upstreamErr) Error() string { return "upstream " + u.host }

func TestAppErrorIsAndAs(t *testing.T) {
	cause := &upstreamErr{host: "docs.google.com"}
	err := Network(cause, 0)

	var got *upstreamErr
	if !errors.As(err, &got) || got.host != "docs.google.com" {
		t.Fatalf("expected to reach the wrapped cause, got %v", got)
	}
	if !err.Is(ErrNetwork) || err.Is(ErrEmptyCatalog) {
		t.Fatalf("Is must follow the wrapped chain")
	}

	var appErr *AppError
	if !err.As(&appErr) || appErr != err {
		t.Fatalf("As must yield the AppError itself")
	}

	outer := ScannerInit("redis", WrapRedis(errors.New("dial tcp: refused")))
	if !errors.As(outer, &appErr) || appErr.Kind != KindScannerInit {
		t.Fatalf("outermost AppError must win, got %+v", appErr)
	}
}
