package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alraulpm-lang/checador/internal/lookup/catalog"
	"github.com/alraulpm-lang/checador/internal/lookup/model"
	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

func newRegistry() *Registry {
	cat := catalog.New("CODIGO_BARRAS")
	cat.Load([]model.Record{
		{
			Values:  map[string]string{"CODIGO_BARRAS": "7501", "NOMBRE": "Cafe molido", "PRECIO": "45.5"},
			Product: model.Product{Code: "7501", Name: "Cafe molido", Price: "45.5"},
		},
		{
			Values:  map[string]string{"CODIGO_BARRAS": "7502", "NOMBRE": "Leche", "PRECIO": "22"},
			Product: model.Product{Code: "7502", Name: "Leche", Price: "22", Description: "para cafe"},
		},
	})
	return NewRegistry(cat, model.DisplayConfig{Currency: "$", PlaceholderImage: "none.png"})
}

func TestLookupProductTool(t *testing.T) {
	r := newRegistry()
	out, err := r.Invoke(context.Background(), LookupProductToolName, `{"code":"7501"}`)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	var got ProductDetails
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if got.Name != "Cafe molido" || got.Price != "$45.50" || got.ImageURL != "none.png" {
		t.Fatalf("unexpected details %+v", got)
	}
	if got.Fields["PRECIO"] != "45.5" {
		t.Fatalf("raw fields missing: %+v", got.Fields)
	}
}

func TestLookupProductToolErrors(t *testing.T) {
	r := newRegistry()
	for _, args := range []string{`{"code":"404"}`, `{"code":""}`, `{}`} {
		if _, err := r.Invoke(context.Background(), LookupProductToolName, args); err == nil {
			t.Fatalf("expected error for %s", args)
		}
	}
	if _, err := r.Invoke(context.Background(), "delete_product", `{}`); err == nil {
		t.Fatalf("expected unknown tool error")
	}
}

func TestLookupProductToolWhileLoading(t *testing.T) {
	r := NewRegistry(catalog.New("CODIGO_BARRAS"), model.DisplayConfig{Currency: "$"})
	if _, err := r.Invoke(context.Background(), LookupProductToolName, `{"code":"7501"}`); err == nil {
		t.Fatalf("expected loading error")
	}
}

func TestSearchProductTool(t *testing.T) {
	r := newRegistry()
	out, err := r.Invoke(context.Background(), SearchProductToolName, `{"query":"cafe"}`)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	var got SearchProductOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if got.Total != 2 || len(got.Products) != 2 {
		t.Fatalf("expected 2 results, got %+v", got)
	}

	out, err = r.Invoke(context.Background(), SearchProductToolName, `{"query":"cafe","max_results":1}`)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Total != 1 || got.Products[0].Code != "7501" {
		t.Fatalf("max_results not honored: %+v", got)
	}

	if _, err := r.Invoke(context.Background(), SearchProductToolName, `{"query":""}`); err == nil {
		t.Fatalf("expected error on empty query")
	}
}

func TestInfosSorted(t *testing.T) {
	infos, err := newRegistry().Infos(context.Background())
	if err != nil {
		t.Fatalf("infos: %v", err)
	}
	if len(infos) != 2 || infos[0].Name != LookupProductToolName || infos[1].Name != SearchProductToolName {
		t.Fatalf("unexpected infos %+v", infos)
	}
}

func TestInvokeReportsToCallbacks(t *testing.T) {
	var started, ended, failed []string
	h := callbackHelper.NewHandlerHelper().Tool(&callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, _ *tool.CallbackInput) context.Context {
			started = append(started, info.Name)
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, _ *tool.CallbackOutput) context.Context {
			ended = append(ended, info.Name)
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, _ error) context.Context {
			failed = append(failed, info.Name)
			return ctx
		},
	}).Handler()

	cat := catalog.New("CODIGO_BARRAS")
	cat.Load([]model.Record{{Values: map[string]string{"CODIGO_BARRAS": "1"}, Product: model.Product{Code: "1"}}})
	r := NewRegistry(cat, model.DisplayConfig{Currency: "$"}, h)

	if _, err := r.Invoke(context.Background(), LookupProductToolName, `{"code":"1"}`); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if _, err := r.Invoke(context.Background(), LookupProductToolName, `{"code":"2"}`); err == nil {
		t.Fatalf("expected miss")
	}

	if len(started) == 0 || started[0] != LookupProductToolName {
		t.Fatalf("start not reported: %v", started)
	}
	if len(ended) == 0 || len(failed) == 0 {
		t.Fatalf("expected end and error events, got end=%v error=%v", ended, failed)
	}
}
