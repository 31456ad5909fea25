package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Catalog is the read side of the product catalog used by the tools.
type Catalog interface {
	Lookup(code string) (model.Record, model.Outcome)
	Search(query string, limit int) []model.Record
}

// Registry holds the catalog tools by name.
type Registry struct {
	tools     map[string]tool.InvokableTool
	callbacks []einocb.Handler
}

// NewRegistry builds the catalog tools. Every invocation is reported to
// NewToolLogger plus any extra handlers.
func NewRegistry(cat Catalog, display model.DisplayConfig, handlers ...einocb.Handler) *Registry {
	return &Registry{
		tools: map[string]tool.InvokableTool{
			LookupProductToolName: createLookupProductTool(cat, display),
			SearchProductToolName: createSearchProductTool(cat, display),
		},
		callbacks: append([]einocb.Handler{NewToolLogger()}, handlers...),
	}
}

func (r *Registry) Get(name string) (tool.InvokableTool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Infos returns the tool descriptions sorted by name, ready to bind to a chat model.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.tools))
	for name, t := range r.tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool %s info: %w", name, err)
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Invoke runs the named tool with JSON arguments and returns its JSON output.
func (r *Registry) Invoke(ctx context.Context, name, argumentsInJSON string) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}

	ctx = einocb.InitCallbacks(ctx, &einocb.RunInfo{
		Name:      name,
		Type:      "CatalogTool",
		Component: components.ComponentOfTool,
	}, r.callbacks...)
	ctx = einocb.OnStart(ctx, &tool.CallbackInput{ArgumentsInJSON: argumentsInJSON})

	out, err := t.InvokableRun(ctx, argumentsInJSON)
	if err != nil {
		einocb.OnError(ctx, err)
		return "", err
	}
	einocb.OnEnd(ctx, &tool.CallbackOutput{Response: out})
	return out, nil
}
