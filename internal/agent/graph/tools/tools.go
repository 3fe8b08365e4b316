package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/catalog"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/orders"
)

const (
	ToolProductSearch   = "product_search"
	ToolSizeRecommender = "size_recommender"
	ToolETA             = "eta"
	ToolOrderLookup     = "order_lookup"
)

// Registry resolves tool names to eino invokable tools.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	tools map[string]tool.InvokableTool
	names []string
}

// GetQueryTools returns every business tool bound to the given tables.
func GetQueryTools(cat *catalog.Catalog, dir *orders.Directory) []tool.InvokableTool {
	return []tool.InvokableTool{
		createProductSearchTool(cat),
		createSizeRecommenderTool(),
		createETATool(),
		createOrderLookupTool(dir),
	}
}

// NewRegistry indexes tools by the name in their ToolInfo.
func NewRegistry(ctx context.Context, ts ...tool.InvokableTool) (*Registry, error) {
	r := &Registry{tools: make(map[string]tool.InvokableTool, len(ts))}
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		if _, dup := r.tools[info.Name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", info.Name)
		}
		r.tools[info.Name] = t
		r.names = append(r.names, info.Name)
	}
	return r, nil
}

// Names lists registered tools in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Invoke runs the named tool with in encoded as its JSON arguments and
// decodes the tool's JSON result into out. Callback handlers already present
// in ctx observe the run as a Tool component.
func (r *Registry) Invoke(ctx context.Context, name string, in any, out any) error {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Errorf("unknown tool %q", name)
	}
	args, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s arguments: %w", name, err)
	}

	ctx = callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
		Name:      name,
		Type:      "BusinessTool",
		Component: components.ComponentOfTool,
	})
	ctx = callbacks.OnStart(ctx, &tool.CallbackInput{ArgumentsInJSON: string(args)})
	res, err := t.InvokableRun(ctx, string(args))
	if err != nil {
		callbacks.OnError(ctx, err)
		return fmt.Errorf("run %s: %w", name, err)
	}
	callbacks.OnEnd(ctx, &tool.CallbackOutput{Response: res})
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(res), out); err != nil {
		return fmt.Errorf("unmarshal %s result: %w", name, err)
	}
	return nil
}

// GetToolInfos collects the schema of every tool, e.g. for documentation endpoints.
func GetToolInfos(ctx context.Context, ts []tool.InvokableTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
