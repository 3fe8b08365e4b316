package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/catalog"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph/nodes"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph/observers"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/orders"
	errx "github.com/Chative-core-poc-v1/storefront/internal/core/error"
	"github.com/Chative-core-poc-v1/storefront/internal/observability"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

const graphName = "StorefrontAssistant"

// Runner executes the compiled pipeline for one request.
type Runner interface {
	Invoke(ctx context.Context, req model.Request) (model.State, error)
}

// Config holds everything needed to compose the pipeline end-to-end.
// This is a convenience layer over GraphConfig that also builds the tool registry.
type Config struct {
	Catalog *catalog.Catalog
	Orders  *orders.Directory
	// Clock supplies Request.Now when the caller leaves it zero. Defaults to time.Now.
	Clock   func() time.Time
	Metrics *observability.Metrics
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	Registry *tools.Registry
}

// GraphBuilder handles the construction of the pipeline graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.Request, model.State]
}

type graphRunner struct {
	runnable compose.Runnable[model.Request, model.State]
	clock    func() time.Time
	metrics  *observability.Metrics
}

func (r *graphRunner) Invoke(ctx context.Context, req model.Request) (model.State, error) {
	if strings.TrimSpace(req.UserInput) == "" {
		return model.State{}, errx.Validation(errx.ErrEmptyInput)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Now.IsZero() {
		req.Now = r.clock()
	}
	ctx = observers.WithRequestID(ctx, req.RequestID)

	start := time.Now()
	out, err := r.runnable.Invoke(ctx, req, compose.WithCallbacks(observers.NewAllCallbacks()...))
	if err == nil {
		err = out.Validate()
	}
	if err != nil {
		r.metrics.ObserveRequest(string(out.Intent), observability.StatusError, time.Since(start))
		logx.Error().Err(err).Str("request_id", req.RequestID).Msg("Pipeline failed")
		return model.State{}, errx.Internal(err)
	}

	r.metrics.ObserveRequest(string(out.Intent), observability.StatusSuccess, time.Since(start))
	r.metrics.ObserveTools(out.ToolsCalled)
	if out.PolicyDecision != nil {
		r.metrics.ObserveCancellation(out.PolicyDecision.CancelAllowed)
	}
	logx.Info().
		Str("request_id", req.RequestID).
		Str("intent", string(out.Intent)).
		Strs("tools_called", out.ToolsCalled).
		Dur("elapsed", time.Since(start)).
		Msg("Pipeline completed")
	return out, nil
}

// BuildPipeline builds the tool registry over the given tables, compiles the
// graph and returns a Runner.
func BuildPipeline(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if cfg.Orders == nil {
		return nil, fmt.Errorf("order directory is nil")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	reg, err := tools.NewRegistry(ctx, tools.GetQueryTools(cfg.Catalog, cfg.Orders)...)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{Registry: reg})
	if err != nil {
		return nil, err
	}

	logx.Debug().
		Int("products", cfg.Catalog.Len()).
		Int("orders", cfg.Orders.Len()).
		Strs("tools", reg.Names()).
		Msg("Pipeline built successfully")
	return &graphRunner{runnable: runnable, clock: cfg.Clock, metrics: cfg.Metrics}, nil
}

// BuildGraph constructs and returns the compiled pipeline graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.Request, model.State], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.Request, model.State](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	type node struct {
		key    string
		lambda *compose.Lambda
		opts   []compose.GraphAddNodeOpt
	}

	stage := func(key string) []compose.GraphAddNodeOpt {
		return []compose.GraphAddNodeOpt{
			compose.WithNodeName(key),
			compose.WithStatePostHandler(nodes.NewStagePostHandler(key)),
		}
	}

	all := []node{
		{
			key:    nodes.NodeInputConverter,
			lambda: nodes.NewInputConverterNode(),
			opts: []compose.GraphAddNodeOpt{
				compose.WithNodeName(nodes.NodeInputConverter),
				compose.WithStatePreHandler(nodes.NewInputConverterPreHandler()),
			},
		},
		{key: nodes.NodeRouter, lambda: nodes.NewRouterNode(), opts: stage(nodes.NodeRouter)},
		{key: nodes.NodeDispatcher, lambda: nodes.NewDispatcherNode(b.config.Registry), opts: stage(nodes.NodeDispatcher)},
		{key: nodes.NodePolicyGuard, lambda: nodes.NewPolicyGuardNode(), opts: stage(nodes.NodePolicyGuard)},
		{key: nodes.NodeResponder, lambda: nodes.NewResponderNode(), opts: stage(nodes.NodeResponder)},
	}

	for _, n := range all {
		if err := b.graph.AddLambdaNode(n.key, n.lambda, n.opts...); err != nil {
			logx.Error().Err(err).Str("node", n.key).Msg("Error adding node")
			return fmt.Errorf("error adding node %s: %w", n.key, err)
		}
	}
	return nil
}

// addEdges creates the linear flow between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeRouter},
		{nodes.NodeRouter, nodes.NodeDispatcher},
		{nodes.NodeDispatcher, nodes.NodePolicyGuard},
		{nodes.NodePolicyGuard, nodes.NodeResponder},
		{nodes.NodeResponder, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			logx.Error().Err(err).Str("from", edge[0]).Str("to", edge[1]).Msg("Error adding edge")
			return fmt.Errorf("error adding edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.Request, model.State], error) {
	// one step per node plus headroom; the graph has no cycles
	runnable, err := b.graph.Compile(ctx,
		compose.WithGraphName(graphName),
		compose.WithMaxRunSteps(10),
	)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
