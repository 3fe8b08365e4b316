package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph/tools"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

// NewInputConverterPreHandler records the request id in the graph local state.
func NewInputConverterPreHandler() func(context.Context, model.Request, *model.AppState) (model.Request, error) {
	return func(ctx context.Context, in model.Request, s *model.AppState) (model.Request, error) {
		s.RequestID = in.RequestID
		s.Stages = s.Stages[:0]
		return in, nil
	}
}

// NewInputConverterNode turns the request into the initial State.
func NewInputConverterNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.Request) (model.State, error) {
		return model.NewState(in), nil
	})
}

// NewRouterNode classifies the utterance.
func NewRouterNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.State) (model.State, error) {
		return mergeStage(NodeRouter, in, Route(in))
	})
}

// NewDispatcherNode runs the tools selected by the intent.
func NewDispatcherNode(reg *tools.Registry) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.State) (model.State, error) {
		d, err := Dispatch(ctx, reg, in)
		if err != nil {
			return in, stageError(NodeDispatcher, err)
		}
		return mergeStage(NodeDispatcher, in, d)
	})
}

// NewPolicyGuardNode attaches the cancellation decision for order_help.
func NewPolicyGuardNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.State) (model.State, error) {
		return mergeStage(NodePolicyGuard, in, Guard(in))
	})
}

// NewResponderNode renders the final message.
func NewResponderNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.State) (model.State, error) {
		d, err := Render(in)
		if err != nil {
			return in, stageError(NodeResponder, err)
		}
		return mergeStage(NodeResponder, in, d)
	})
}

// NewStagePostHandler logs the state after a stage and records the stage in
// the local state. The Responder also logs the full stage path.
func NewStagePostHandler(stage string) func(context.Context, model.State, *model.AppState) (model.State, error) {
	return func(ctx context.Context, out model.State, s *model.AppState) (model.State, error) {
		s.Stages = append(s.Stages, stage)
		logx.Debug().
			Str("request_id", s.RequestID).
			Str("node", stage).
			Str("intent", string(out.Intent)).
			Strs("tools_called", out.ToolsCalled).
			Int("evidence", len(out.Evidence)).
			Bool("decided", out.PolicyDecision != nil).
			Msg("Stage completed")
		if stage == NodeResponder {
			logx.Debug().
				Str("request_id", s.RequestID).
				Strs("stages", s.Stages).
				Msg("Stage path")
		}
		return out, nil
	}
}
