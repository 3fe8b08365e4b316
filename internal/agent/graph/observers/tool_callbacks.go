package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

// newToolHandler builds a typed ToolCallbackHandler that logs tool lifecycle events.
func newToolHandler() *callbackHelper.ToolCallbackHandler {
	return &callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *tool.CallbackInput) context.Context {
			ev := logx.Debug().Str("request_id", RequestID(ctx)).Str("tool", info.Name)
			if input != nil {
				ev = ev.Str("arguments", input.ArgumentsInJSON)
			}
			ev.Msg("Tool start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *tool.CallbackOutput) context.Context {
			ev := logx.Debug().Str("request_id", RequestID(ctx)).Str("tool", info.Name)
			if output != nil {
				ev = ev.Int("response_bytes", len(output.Response))
			}
			ev.Msg("Tool end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("request_id", RequestID(ctx)).Str("tool", info.Name).Msg("Tool execution failed")
			return ctx
		},
	}
}
