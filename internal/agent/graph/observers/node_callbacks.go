package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"

	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

// newNodeHandler logs lambda node starts and failures. Successful node ends
// are logged by the stage post-handlers, which see the typed state.
func newNodeHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			if info == nil || info.Component != compose.ComponentOfLambda {
				return ctx
			}
			logx.Debug().Str("request_id", RequestID(ctx)).Str("node", info.Name).Msg("Node start")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			name := ""
			if info != nil {
				name = info.Name
			}
			logx.Error().Err(err).Str("request_id", RequestID(ctx)).Str("node", name).Msg("Node failed")
			return ctx
		}).
		Build()
}
