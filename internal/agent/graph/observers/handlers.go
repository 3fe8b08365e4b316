package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

// NewAllCallbacks returns the observer handlers (tools, graph nodes) to pass
// to compose.WithCallbacks.
func NewAllCallbacks() []einocb.Handler {
	toolHandler := callbackHelper.NewHandlerHelper().
		Tool(newToolHandler()).
		Handler()

	return []einocb.Handler{toolHandler, newNodeHandler()}
}
