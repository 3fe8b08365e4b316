package observers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/stretchr/testify/assert"

	"github.com/Chative-core-poc-v1/storefront/internal/core"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logx.Init(logx.LoggerOpts{Environment: core.Production, Level: "debug", Output: &buf})
	t.Cleanup(func() { logx.Init() })
	return &buf
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestID(ctx))
	assert.Equal(t, "req-1", RequestID(WithRequestID(ctx, "req-1")))
}

func TestNewAllCallbacks(t *testing.T) {
	hs := NewAllCallbacks()
	assert.Len(t, hs, 2)
	for _, h := range hs {
		assert.NotNil(t, h)
	}
}

func TestToolHandler_Logs(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithRequestID(context.Background(), "req-7")
	info := &einocb.RunInfo{Name: "eta", Component: components.ComponentOfTool}

	h := newToolHandler()
	h.OnStart(ctx, info, &tool.CallbackInput{ArgumentsInJSON: `{"zip":"10001"}`})
	h.OnEnd(ctx, info, &tool.CallbackOutput{Response: `{"estimate":"3-5 days"}`})
	h.OnError(ctx, info, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-7"`)
	assert.Contains(t, out, `"tool":"eta"`)
	assert.Contains(t, out, "Tool start")
	assert.Contains(t, out, "Tool end")
	assert.Contains(t, out, "Tool execution failed")
	assert.Contains(t, out, "boom")
}

func TestNodeHandler_OnlyLambdas(t *testing.T) {
	buf := captureLogs(t)
	ctx := WithRequestID(context.Background(), "req-8")
	h := newNodeHandler()

	h.OnStart(ctx, &einocb.RunInfo{Name: "Router", Component: compose.ComponentOfLambda}, nil)
	assert.Contains(t, buf.String(), `"node":"Router"`)

	buf.Reset()
	h.OnStart(ctx, &einocb.RunInfo{Name: "StorefrontAssistant", Component: compose.ComponentOfGraph}, nil)
	assert.Empty(t, buf.String())

	h.OnError(ctx, &einocb.RunInfo{Name: "Responder", Component: compose.ComponentOfLambda}, errors.New("render failed"))
	assert.Contains(t, buf.String(), "Node failed")
	assert.Contains(t, buf.String(), "render failed")
}
