package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/repo"
	errx "github.com/Chative-core-poc-v1/storefront/internal/core/error"
	"github.com/Chative-core-poc-v1/storefront/internal/observability"
)

type stubRunner struct {
	calls int
	last  model.Request
	out   model.State
	err   error
}

func (s *stubRunner) Invoke(ctx context.Context, req model.Request) (model.State, error) {
	s.calls++
	s.last = req
	return s.out, s.err
}

func guardrailState() model.State {
	return model.State{
		UserInput:    "Give me a discount code",
		Intent:       model.IntentOther,
		ToolsCalled:  []string{},
		Evidence:     []model.Evidence{},
		FinalMessage: "Sorry, I can’t provide discount codes. You can join our newsletter or check first-order perks.",
	}
}

func setupRouter(t *testing.T, runner *stubRunner, withTraces bool) (*gin.Engine, model.TraceRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := Deps{Runner: runner, Metrics: observability.NewMetrics()}
	if withTraces {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		d.Traces = repo.NewRedisTraceRepository(rdb, time.Hour, 10)
	}
	return NewRouter(d), d.Traces
}

func postChat(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	r, _ := setupRouter(t, &stubRunner{}, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"Server is running"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleChat_Success(t *testing.T) {
	runner := &stubRunner{out: guardrailState()}
	r, _ := setupRouter(t, runner, false)

	w := postChat(r, `{"user_input":"Give me a discount code"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, guardrailState().FinalMessage, resp["final_message"])

	trace, ok := resp["trace"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "other", trace["intent"])
	assert.Nil(t, trace["policy_decision"])
	assert.Equal(t, []any{}, trace["evidence"])

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "Give me a discount code", runner.last.UserInput)
	assert.NotEmpty(t, runner.last.RequestID)
	assert.Equal(t, runner.last.RequestID, w.Header().Get("X-Request-ID"))
}

func TestHandleChat_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"user_input":`},
		{name: "missing field", body: `{}`},
		{name: "empty string", body: `{"user_input":""}`},
		{name: "whitespace only", body: `{"user_input":"   \t"}`},
		{name: "wrong type", body: `{"user_input":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{}
			r, _ := setupRouter(t, runner, false)

			w := postChat(r, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Zero(t, runner.calls, "pipeline must not run on invalid input")
		})
	}
}

func TestHandleChat_InternalError(t *testing.T) {
	runner := &stubRunner{err: errx.Internal(errors.New("merge: intent already set"))}
	r, _ := setupRouter(t, runner, false)

	w := postChat(r, `{"user_input":"need a dress"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","message":"Something went wrong processing your request"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "merge")
}

func TestHandleChat_ArchivesTrace(t *testing.T) {
	runner := &stubRunner{out: guardrailState()}
	r, traces := setupRouter(t, runner, true)

	w := postChat(r, `{"user_input":"Give me a discount code"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get("X-Request-ID")

	got, err := traces.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.IntentOther, got.Trace.Intent)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/traces/"+id, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"request_id":"`+id+`"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/traces?limit=5", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)
}

func TestHandleRecentTraces_ReportsTotal(t *testing.T) {
	r, _ := setupRouter(t, &stubRunner{out: guardrailState()}, true)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, postChat(r, `{"user_input":"Give me a discount code"}`).Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/traces?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		RequestIDs []string `json:"request_ids"`
		Count      int      `json:"count"`
		Total      int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.RequestIDs, 2)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 3, body.Total)
}

func TestHandleGetTrace_NotFound(t *testing.T) {
	r, _ := setupRouter(t, &stubRunner{}, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/traces/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRecentTraces_BadLimit(t *testing.T) {
	r, _ := setupRouter(t, &stubRunner{}, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/traces?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTracesRoutesAbsentWithoutArchive(t *testing.T) {
	r, _ := setupRouter(t, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/traces/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := setupRouter(t, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/chat", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
