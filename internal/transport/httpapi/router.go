// Package httpapi exposes the assistant pipeline over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/observability"
)

// Deps are the collaborators the handlers need. Traces and Metrics are optional.
type Deps struct {
	Runner        graph.Runner
	Traces        model.TraceRepository
	Metrics       *observability.Metrics
	AllowedOrigin string
}

// NewRouter wires the routes on a fresh gin engine.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors(d.AllowedOrigin))

	r.GET("/health", HandleHealth())
	r.POST("/chat", HandleChat(d.Runner, d.Traces))
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if d.Traces != nil {
		r.GET("/traces", HandleRecentTraces(d.Traces))
		r.GET("/traces/:requestId", HandleGetTrace(d.Traces))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "message": "No route for " + c.Request.URL.Path})
	})
	return r
}
