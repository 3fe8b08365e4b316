package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/storefront/internal/core/error"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

var chatTracer = otel.Tracer("storefront.transport.httpapi")

const (
	msgInternalError   = "Internal server error"
	msgInternalDetails = "Something went wrong processing your request"
	defaultRecentLimit = 20
)

type ChatRequest struct {
	UserInput string `json:"user_input" binding:"required"`
}

type ChatResponse struct {
	FinalMessage string      `json:"final_message"`
	Trace        model.State `json:"trace"`
	Status       string      `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HandleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Server is running"})
	}
}

// HandleChat runs one utterance through the pipeline. traces may be nil.
func HandleChat(runner graph.Runner, traces model.TraceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := chatTracer.Start(c.Request.Context(), "HandleChat")
		defer span.End()

		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: bindMessage(err)})
			return
		}
		if strings.TrimSpace(req.UserInput) == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: "user_input must not be empty"})
			return
		}

		requestID := uuid.NewString()
		span.SetAttributes(attribute.String("request_id", requestID))

		trace, err := runner.Invoke(ctx, model.Request{RequestID: requestID, UserInput: req.UserInput})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if errx.StatusOf(err) == http.StatusBadRequest {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: "user_input must not be empty"})
				return
			}
			logx.Error().Err(err).Str("request_id", requestID).Msg("Chat request failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError, Message: msgInternalDetails})
			return
		}
		span.SetAttributes(attribute.String("intent", string(trace.Intent)))

		// archiving is best effort; the reply is already computed
		if traces != nil {
			if err := traces.Save(ctx, requestID, trace); err != nil {
				logx.Warn().Err(err).Str("request_id", requestID).Msg("Failed to archive trace")
			}
		}

		c.Header("X-Request-ID", requestID)
		c.JSON(http.StatusOK, ChatResponse{FinalMessage: trace.FinalMessage, Trace: trace, Status: "success"})
	}
}

func HandleGetTrace(traces model.TraceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("requestId")
		t, err := traces.Load(c.Request.Context(), id)
		if err != nil {
			if errx.IsNotFound(err) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found", Message: "No trace for request " + id})
				return
			}
			logx.Error().Err(err).Str("request_id", id).Msg("Failed to load trace")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError, Message: msgInternalDetails})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func HandleRecentTraces(traces model.TraceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := int64(defaultRecentLimit)
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: "limit must be a positive integer"})
				return
			}
			limit = n
		}

		ids, err := traces.Recent(c.Request.Context(), limit)
		if err != nil {
			logx.Error().Err(err).Msg("Failed to list traces")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError, Message: msgInternalDetails})
			return
		}
		total, err := traces.Count(c.Request.Context())
		if err != nil {
			logx.Error().Err(err).Msg("Failed to count traces")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalError, Message: msgInternalDetails})
			return
		}
		c.JSON(http.StatusOK, gin.H{"request_ids": ids, "count": len(ids), "total": total})
	}
}

// bindMessage turns a binding error into a caller-safe message.
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return "user_input must not be empty"
	}
	return "request body must be JSON with a user_input field"
}
