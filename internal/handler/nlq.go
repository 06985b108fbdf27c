package handler

import (
	"net/http"
	"strings"
	"time"

	"miraiz/internal/model"
	"miraiz/internal/nlq"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NLQHandler serves POST /api/nlq.
type NLQHandler struct {
	translator   *nlq.Translator
	defaultLimit int
	logger       *logrus.Logger
}

// NewNLQHandler creates a new NLQ handler
func NewNLQHandler(translator *nlq.Translator, defaultLimit int, logger *logrus.Logger) *NLQHandler {
	return &NLQHandler{translator: translator, defaultLimit: defaultLimit, logger: logger}
}

// Run handles POST /api/nlq. This is the only path that can return a
// server-side error; every response, success or not, carries a trace id.
func (h *NLQHandler) Run(c *gin.Context) {
	start := time.Now()
	trace := strings.ReplaceAll(uuid.NewString(), "-", "")

	var req model.NLQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NLQError{
			Error:   "invalid request body",
			Detail:  err.Error(),
			TraceID: trace,
		})
		return
	}

	q := strings.TrimSpace(req.Query)
	if q == "" {
		c.JSON(http.StatusBadRequest, model.NLQError{
			Error:   "query vacío",
			TraceID: trace,
		})
		return
	}

	limit := h.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	result, err := h.translator.Run(c.Request.Context(), q, model.ClampLimit(limit), req.Estado, req.Locale)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"trace_id":   trace,
			"latency_ms": latency,
		}).Error("NLQ run failed")
		c.JSON(http.StatusBadGateway, model.NLQError{
			Error:     "NLQ_FAILED",
			Detail:    "No fue posible consultar el catálogo",
			LatencyMS: latency,
			TraceID:   trace,
		})
		return
	}

	c.JSON(http.StatusOK, model.NLQResponse{
		Success:     true,
		Answer:      result.Answer,
		ToolPayload: gin.H{"success": true, "data": result.Matched},
		ToolArgs:    result.Filter,
		LatencyMS:   latency,
		TraceID:     trace,
	})
}
