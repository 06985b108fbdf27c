package handler

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"

	"miraiz/internal/catalog"
	"miraiz/internal/model"
	"miraiz/internal/query"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PropertyHandler serves the catalog endpoints.
type PropertyHandler struct {
	catalog *catalog.Service
	query   *query.Service
	ttlSecs int
	logger  *logrus.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(cat *catalog.Service, q *query.Service, ttlSecs int, logger *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{catalog: cat, query: q, ttlSecs: ttlSecs, logger: logger}
}

// GetProperties handles GET /properties: the full cached catalog with ETag
// revalidation. Always HTTP 200 with possibly-empty data; upstream failures
// never surface here.
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	snapshot := h.catalog.Snapshot(c.Request.Context())

	body, err := json.Marshal(snapshot)
	if err != nil {
		h.logger.WithError(err).Error("failed to marshal catalog snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode catalog"})
		return
	}

	etag := etagFor(body)
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", h.ttlSecs))
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("ETag", etag)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetPropertiesLite handles GET /api/propiedades/miraiz-lite: the shaped
// list with field mask, state set, and cursor pagination.
func (h *PropertyHandler) GetPropertiesLite(c *gin.Context) {
	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.query.List(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}

// Refresh handles POST /properties/refresh: drops the cached snapshot so
// the next read refetches upstream.
func (h *PropertyHandler) Refresh(c *gin.Context) {
	h.catalog.Refresh()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func etagFor(body []byte) string {
	hash := fnv.New64a()
	hash.Write(body)
	return fmt.Sprintf("%q", fmt.Sprintf("%X", hash.Sum64()))
}
