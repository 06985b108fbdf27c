package handler

import (
	"net/http"
	"time"
	"unicode/utf8"

	"miraiz/internal/catalog"
	"miraiz/internal/llm"
	"miraiz/internal/model"
	"miraiz/internal/store"
	"miraiz/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxInteractionBody bounds POST /interactions request bodies.
const maxInteractionBody = 4096

// maxQuestionLen bounds the pregunta field, counted in characters.
const maxQuestionLen = 500

// InteractionHandler serves the question/answer endpoints.
type InteractionHandler struct {
	store   store.InteractionStore
	llm     llm.Client
	catalog *catalog.Service
	logger  *logrus.Logger
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(s store.InteractionStore, client llm.Client, cat *catalog.Service, logger *logrus.Logger) *InteractionHandler {
	return &InteractionHandler{store: s, llm: client, catalog: cat, logger: logger}
}

// Create handles POST /interactions: validate, build per-property context
// from the cached catalog, answer via the completion capability, persist.
func (h *InteractionHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxInteractionBody)

	var input model.Interaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body demasiado grande o inválido"})
		return
	}

	input.UserID = utils.Sanitize(input.UserID)
	input.Pregunta = utils.Sanitize(input.Pregunta)

	if input.UserID == "" || input.Pregunta == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos requeridos: userId, pregunta"})
		return
	}
	if utf8.RuneCountInString(input.Pregunta) > maxQuestionLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pregunta muy larga"})
		return
	}
	if utils.IsPromptInjection(input.Pregunta) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contenido no permitido"})
		return
	}

	input.ID = uuid.NewString()
	input.Status = model.InteractionPending
	input.CreatedAt = time.Now().UTC()

	// Context is best effort: a listing missing from the snapshot just
	// means the model answers without it.
	var pctx *llm.PropertyContext
	if input.PropiedadID != nil {
		if p := h.catalog.FindByID(c.Request.Context(), *input.PropiedadID); p != nil {
			area := p.M2Construccion
			if area == nil {
				area = p.Area
			}
			pctx = &llm.PropertyContext{
				ID:             p.ID,
				Precio:         p.Precio,
				Habitaciones:   p.Habitaciones,
				Banos:          p.CanonicalBanos(),
				Parqueos:       p.Parqueos,
				M2Construccion: area,
				Ubicacion:      p.Ubicacion,
			}
		}
	}

	answer, err := h.llm.Ask(c.Request.Context(), input.Pregunta, pctx)
	if err != nil {
		h.logger.WithError(err).Error("interaction answer failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No fue posible responder la pregunta"})
		return
	}

	input.Respuesta = &answer
	input.Status = model.InteractionAnswered

	if err := h.store.Add(c.Request.Context(), &input); err != nil {
		h.logger.WithError(err).Error("failed to store interaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No fue posible guardar la interacción"})
		return
	}

	c.JSON(http.StatusOK, input)
}

// List handles GET /interactions?userId=...
func (h *InteractionHandler) List(c *gin.Context) {
	interactions, err := h.store.List(c.Request.Context(), c.Query("userId"))
	if err != nil {
		h.logger.WithError(err).Error("failed to list interactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No fue posible listar las interacciones"})
		return
	}
	c.JSON(http.StatusOK, interactions)
}

// Metrics handles GET /metrics/interactions
func (h *InteractionHandler) Metrics(c *gin.Context) {
	metrics, err := h.store.Metrics(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to aggregate interaction metrics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No fue posible calcular métricas"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}
