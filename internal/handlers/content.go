package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cardspark/cardstudio-backend/internal/content"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

type ContentHandler struct {
	log      *logger.Logger
	manager  *content.Manager
	exporter *content.Exporter
}

func NewContentHandler(log *logger.Logger, manager *content.Manager, exporter *content.Exporter) *ContentHandler {
	return &ContentHandler{
		log:      log.With("handler", "ContentHandler"),
		manager:  manager,
		exporter: exporter,
	}
}

// GET /api/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	generated, err := h.manager.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMapped(c, err)
		return
	}
	RespondOK(c, generated)
}

// GET /api/content/history
// History is the listing view, newest modification first.
func (h *ContentHandler) History(c *gin.Context) {
	entries, err := h.manager.History(c.Request.Context())
	if err != nil {
		respondMapped(c, err)
		return
	}
	RespondOK(c, entries)
}

// POST /api/content
// Save (or re-save) a content bundle as a draft.
func (h *ContentHandler) SaveDraft(c *gin.Context) {
	var body types.GeneratedContent
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.manager.SaveDraft(c.Request.Context(), &body); err != nil {
		respondMapped(c, err)
		return
	}
	RespondOK(c, body)
}

type scheduleRequest struct {
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
}

// POST /api/content/:id/schedule
func (h *ContentHandler) Schedule(c *gin.Context) {
	var body scheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	generated, err := h.manager.Schedule(c.Request.Context(), c.Param("id"), body.ScheduledFor)
	if err != nil {
		respondMapped(c, err)
		return
	}
	RespondOK(c, generated)
}

// POST /api/content/:id/publish
func (h *ContentHandler) Publish(c *gin.Context) {
	generated, err := h.manager.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMapped(c, err)
		return
	}
	RespondOK(c, generated)
}

// GET /api/content/:id/export?format=text|json|document
func (h *ContentHandler) Export(c *gin.Context) {
	format := content.ExportFormat(c.DefaultQuery("format", string(content.FormatText)))

	generated, err := h.manager.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMapped(c, err)
		return
	}
	out, err := h.exporter.Export(c.Request.Context(), generated, format)
	if err != nil {
		respondMapped(c, err)
		return
	}
	switch format {
	case content.FormatJSON:
		c.Data(http.StatusOK, "application/json", []byte(out))
	default:
		c.String(http.StatusOK, out)
	}
}

// DELETE /api/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.manager.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondMapped(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
