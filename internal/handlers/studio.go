package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/studio"
	"github.com/cardspark/cardstudio-backend/internal/types"
)

type StudioHandler struct {
	log       *logger.Logger
	studioSvc *studio.Service
}

func NewStudioHandler(log *logger.Logger, studioSvc *studio.Service) *StudioHandler {
	return &StudioHandler{
		log:       log.With("handler", "StudioHandler"),
		studioSvc: studioSvc,
	}
}

// POST /api/studio/generate
// Run one generation request through the full pipeline and save the draft.
func (h *StudioHandler) Generate(c *gin.Context) {
	var req types.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	generated, err := h.studioSvc.Generate(c.Request.Context(), req)
	if err != nil {
		h.log.Warn("Generation failed", "error", err)
		respondMapped(c, err)
		return
	}
	RespondOK(c, generated)
}
