package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardspark/cardstudio-backend/internal/clients/catalog"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
)

type CardsHandler struct {
	log     *logger.Logger
	catalog *catalog.Client
}

func NewCardsHandler(log *logger.Logger, catalogClient *catalog.Client) *CardsHandler {
	return &CardsHandler{
		log:     log.With("handler", "CardsHandler"),
		catalog: catalogClient,
	}
}

// POST /api/cards/search
// Proxy a filter payload through to the catalog API.
func (h *CardsHandler) Search(c *gin.Context) {
	var filter map[string]any
	if err := c.ShouldBindJSON(&filter); err != nil && c.Request.ContentLength > 0 {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cards, err := h.catalog.Cards(c.Request.Context(), filter)
	if err != nil {
		respondMapped(c, err)
		return
	}
	RespondOK(c, cards)
}

type savingsRequest struct {
	CardID       string         `json:"card_id" binding:"required"`
	SpendProfile map[string]any `json:"spend_profile"`
}

// POST /api/cards/savings
func (h *CardsHandler) Savings(c *gin.Context) {
	var body savingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	est, err := h.catalog.Savings(c.Request.Context(), body.CardID, body.SpendProfile)
	if err != nil {
		respondMapped(c, err)
		return
	}
	RespondOK(c, est)
}
