package app

import (
	"github.com/gin-gonic/gin"

	"github.com/cardspark/cardstudio-backend/internal/server"
)

func wireRouter(handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		StudioHandler:  handlerset.Studio,
		ContentHandler: handlerset.Content,
		CardsHandler:   handlerset.Cards,
	})
}
