package app

import (
	"github.com/cardspark/cardstudio-backend/internal/handlers"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
)

type Handlers struct {
	Studio  *handlers.StudioHandler
	Content *handlers.ContentHandler
	Cards   *handlers.CardsHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Studio:  handlers.NewStudioHandler(log, services.Studio),
		Content: handlers.NewContentHandler(log, services.Manager, services.Exporter),
		Cards:   handlers.NewCardsHandler(log, clients.Catalog),
	}
}
