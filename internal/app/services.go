package app

import (
	"fmt"

	"github.com/cardspark/cardstudio-backend/internal/content"
	"github.com/cardspark/cardstudio-backend/internal/genai"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/prompt"
	"github.com/cardspark/cardstudio-backend/internal/rag"
	"github.com/cardspark/cardstudio-backend/internal/studio"
)

type Services struct {
	Manager  *content.Manager
	Exporter *content.Exporter
	Studio   *studio.Service
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	guide, err := prompt.LoadStyleGuide()
	if err != nil {
		return Services{}, fmt.Errorf("load style guide: %w", err)
	}

	manager := content.NewManager(
		reposet.Content,
		reposet.History,
		content.NewSimulatedPublisher(cfg.PublishDelay, log),
		log,
	)

	studioSvc := studio.NewService(
		clients.Catalog,
		rag.NewRetriever(rag.DefaultVocabulary(), log),
		prompt.NewAssembler(guide),
		studio.NewMapper(guide, log),
		manager,
		clients.Model,
		genai.Options{
			MaxTokens:   cfg.GenAIMaxTokens,
			Temperature: cfg.GenAITemperature,
		},
		log,
	)

	return Services{
		Manager:  manager,
		Exporter: content.NewExporter(guide.DisplayName, nil),
		Studio:   studioSvc,
	}, nil
}
