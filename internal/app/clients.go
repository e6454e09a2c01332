package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cardspark/cardstudio-backend/internal/clients/catalog"
	"github.com/cardspark/cardstudio-backend/internal/clients/rediscache"
	"github.com/cardspark/cardstudio-backend/internal/genai"
	"github.com/cardspark/cardstudio-backend/internal/genai/oaihttp"
	pkgerrors "github.com/cardspark/cardstudio-backend/internal/pkg/errors"
	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
)

type Clients struct {
	Redis   *goredis.Client
	Catalog *catalog.Client

	// Model is nil when no GENAI_API_KEY is configured; generation then runs
	// on the deterministic template engine.
	Model genai.Engine
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var rdb *goredis.Client
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		r, err := rediscache.New(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		rdb = r
	} else {
		log.Warn("REDIS_ADDR not set, catalog cache disabled")
	}

	// Catalog
	catalogClient, err := catalog.New(log, catalog.Config{
		BaseURL:        cfg.CatalogBaseURL,
		CacheTTL:       cfg.CatalogCacheTTL,
		TimeoutSeconds: cfg.CatalogTimeoutSeconds,
		MaxRetries:     cfg.CatalogMaxRetries,
	}, rdb)
	if err != nil {
		return Clients{}, fmt.Errorf("init catalog client: %w", err)
	}

	// Generation model
	var model genai.Engine
	m, err := oaihttp.New(log, oaihttp.Config{
		BaseURL:        cfg.GenAIBaseURL,
		APIKey:         cfg.GenAIAPIKey,
		Model:          cfg.GenAIModel,
		TimeoutSeconds: cfg.GenAITimeoutSeconds,
	})
	switch {
	case errors.Is(err, pkgerrors.ErrMissingCredential):
		log.Warn("GENAI_API_KEY not set, using template generation")
	case err != nil:
		return Clients{}, fmt.Errorf("init generation client: %w", err)
	default:
		model = m
	}

	return Clients{
		Redis:   rdb,
		Catalog: catalogClient,
		Model:   model,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
