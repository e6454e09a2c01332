package app

import (
	"time"

	"github.com/cardspark/cardstudio-backend/internal/pkg/logger"
	"github.com/cardspark/cardstudio-backend/internal/utils"
)

type Config struct {
	CatalogBaseURL        string
	CatalogCacheTTL       time.Duration
	CatalogTimeoutSeconds int
	CatalogMaxRetries     int

	GenAIAPIKey         string
	GenAIBaseURL        string
	GenAIModel          string
	GenAIMaxTokens      int
	GenAITemperature    float64
	GenAITimeoutSeconds int

	PublishDelay time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	catalogBaseURL := utils.GetEnv("CATALOG_BASE_URL", "http://localhost:8000", log)
	catalogCacheTTL := utils.GetEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 300, log)
	catalogTimeout := utils.GetEnvAsInt("CATALOG_TIMEOUT_SECONDS", 15, log)
	catalogMaxRetries := utils.GetEnvAsInt("CATALOG_MAX_RETRIES", 2, log)

	genaiAPIKey := utils.GetEnv("GENAI_API_KEY", "", log)
	genaiBaseURL := utils.GetEnv("GENAI_BASE_URL", "https://api.openai.com/v1", log)
	genaiModel := utils.GetEnv("GENAI_MODEL", "gpt-4o-mini", log)
	genaiMaxTokens := utils.GetEnvAsInt("GENAI_MAX_TOKENS", 2000, log)
	genaiTemperature := utils.GetEnvAsFloat("GENAI_TEMPERATURE", 0.7, log)
	genaiTimeout := utils.GetEnvAsInt("GENAI_TIMEOUT_SECONDS", 60, log)

	publishDelayMS := utils.GetEnvAsInt("PUBLISH_DELAY_MS", 1500, log)

	return Config{
		CatalogBaseURL:        catalogBaseURL,
		CatalogCacheTTL:       time.Duration(catalogCacheTTL) * time.Second,
		CatalogTimeoutSeconds: catalogTimeout,
		CatalogMaxRetries:     catalogMaxRetries,

		GenAIAPIKey:         genaiAPIKey,
		GenAIBaseURL:        genaiBaseURL,
		GenAIModel:          genaiModel,
		GenAIMaxTokens:      genaiMaxTokens,
		GenAITemperature:    genaiTemperature,
		GenAITimeoutSeconds: genaiTimeout,

		PublishDelay: time.Duration(publishDelayMS) * time.Millisecond,
	}
}
