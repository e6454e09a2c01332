package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cardspark/cardstudio-backend/internal/handlers"
	"github.com/cardspark/cardstudio-backend/internal/middleware"
)

type RouterConfig struct {
	StudioHandler  *handlers.StudioHandler
	ContentHandler *handlers.ContentHandler
	CardsHandler   *handlers.CardsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware("cardstudio"))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Studio
		api.POST("/studio/generate", cfg.StudioHandler.Generate)

		// Content lifecycle
		api.GET("/content/history", cfg.ContentHandler.History)
		api.POST("/content", cfg.ContentHandler.SaveDraft)
		api.GET("/content/:id", cfg.ContentHandler.Get)
		api.POST("/content/:id/schedule", cfg.ContentHandler.Schedule)
		api.POST("/content/:id/publish", cfg.ContentHandler.Publish)
		api.GET("/content/:id/export", cfg.ContentHandler.Export)
		api.DELETE("/content/:id", cfg.ContentHandler.Delete)

		// Catalog proxy
		api.POST("/cards/search", cfg.CardsHandler.Search)
		api.POST("/cards/savings", cfg.CardsHandler.Savings)
	}

	return router
}
