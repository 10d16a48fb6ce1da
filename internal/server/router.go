package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecfr-analyzer-backend/internal/handlers"
)

type RouterConfig struct {
	AgencyHandler *handlers.AgencyHandler
	TitleHandler  *handlers.TitleHandler
	IngestHandler *handlers.IngestHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/agencies", cfg.AgencyHandler.ListAgencies)
		api.GET("/agencies/:id/words", cfg.AgencyHandler.AgencyWords)
		api.GET("/dates", cfg.AgencyHandler.ListDates)
		api.GET("/titles", cfg.TitleHandler.ListTitles)
		api.POST("/ingest", cfg.IngestHandler.Trigger)
		api.GET("/ingest/status", cfg.IngestHandler.Status)
	}

	return router
}
