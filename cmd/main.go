package main

import (
	"fmt"
	"os"

	"github.com/yungbote/ecfr-analyzer-backend/internal/db"
	"github.com/yungbote/ecfr-analyzer-backend/internal/ecfr"
	"github.com/yungbote/ecfr-analyzer-backend/internal/handlers"
	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/repos"
	"github.com/yungbote/ecfr-analyzer-backend/internal/server"
	"github.com/yungbote/ecfr-analyzer-backend/internal/services"
	"github.com/yungbote/ecfr-analyzer-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := databaseService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	agencyRepo := repos.NewAgencyRepo(theDB, log)
	titleRepo := repos.NewTitleRepo(theDB, log)
	chapterRepo := repos.NewChapterWordCountRepo(theDB, log)
	runRepo := repos.NewIngestionRunRepo(theDB, log)

	// Upstream client
	ecfrClient := ecfr.NewClient(log)

	// Cache is optional; without REDIS_ADDR every read hits the store.
	var statsCache services.StatsCache
	if cache, cacheErr := services.NewStatsCache(log); cacheErr != nil {
		log.Warn("Stats cache disabled", "error", cacheErr)
	} else {
		statsCache = cache
	}

	// Services
	log.Info("Setting up Services from main...")
	statsService := services.NewStatsService(theDB, log, agencyRepo, titleRepo, chapterRepo, statsCache)
	ingestionService := services.NewIngestionService(theDB, log, ecfrClient, agencyRepo, titleRepo, chapterRepo, runRepo, statsCache)

	// Handlers
	log.Info("Setting up handlers from main...")
	agencyHandler := handlers.NewAgencyHandler(log, statsService)
	titleHandler := handlers.NewTitleHandler(log, statsService)
	ingestHandler := handlers.NewIngestHandler(log, ingestionService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AgencyHandler: agencyHandler,
		TitleHandler:  titleHandler,
		IngestHandler: ingestHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
