package main

import (
	"fmt"
	"os"

	"piggybank/internal/config"
	"piggybank/internal/database"
	"piggybank/internal/logger"
	"piggybank/internal/server"
	"piggybank/internal/services"
)

// @title           Smart Piggy Bank API
// @version         1.0
// @description     Savings goals with deposits, withdrawals and a derived balance per goal.

// @host      localhost:8000
// @BasePath  /

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	if err := services.NewSettingsService(db).EnsureDefaults(); err != nil {
		return fmt.Errorf("failed to create default settings: %w", err)
	}

	router := server.New(db, appConfig)

	log.Infof("Starting Smart Piggy Bank API on port %s (driver %s)", appConfig.Port, appConfig.DBDriver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
