package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/KAMEVETRICS/gensyn-portal/database/migrations"
	"github.com/KAMEVETRICS/gensyn-portal/internal/api"
	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
	"github.com/KAMEVETRICS/gensyn-portal/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := migrations.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := storage.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, cfg)

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
