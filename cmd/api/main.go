// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/infrastructure/database/postgres"
	"github.com/arianshop/backend/internal/infrastructure/database/redis"
	"github.com/arianshop/backend/internal/interfaces/http"
	"github.com/arianshop/backend/internal/interfaces/http/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := middleware.NewLogger(cfg)
	logger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}
	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	migration := postgres.NewMigration(db.GetDB())

	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		logger.Warnf("Index creation failed: %v", err)
	}

	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logger.Warnf("Data seeding failed: %v", err)
		}
	}

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), logger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logger.Info("Server shutdown completed")
}
