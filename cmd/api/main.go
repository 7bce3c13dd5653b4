// Command api is the Dugout API server.
//
// Usage:
//
//	dugout-api
//	API_PORT=8080 dugout-api

// @title Dugout API
// @version 1.0.0
// @description Baseball player stats CRUD API with on-demand LLM-generated player descriptions.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/dugout/internal/api"
	"github.com/albapepper/dugout/internal/api/handler"
	"github.com/albapepper/dugout/internal/config"
	"github.com/albapepper/dugout/internal/db"
	"github.com/albapepper/dugout/internal/describe"
	"github.com/albapepper/dugout/internal/external"
	"github.com/albapepper/dugout/internal/player"
	"github.com/albapepper/dugout/internal/provider/baseball"
	"github.com/albapepper/dugout/internal/seed"

	_ "github.com/albapepper/dugout/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Wire services
	repo := player.NewRepo(pool.Pool)
	generator := external.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicMaxTokens)
	descriptions := describe.New(repo, generator, logger)
	if cfg.AnthropicAPIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set; description generation will fail until configured")
	}

	feed := baseball.NewClient(cfg.StatsAPIURL, cfg.StatsAPITimeout, 60, logger)
	syncFn := func(ctx context.Context) (seed.SyncResult, error) {
		return seed.SyncPlayers(ctx, feed, repo, logger)
	}

	h := handler.New(repo, descriptions, syncFn, pool, logger)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // description generation can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Dugout API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort),
			"app", fmt.Sprintf("http://localhost:%d/app/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
