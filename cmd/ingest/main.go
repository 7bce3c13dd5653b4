// Command ingest is the Dugout data CLI.
//
// Usage:
//
//	dugout-ingest initdb
//	dugout-ingest sync
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/dugout/internal/config"
	"github.com/albapepper/dugout/internal/db"
	"github.com/albapepper/dugout/internal/player"
	"github.com/albapepper/dugout/internal/provider/baseball"
	"github.com/albapepper/dugout/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "dugout-ingest",
		Short: "Dugout data CLI",
	}

	root.AddCommand(initDBCmd())
	root.AddCommand(syncCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Apply the database schema (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				logger.Info("Applying schema...")
				if err := pool.Init(ctx); err != nil {
					return err
				}
				logger.Info("Schema applied")
				return nil
			})
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Import players from the external stats feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				feed := baseball.NewClient(cfg.StatsAPIURL, cfg.StatsAPITimeout, 60, logger)
				repo := player.NewRepo(pool.Pool)

				start := time.Now()
				result, err := seed.SyncPlayers(ctx, feed, repo, logger)
				if err != nil {
					return err
				}
				logger.Info("Sync finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("sync error", "error", e)
				}
				return nil
			})
		},
	}
}

// withPool loads config, opens the pool, and runs fn with signal handling.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
