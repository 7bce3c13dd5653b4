package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/dugout/internal/player"
	"github.com/albapepper/dugout/internal/provider/baseball"
)

// Fetcher fetches the full player collection from the external feed.
type Fetcher interface {
	FetchPlayers(ctx context.Context) ([]baseball.Record, error)
}

// Upserter writes imported players, keyed by external id.
type Upserter interface {
	UpsertFromExternal(ctx context.Context, p *player.Player) (created bool, err error)
}

// SyncPlayers runs the full import: fetch, map, upsert per record.
//
// A fetch or decode failure fails the whole sync. Per-record failures are
// collected in the result and do not roll back rows already written — the
// sync is not transactional across records.
func SyncPlayers(ctx context.Context, fetcher Fetcher, repo Upserter, logger *slog.Logger) (SyncResult, error) {
	var result SyncResult

	records, err := fetcher.FetchPlayers(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch players: %w", err)
	}
	logger.Info("Syncing players from feed...", "count", len(records))

	for _, rec := range records {
		p, err := rec.ToPlayer()
		if err != nil {
			result.AddErrorf("map record %q: %v", rec.PlayerName, err)
			continue
		}
		created, err := repo.UpsertFromExternal(ctx, &p)
		if err != nil {
			result.AddErrorf("upsert %q: %v", p.ExternalID, err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	logger.Info("Player sync complete", "summary", result.Summary())
	return result, nil
}
