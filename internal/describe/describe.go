// Package describe implements the read-through cache for LLM-generated
// player descriptions: serve the stored value, otherwise generate once and
// persist it.
package describe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albapepper/dugout/internal/external"
	"github.com/albapepper/dugout/internal/player"
)

// ErrGeneration signals that the text-generation provider failed. Nothing is
// cached in that case; the next request attempts generation again.
var ErrGeneration = errors.New("description generation failed")

// Store is the repository subset the service needs.
type Store interface {
	GetByID(ctx context.Context, id int64) (*player.Player, error)
	SetDescription(ctx context.Context, id int64, text string) error
}

// Service generates and caches player descriptions.
type Service struct {
	store  Store
	gen    external.TextGenerator
	logger *slog.Logger
}

// New creates a description service.
func New(store Store, gen external.TextGenerator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, gen: gen, logger: logger}
}

// GetOrCreate returns the cached description if present, else generates,
// persists, and returns one. Two concurrent first-time calls for the same
// player may both reach the provider; the last write wins.
func (s *Service) GetOrCreate(ctx context.Context, id int64) (string, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if p.Description != nil && *p.Description != "" {
		return *p.Description, nil
	}

	text, err := s.gen.Generate(ctx, BuildPrompt(p))
	if err != nil {
		s.logger.Error("description generation failed", "player_id", id, "error", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if err := s.store.SetDescription(ctx, id, text); err != nil {
		return "", fmt.Errorf("cache description for player %d: %w", id, err)
	}
	return text, nil
}

// BuildPrompt renders the deterministic stats prompt for a player.
func BuildPrompt(p *player.Player) string {
	stats := fmt.Sprintf(`%s was a %s who played in %d games.
Career statistics:
- At-bats: %d
- Hits: %d
- Home runs: %d
- RBIs: %d
- Batting average: %.3f
- On-base percentage: %.3f
- Slugging percentage: %.3f
- OPS: %.3f
- Stolen bases: %d`,
		p.PlayerName, p.Position, p.Games,
		p.AtBats, p.Hits, p.HomeRuns, p.RBIs,
		p.BattingAverage, p.OnBasePercentage, p.SluggingPercentage, p.OPS,
		p.StolenBases)

	return fmt.Sprintf(`Write a brief, engaging description (2-3 sentences) about this baseball player based on their statistics:

%s

Focus on their most notable achievements and career highlights. Make it interesting and informative.`, stats)
}
