// Package baseball provides the HTTP client for the external baseball stats
// feed and the mapping from its records onto the domain model.
//
// The feed is a single unauthenticated GET returning a JSON array. Several of
// its keys are misnamed upstream ("third baseman" is the triples column,
// "a walk" is the walks column); the struct tags below match the feed as it
// actually is, not as it should be.
package baseball

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/dugout/internal/player"
)

// Record is one raw player entry from the feed.
type Record struct {
	PlayerName     string `json:"Player name"`
	Position       string `json:"position"`
	Games          int    `json:"Games"`
	AtBats         int    `json:"At-bat"`
	Runs           int    `json:"Runs"`
	Hits           int    `json:"Hits"`
	Doubles        int    `json:"Double (2B)"`
	Triples        int    `json:"third baseman"`
	HomeRuns       int    `json:"home run"`
	RBIs           int    `json:"run batted in"`
	Walks          int    `json:"a walk"`
	Strikeouts     int    `json:"Strikeouts"`
	StolenBases    int    `json:"stolen base"`
	CaughtStealing int    `json:"Caught stealing"`
}

// ToPlayer normalizes a record onto the repository's row shape. The feed has
// no stable numeric id, so the raw player name doubles as the external id.
// Rate stats are recomputed from the counting stats rather than trusted from
// the feed, so imports and manual edits share one formula.
func (rec Record) ToPlayer() (player.Player, error) {
	if rec.PlayerName == "" {
		return player.Player{}, fmt.Errorf("record missing player name")
	}
	p := player.Player{
		ExternalID:     rec.PlayerName,
		PlayerName:     rec.PlayerName,
		Position:       rec.Position,
		Games:          rec.Games,
		AtBats:         rec.AtBats,
		Runs:           rec.Runs,
		Hits:           rec.Hits,
		Doubles:        rec.Doubles,
		Triples:        rec.Triples,
		HomeRuns:       rec.HomeRuns,
		RBIs:           rec.RBIs,
		Walks:          rec.Walks,
		Strikeouts:     rec.Strikeouts,
		StolenBases:    rec.StolenBases,
		CaughtStealing: rec.CaughtStealing,
	}
	p.RecomputeRates()
	return p, nil
}

// Client fetches from the stats feed with a timeout and a rate limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a feed client.
func NewClient(baseURL string, timeout time.Duration, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// FetchPlayers performs a rate-limited GET of the full player collection.
func (c *Client) FetchPlayers(ctx context.Context) ([]Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats feed returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("fetched players from feed", "count", len(records))
	return records, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
