// Package player holds the player domain model, derived-stat math, and the
// Postgres repository backing it.
package player

import (
	"math"
	"time"
)

// SortKey selects the ordering of GetAll results.
type SortKey string

const (
	SortHits        SortKey = "hits"
	SortHomeRuns    SortKey = "home_runs"
	SortHitsPerGame SortKey = "hits_per_game"
)

// ParseSortKey maps a query-string value to a SortKey, falling back to
// SortHits for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortHomeRuns:
		return SortHomeRuns
	case SortHitsPerGame:
		return SortHitsPerGame
	default:
		return SortHits
	}
}

// Player is one row of the players table. Rate stats are stored, recomputed
// whenever a feeding counting stat changes. HitsPerGame is never stored; it
// is computed per read.
type Player struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`

	Games          int `json:"games"`
	AtBats         int `json:"at_bats"`
	Runs           int `json:"runs"`
	Hits           int `json:"hits"`
	Doubles        int `json:"doubles"`
	Triples        int `json:"triples"`
	HomeRuns       int `json:"home_runs"`
	RBIs           int `json:"rbis"`
	Walks          int `json:"walks"`
	Strikeouts     int `json:"strikeouts"`
	StolenBases    int `json:"stolen_bases"`
	CaughtStealing int `json:"caught_stealing"`

	BattingAverage     float64 `json:"batting_average"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OPS                float64 `json:"ops"`
	HitsPerGame        float64 `json:"hits_per_game"`

	Description *string `json:"description,omitempty"`
	IsEdited    bool    `json:"is_edited"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecomputeRates overwrites the stored rate stats from the counting stats.
// Zero denominators yield 0, never NaN.
func (p *Player) RecomputeRates() {
	p.BattingAverage = round3(ratio(p.Hits, p.AtBats))
	p.OnBasePercentage = round3(ratio(p.Hits+p.Walks, p.AtBats+p.Walks))
	p.SluggingPercentage = round3(ratio(p.totalBases(), p.AtBats))
	p.OPS = round3(p.OnBasePercentage + p.SluggingPercentage)
	p.HitsPerGame = round3(ratio(p.Hits, p.Games))
}

// totalBases counts singles once, doubles twice, and so on. Singles are
// hits minus the extra-base hits.
func (p *Player) totalBases() int {
	singles := p.Hits - p.Doubles - p.Triples - p.HomeRuns
	if singles < 0 {
		singles = 0
	}
	return singles + 2*p.Doubles + 3*p.Triples + 4*p.HomeRuns
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// round3 rounds to the DECIMAL(5,3) precision the table stores.
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
