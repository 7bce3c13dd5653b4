package player

import "strings"

// Update is a partial edit from the API. Nil fields are left untouched.
// ID, external_id, description, and the edited flag are not editable here:
// Apply always marks the row edited, and the cached description survives
// stat edits by design.
type Update struct {
	PlayerName *string `json:"player_name"`
	Position   *string `json:"position"`

	Games          *int `json:"games"`
	AtBats         *int `json:"at_bats"`
	Runs           *int `json:"runs"`
	Hits           *int `json:"hits"`
	Doubles        *int `json:"doubles"`
	Triples        *int `json:"triples"`
	HomeRuns       *int `json:"home_runs"`
	RBIs           *int `json:"rbis"`
	Walks          *int `json:"walks"`
	Strikeouts     *int `json:"strikeouts"`
	StolenBases    *int `json:"stolen_bases"`
	CaughtStealing *int `json:"caught_stealing"`
}

// Validate rejects negative counting stats and blanked identity fields.
func (u *Update) Validate() error {
	if u.PlayerName != nil && strings.TrimSpace(*u.PlayerName) == "" {
		return &ValidationError{Field: "player_name", Reason: "must not be blank"}
	}
	if u.Position != nil && strings.TrimSpace(*u.Position) == "" {
		return &ValidationError{Field: "position", Reason: "must not be blank"}
	}
	counts := map[string]*int{
		"games":           u.Games,
		"at_bats":         u.AtBats,
		"runs":            u.Runs,
		"hits":            u.Hits,
		"doubles":         u.Doubles,
		"triples":         u.Triples,
		"home_runs":       u.HomeRuns,
		"rbis":            u.RBIs,
		"walks":           u.Walks,
		"strikeouts":      u.Strikeouts,
		"stolen_bases":    u.StolenBases,
		"caught_stealing": u.CaughtStealing,
	}
	for field, v := range counts {
		if v != nil && *v < 0 {
			return &ValidationError{Field: field, Reason: "must not be negative"}
		}
	}
	return nil
}

// Apply merges the provided fields into p, recomputes the stored rate stats,
// and marks the row edited. Callers must Validate first.
func (u *Update) Apply(p *Player) {
	if u.PlayerName != nil {
		p.PlayerName = *u.PlayerName
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	setInt(&p.Games, u.Games)
	setInt(&p.AtBats, u.AtBats)
	setInt(&p.Runs, u.Runs)
	setInt(&p.Hits, u.Hits)
	setInt(&p.Doubles, u.Doubles)
	setInt(&p.Triples, u.Triples)
	setInt(&p.HomeRuns, u.HomeRuns)
	setInt(&p.RBIs, u.RBIs)
	setInt(&p.Walks, u.Walks)
	setInt(&p.Strikeouts, u.Strikeouts)
	setInt(&p.StolenBases, u.StolenBases)
	setInt(&p.CaughtStealing, u.CaughtStealing)

	p.RecomputeRates()
	p.IsEdited = true
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
