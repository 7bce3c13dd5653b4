package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/dugout/internal/config"
	"github.com/albapepper/dugout/internal/db"
)

// playerColumns is the canonical column list for SELECTs; scanPlayer must
// stay in sync with it.
const playerColumns = `id, external_id, player_name, position, games, at_bats, runs, hits,
	doubles, triples, home_runs, rbis, walks, strikeouts, stolen_bases, caught_stealing,
	batting_average, on_base_percentage, slugging_percentage, ops,
	description, is_edited, created_at, updated_at`

// Repo is the Postgres-backed player repository.
type Repo struct {
	db db.Querier
}

// NewRepo creates a repository on top of a pool (or a mock in tests).
func NewRepo(q db.Querier) *Repo {
	return &Repo{db: q}
}

// GetAll returns every player ordered descending by the sort key, ties broken
// by ascending id. hits_per_game is computed in SQL so games = 0 sorts as 0.
func (r *Repo) GetAll(ctx context.Context, key SortKey) ([]Player, error) {
	var orderBy string
	switch key {
	case SortHomeRuns:
		orderBy = "home_runs DESC, id ASC"
	case SortHitsPerGame:
		orderBy = "(CASE WHEN games = 0 THEN 0 ELSE hits::float8 / games END) DESC, id ASC"
	default:
		orderBy = "hits DESC, id ASC"
	}

	rows, err := r.db.Query(ctx, `SELECT `+playerColumns+` FROM `+config.PlayersTable+` ORDER BY `+orderBy)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// GetByID returns a single player or ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM `+config.PlayersTable+` WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return &p, nil
}

// Update applies a partial edit inside a transaction. The row is locked for
// the read-modify-write so rate-stat recomputation cannot interleave with a
// concurrent edit of the same row. The cached description is never touched.
func (r *Repo) Update(ctx context.Context, id int64, upd Update) (*Player, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+playerColumns+` FROM `+config.PlayersTable+` WHERE id = $1 FOR UPDATE`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock player %d: %w", id, err)
	}

	upd.Apply(&p)

	err = tx.QueryRow(ctx, `
		UPDATE `+config.PlayersTable+` SET
			player_name = $2, position = $3, games = $4, at_bats = $5,
			runs = $6, hits = $7, doubles = $8, triples = $9,
			home_runs = $10, rbis = $11, walks = $12, strikeouts = $13,
			stolen_bases = $14, caught_stealing = $15,
			batting_average = $16, on_base_percentage = $17,
			slugging_percentage = $18, ops = $19,
			is_edited = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		id, p.PlayerName, p.Position, p.Games, p.AtBats,
		p.Runs, p.Hits, p.Doubles, p.Triples,
		p.HomeRuns, p.RBIs, p.Walks, p.Strikeouts,
		p.StolenBases, p.CaughtStealing,
		p.BattingAverage, p.OnBasePercentage,
		p.SluggingPercentage, p.OPS,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update player %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return &p, nil
}

// UpsertFromExternal writes an imported record keyed by external_id. A new
// row starts unedited with no description; an existing row gets only its
// identity and stat fields refreshed — description and is_edited survive
// re-imports. Returns whether a row was created.
func (r *Repo) UpsertFromExternal(ctx context.Context, p *Player) (created bool, err error) {
	err = r.db.QueryRow(ctx, `
		INSERT INTO `+config.PlayersTable+` (
			external_id, player_name, position, games, at_bats, runs, hits,
			doubles, triples, home_runs, rbis, walks, strikeouts,
			stolen_bases, caught_stealing,
			batting_average, on_base_percentage, slugging_percentage, ops
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (external_id) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			position = EXCLUDED.position,
			games = EXCLUDED.games,
			at_bats = EXCLUDED.at_bats,
			runs = EXCLUDED.runs,
			hits = EXCLUDED.hits,
			doubles = EXCLUDED.doubles,
			triples = EXCLUDED.triples,
			home_runs = EXCLUDED.home_runs,
			rbis = EXCLUDED.rbis,
			walks = EXCLUDED.walks,
			strikeouts = EXCLUDED.strikeouts,
			stolen_bases = EXCLUDED.stolen_bases,
			caught_stealing = EXCLUDED.caught_stealing,
			batting_average = EXCLUDED.batting_average,
			on_base_percentage = EXCLUDED.on_base_percentage,
			slugging_percentage = EXCLUDED.slugging_percentage,
			ops = EXCLUDED.ops,
			updated_at = NOW()
		RETURNING id, (xmax = 0)`,
		p.ExternalID, p.PlayerName, p.Position, p.Games, p.AtBats, p.Runs, p.Hits,
		p.Doubles, p.Triples, p.HomeRuns, p.RBIs, p.Walks, p.Strikeouts,
		p.StolenBases, p.CaughtStealing,
		p.BattingAverage, p.OnBasePercentage, p.SluggingPercentage, p.OPS,
	).Scan(&p.ID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert player %q: %w", p.ExternalID, err)
	}
	return created, nil
}

// SetDescription stores the generated description. The edited flag is not a
// part of this write; only manual stat edits set it.
func (r *Repo) SetDescription(ctx context.Context, id int64, text string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE `+config.PlayersTable+` SET description = $2, updated_at = NOW() WHERE id = $1`,
		id, text)
	if err != nil {
		return fmt.Errorf("set description for player %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored players.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM `+config.PlayersTable).Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

// scanPlayer reads one row in playerColumns order and derives hits_per_game.
func scanPlayer(row pgx.Row) (Player, error) {
	var p Player
	err := row.Scan(
		&p.ID, &p.ExternalID, &p.PlayerName, &p.Position, &p.Games, &p.AtBats, &p.Runs, &p.Hits,
		&p.Doubles, &p.Triples, &p.HomeRuns, &p.RBIs, &p.Walks, &p.Strikeouts, &p.StolenBases, &p.CaughtStealing,
		&p.BattingAverage, &p.OnBasePercentage, &p.SluggingPercentage, &p.OPS,
		&p.Description, &p.IsEdited, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Player{}, err
	}
	p.HitsPerGame = round3(ratio(p.Hits, p.Games))
	return p, nil
}
