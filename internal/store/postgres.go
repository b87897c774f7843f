// Package store is the Postgres-backed roster store. All multi-field
// mutations that pair a coin change with a row change run in a single
// transaction.
package store

import (
	"context"
	"errors"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kukuys-master/internal/core"
	"kukuys-master/internal/game"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// MustDB connects with retries and dies if the database never comes up.
func MustDB(url string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal(err)
	}
	cfg.MaxConns = 10

	var pool *pgxpool.Pool

	deadline := time.Now().Add(30 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				cancel()
				break
			}
			pool.Close()
			err = ctx.Err()
		}
		cancel()

		if time.Now().After(deadline) {
			log.Fatalf("failed to connect DB after retries: %v", err)
		}
		time.Sleep(1 * time.Second)
	}

	return pool
}

const schema = `
CREATE TABLE IF NOT EXISTS game_state (
	id INT PRIMARY KEY CHECK (id = 1),
	coins INT NOT NULL DEFAULT 1000 CHECK (coins >= 0),
	internet_level INT NOT NULL DEFAULT 1,
	food_level INT NOT NULL DEFAULT 1,
	collection_slots INT NOT NULL DEFAULT 8,
	last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	tier TEXT NOT NULL,
	role TEXT,
	drafting INT NOT NULL DEFAULT 0,
	mechanics INT NOT NULL DEFAULT 0,
	mental_strength INT NOT NULL DEFAULT 0,
	leadership INT NOT NULL DEFAULT 0,
	trashtalk INT NOT NULL DEFAULT 0,
	energy INT NOT NULL DEFAULT 100,
	is_roster BOOLEAN NOT NULL DEFAULT FALSE,
	is_streaming BOOLEAN NOT NULL DEFAULT FALSE,
	image_url TEXT,
	team TEXT,
	grinding_until BIGINT,
	sleeping_until BIGINT
);

CREATE TABLE IF NOT EXISTS logs (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	action TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT ''
);

INSERT INTO game_state (id) VALUES (1) ON CONFLICT DO NOTHING;
`

type Store struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, db *pgxpool.Pool) (*Store, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// LogAction records an audit row; best effort, never fails the caller.
func (s *Store) LogAction(ctx context.Context, action, details string) {
	_, _ = s.db.Exec(ctx,
		"INSERT INTO logs(action, details) VALUES ($1,$2)",
		action, details,
	)
}

func (s *Store) State(ctx context.Context) (game.GameState, error) {
	var st game.GameState
	err := s.db.QueryRow(ctx,
		"SELECT coins, internet_level, food_level, collection_slots FROM game_state WHERE id=1",
	).Scan(&st.Coins, &st.InternetLevel, &st.FoodLevel, &st.CollectionSlots)
	return st, err
}

func (s *Store) AddCoins(ctx context.Context, delta int) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE game_state SET coins = coins + $1, last_updated = now() WHERE id=1 AND coins + $1 >= 0",
		delta,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrInsufficientFunds
	}
	return nil
}

func (s *Store) ExpandSlots(ctx context.Context, cost, amount int) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE game_state
		 SET coins = coins - $1, collection_slots = collection_slots + $2, last_updated = now()
		 WHERE id=1 AND coins >= $1`,
		cost, amount,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrInsufficientFunds
	}
	return nil
}

var playerColumns = []string{
	"id", "name", "tier", "role",
	"drafting", "mechanics", "mental_strength", "leadership", "trashtalk",
	"energy", "is_roster", "is_streaming",
	"image_url", "team", "grinding_until", "sleeping_until",
}

func scanPlayer(row pgx.Row) (game.Player, error) {
	var p game.Player
	var role *string
	err := row.Scan(&p.ID, &p.Name, &p.Tier, &role,
		&p.Drafting, &p.Mechanics, &p.MentalStrength, &p.Leadership, &p.Trashtalk,
		&p.Energy, &p.IsRoster, &p.IsStreaming,
		&p.ImageURL, &p.Team, &p.GrindingUntil, &p.SleepingUntil)
	if role != nil {
		p.Role = *role
	}
	return p, err
}

func (s *Store) Players(ctx context.Context) ([]game.Player, error) {
	sql, args, err := qb.Select(playerColumns...).From("players").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Player(ctx context.Context, id string) (game.Player, error) {
	sql, args, err := qb.Select(playerColumns...).From("players").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return game.Player{}, err
	}
	p, err := scanPlayer(s.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return game.Player{}, core.ErrPlayerNotFound
	}
	return p, err
}

func (s *Store) InsertPlayer(ctx context.Context, p game.Player, cost int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"UPDATE game_state SET coins = coins - $1, last_updated = now() WHERE id=1 AND coins >= $1",
		cost,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrInsufficientFunds
	}

	sql, args, err := qb.Insert("players").
		Columns(playerColumns...).
		Values(p.ID, p.Name, p.Tier, p.Role,
			p.Drafting, p.Mechanics, p.MentalStrength, p.Leadership, p.Trashtalk,
			p.Energy, p.IsRoster, p.IsStreaming,
			p.ImageURL, p.Team, p.GrindingUntil, p.SleepingUntil).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.LogAction(ctx, "recruit", "player_id="+p.ID)
	return nil
}

// UpdatePlayer writes gameplay fields only. Role, team and image_url stay
// untouched so a racing enrichment write is never clobbered.
func (s *Store) UpdatePlayer(ctx context.Context, p game.Player) error {
	sql, args, err := qb.Update("players").
		Set("drafting", p.Drafting).
		Set("mechanics", p.Mechanics).
		Set("mental_strength", p.MentalStrength).
		Set("leadership", p.Leadership).
		Set("trashtalk", p.Trashtalk).
		Set("energy", p.Energy).
		Set("is_roster", p.IsRoster).
		Set("is_streaming", p.IsStreaming).
		Set("grinding_until", p.GrindingUntil).
		Set("sleeping_until", p.SleepingUntil).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrPlayerNotFound
	}
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, id string, refund int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM players WHERE id=$1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrPlayerNotFound
	}
	if refund != 0 {
		if _, err := tx.Exec(ctx,
			"UPDATE game_state SET coins = coins + $1, last_updated = now() WHERE id=1",
			refund,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.LogAction(ctx, "recycle", "player_id="+id)
	return nil
}

// ApplyEnrichment sets only the fields the lookup produced; a player
// deleted in the meantime is not an error.
func (s *Store) ApplyEnrichment(ctx context.Context, id string, e core.Enrichment) error {
	upd := qb.Update("players").Where(sq.Eq{"id": id})
	set := false
	if e.Role != nil {
		upd = upd.Set("role", *e.Role)
		set = true
	}
	if e.Team != nil {
		upd = upd.Set("team", *e.Team)
		set = true
	}
	if e.ImageURL != nil {
		upd = upd.Set("image_url", *e.ImageURL)
		set = true
	}
	if !set {
		return nil
	}
	sql, args, err := upd.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, sql, args...)
	return err
}

func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM players"); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE game_state
		 SET coins = 1000, collection_slots = 8, internet_level = 1, food_level = 1, last_updated = now()
		 WHERE id=1`,
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.LogAction(ctx, "reset_collection", "")
	return nil
}

func (s *Store) StreamingSweep(ctx context.Context, income, energyDrain int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var streaming int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM players WHERE is_streaming",
	).Scan(&streaming); err != nil {
		return err
	}
	if streaming > 0 {
		if _, err := tx.Exec(ctx,
			"UPDATE game_state SET coins = coins + $1, last_updated = now() WHERE id=1",
			streaming*income,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			"UPDATE players SET energy = GREATEST(0, energy - $1) WHERE is_streaming",
			energyDrain,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
