// Package core orchestrates the game: cooldown resolution, recruitment,
// player actions and tournament runs. It owns the narrow contracts for
// its collaborators (roster store, enrichment) and performs no transport
// or SQL work itself.
package core

import (
	"context"
	"log"
	"time"

	"kukuys-master/internal/game"
	"kukuys-master/internal/rng"
)

// Store is the roster-store contract: get/list/update/delete over Player
// records plus the singleton GameState. Multi-field mutations that pair a
// coin change with a row change must be atomic.
type Store interface {
	State(ctx context.Context) (game.GameState, error)
	// AddCoins adjusts the balance; a delta that would drive coins
	// negative fails with ErrInsufficientFunds and changes nothing.
	AddCoins(ctx context.Context, delta int) error
	// ExpandSlots deducts cost and adds slots in one transaction.
	ExpandSlots(ctx context.Context, cost, amount int) error

	Players(ctx context.Context) ([]game.Player, error)
	Player(ctx context.Context, id string) (game.Player, error)
	// InsertPlayer inserts p and deducts cost atomically; neither half
	// applies on failure.
	InsertPlayer(ctx context.Context, p game.Player, cost int) error
	// UpdatePlayer writes gameplay fields (stats, energy, flags,
	// cooldowns) only. Enrichment fields are written exclusively through
	// ApplyEnrichment so the two write paths can race without clobbering
	// each other.
	UpdatePlayer(ctx context.Context, p game.Player) error
	// DeletePlayer removes the player and credits refund atomically.
	DeletePlayer(ctx context.Context, id string, refund int) error
	// ApplyEnrichment sets only the non-nil fields of e.
	ApplyEnrichment(ctx context.Context, id string, e Enrichment) error

	Reset(ctx context.Context) error
	// StreamingSweep credits income per streaming player and drains their
	// energy, as one transaction.
	StreamingSweep(ctx context.Context, income, energyDrain int) error
}

// Enrichment is the late-arriving external data for a player. Nil fields
// mean the lookup found nothing and the existing value stays.
type Enrichment struct {
	ImageURL *string
	Team     *string
	Role     *string
}

// Enricher looks up role/team/image for a player name. Lookup is called
// fire-and-forget after a recruit and its failures never reach the
// client; the single-field methods back the user-initiated refresh and
// backfill endpoints.
type Enricher interface {
	Lookup(ctx context.Context, name string) (Enrichment, error)
	PlayerImage(ctx context.Context, name string) (string, error)
	PlayerTeam(ctx context.Context, name string) (string, error)
}

type Service struct {
	store   Store
	enrich  Enricher // nil disables enrichment
	cfg     game.Config
	rng     rng.Source
	now     func() time.Time
	timeout time.Duration // budget for background enrichment
}

func New(store Store, enricher Enricher, cfg game.Config, r rng.Source) *Service {
	return &Service{
		store:   store,
		enrich:  enricher,
		cfg:     cfg,
		rng:     r,
		now:     time.Now,
		timeout: 5 * time.Minute,
	}
}

// Config exposes the live roll tables for /api/recruit-config so the
// client display can never drift from what the roller actually uses.
func (s *Service) Config() game.Config { return s.cfg }

// Snapshot resolves expired cooldowns and returns the state a client may
// observe. Every read path goes through here.
func (s *Service) Snapshot(ctx context.Context) (game.GameState, []game.Player, error) {
	if err := s.ResolveCooldowns(ctx); err != nil {
		return game.GameState{}, nil, err
	}
	state, err := s.store.State(ctx)
	if err != nil {
		return game.GameState{}, nil, err
	}
	players, err := s.store.Players(ctx)
	if err != nil {
		return game.GameState{}, nil, err
	}
	return state, players, nil
}

// AddCoins is the test-coins faucet.
func (s *Service) AddCoins(ctx context.Context, amount int) (game.GameState, error) {
	if err := s.store.AddCoins(ctx, amount); err != nil {
		return game.GameState{}, err
	}
	return s.store.State(ctx)
}

// Reset wipes all players and restores the initial game state.
func (s *Service) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}

// StreamingSweep is the periodic passive-income tick: +10 coins per
// streaming player, -2 energy each.
func (s *Service) StreamingSweep(ctx context.Context) error {
	return s.store.StreamingSweep(ctx, game.StreamIncome, game.StreamEnergyDrain)
}

func (s *Service) enrichAsync(id, name string) {
	if s.enrich == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		e, err := s.enrich.Lookup(ctx, name)
		if err != nil {
			log.Printf("enrichment lookup failed for %s: %v", name, err)
			return
		}
		if err := s.store.ApplyEnrichment(ctx, id, e); err != nil {
			log.Printf("enrichment apply failed for %s: %v", name, err)
		}
	}()
}
