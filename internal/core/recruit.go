package core

import (
	"context"

	"kukuys-master/internal/gacha"
	"kukuys-master/internal/game"
)

// Recruit rolls a new player. Preconditions (coins, capacity) are checked
// before any randomness is consumed; the coin deduction and the insert are
// one transaction, so a failed recruit leaves no trace.
func (s *Service) Recruit(ctx context.Context) (game.Player, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return game.Player{}, err
	}
	if state.Coins < game.RecruitCost {
		return game.Player{}, ErrInsufficientFunds
	}
	players, err := s.store.Players(ctx)
	if err != nil {
		return game.Player{}, err
	}
	if len(players) >= state.CollectionSlots {
		return game.Player{}, ErrCollectionFull
	}

	p := gacha.Roll(s.cfg, s.rng, s.now())
	if err := s.store.InsertPlayer(ctx, p, game.RecruitCost); err != nil {
		return game.Player{}, err
	}

	// Liquipedia lookups run in the background; their writes are
	// field-level and never block or fail the recruit.
	s.enrichAsync(p.ID, p.Name)

	return p, nil
}

// ExpandCollection buys one extra collection slot.
func (s *Service) ExpandCollection(ctx context.Context) (game.GameState, error) {
	state, err := s.store.State(ctx)
	if err != nil {
		return game.GameState{}, err
	}
	if state.Coins < game.SlotExpandCost {
		return game.GameState{}, ErrExpandFunds
	}
	if err := s.store.ExpandSlots(ctx, game.SlotExpandCost, game.SlotExpandAmount); err != nil {
		return game.GameState{}, err
	}
	return s.store.State(ctx)
}
