package core

import (
	"context"

	"kukuys-master/internal/game"
)

// Action dispatches a player action. Cooldowns are resolved first so the
// busy checks below never act on an already-elapsed timer, and resolved
// again before the returned snapshot.
func (s *Service) Action(ctx context.Context, playerID, action string) (game.GameState, []game.Player, error) {
	if err := s.ResolveCooldowns(ctx); err != nil {
		return game.GameState{}, nil, err
	}
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return game.GameState{}, nil, err
	}

	switch action {
	case "recycle":
		err = s.store.DeletePlayer(ctx, p.ID, game.RecycleCoins)
	case "train":
		err = s.train(ctx, p)
	case "sleep":
		err = s.sleep(ctx, p)
	case "toggle_stream":
		p.IsStreaming = !p.IsStreaming
		err = s.store.UpdatePlayer(ctx, p)
	case "toggle_roster":
		err = s.toggleRoster(ctx, p)
	default:
		err = ErrUnknownAction
	}
	if err != nil {
		return game.GameState{}, nil, err
	}

	return s.Snapshot(ctx)
}

// train starts a grind: costs 20 energy, runs 5 minutes, cannot be
// interrupted. Refused while busy or when both stats already sit at the
// tier cap.
func (s *Service) train(ctx context.Context, p game.Player) error {
	if p.Energy < game.GrindEnergyCost {
		return ErrTooTired
	}
	now := s.now().UnixMilli()
	if p.Grinding(now) {
		return ErrGrindingBusy
	}
	if p.Sleeping(now) {
		return ErrSleepingBusy
	}
	caps := s.cfg.CapFor(p.Tier)
	if p.Mechanics >= caps.Mechanics && p.MentalStrength >= caps.Mental {
		return ErrAtTierCap
	}
	p.Energy = max(0, p.Energy-game.GrindEnergyCost)
	until := now + game.GrindDuration.Milliseconds()
	p.GrindingUntil = &until
	return s.store.UpdatePlayer(ctx, p)
}

func (s *Service) sleep(ctx context.Context, p game.Player) error {
	now := s.now().UnixMilli()
	if p.Grinding(now) {
		return ErrGrindingBusy
	}
	if p.Sleeping(now) {
		return ErrAlreadySleeping
	}
	until := now + game.SleepDuration.Milliseconds()
	p.SleepingUntil = &until
	return s.store.UpdatePlayer(ctx, p)
}

// toggleRoster flips roster membership. Joining requires a free roster
// spot and no other copy of the same player name already rostered. Role
// composition is deliberately not checked here; it is a UI suggestion
// only.
func (s *Service) toggleRoster(ctx context.Context, p game.Player) error {
	if !p.IsRoster {
		players, err := s.store.Players(ctx)
		if err != nil {
			return err
		}
		rostered := 0
		for _, other := range players {
			if !other.IsRoster {
				continue
			}
			rostered++
			if other.Name == p.Name && other.ID != p.ID {
				return ErrDuplicateRoster
			}
		}
		if rostered >= game.RosterSize {
			return ErrRosterFull
		}
	}
	p.IsRoster = !p.IsRoster
	return s.store.UpdatePlayer(ctx, p)
}

// Recycle removes a player and refunds a fixed small amount.
func (s *Service) Recycle(ctx context.Context, playerID string) error {
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return err
	}
	return s.store.DeletePlayer(ctx, p.ID, game.RecycleCoins)
}
