package core

import (
	"context"

	"kukuys-master/internal/game"
)

// ResolveCooldowns applies expired grind and sleep timers exactly once
// each and clears them. Resolution is lazy: it runs before every
// client-observable read instead of on a background timer, so a cleared
// timer is the proof the effect was applied.
func (s *Service) ResolveCooldowns(ctx context.Context) error {
	now := s.now().UnixMilli()
	players, err := s.store.Players(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		changed := false
		if p.GrindingUntil != nil && *p.GrindingUntil <= now {
			s.applyGrindOutcome(&p)
			p.GrindingUntil = nil
			changed = true
		}
		if p.SleepingUntil != nil && *p.SleepingUntil <= now {
			p.Energy = min(100, p.Energy+game.SleepEnergyGain)
			p.SleepingUntil = nil
			changed = true
		}
		if changed {
			if err := s.store.UpdatePlayer(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyGrindOutcome flips a fair coin: +2 mechanics / +1 mental clamped at
// the tier cap, or -2 / -1 floored at 0. Both stats always move the same
// direction.
func (s *Service) applyGrindOutcome(p *game.Player) {
	caps := s.cfg.CapFor(p.Tier)
	if s.rng.Float64() < 0.5 {
		p.Mechanics = min(p.Mechanics+2, caps.Mechanics)
		p.MentalStrength = min(p.MentalStrength+1, caps.Mental)
	} else {
		p.Mechanics = max(0, p.Mechanics-2)
		p.MentalStrength = max(0, p.MentalStrength-1)
	}
}
