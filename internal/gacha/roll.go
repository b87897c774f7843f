// Package gacha implements the weighted recruitment roll: tier by
// inverse-CDF walk over the rate table, name from the tier pool, stats
// from the tier base.
package gacha

import (
	"fmt"
	"time"

	"kukuys-master/internal/game"
	"kukuys-master/internal/rng"
)

// RollTier draws a uniform value in [0,100) and walks the rate table in
// order, returning the first tier whose cumulative rate exceeds the draw.
// Table order is part of the contract.
func RollTier(rates []game.TierRate, r rng.Source) game.Tier {
	draw := r.Float64() * 100
	cumulative := 0
	tier := rates[0].Tier
	for _, tr := range rates {
		cumulative += tr.Rate
		if draw < float64(cumulative) {
			tier = tr.Tier
			break
		}
	}
	return tier
}

// Roll creates a freshly recruited player: tier, name, role and stats all
// rolled; energy full, no flags, no cooldowns. The caller is responsible
// for charging the recruit cost atomically with insertion.
func Roll(cfg game.Config, r rng.Source, now time.Time) game.Player {
	tier := RollTier(cfg.RecruitRates, r)

	pool := cfg.RecruitPool[tier]
	if len(pool) == 0 {
		pool = cfg.RecruitPool[game.TierCommon]
	}
	name := pool[r.IntN(len(pool))]

	base := game.TierBase(tier)
	return game.Player{
		ID:             fmt.Sprintf("%s_%d", name, now.UnixMilli()),
		Name:           name,
		Tier:           tier,
		Role:           game.Roles[r.IntN(len(game.Roles))],
		Drafting:       r.IntN(25) + base,
		Mechanics:      r.IntN(25) + base,
		MentalStrength: r.IntN(25) + base,
		Leadership:     r.IntN(25) + base,
		Trashtalk:      r.IntN(100),
		Energy:         100,
	}
}
