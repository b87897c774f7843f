package core

import (
	"context"
	"math"

	"kukuys-master/internal/game"
	"kukuys-master/internal/rng"
	"kukuys-master/internal/sim"
)

// TournamentResult is the full reveal sequence for one run, plus the state
// after any champion reward.
type TournamentResult struct {
	TournamentName string         `json:"tournamentName"`
	Rounds         []sim.Round    `json:"rounds"`
	Champion       string         `json:"champion"`
	CoinsAwarded   int            `json:"coinsAwarded"`
	State          game.GameState `json:"state"`
}

// RunTournament enters the roster into an 8-team double-elimination
// bracket. Entry preconditions are rejected before any randomness is
// consumed. The only persistent mutation is the champion reward, paid iff
// Kukuys wins the grand final.
func (s *Service) RunTournament(ctx context.Context) (TournamentResult, error) {
	if err := s.ResolveCooldowns(ctx); err != nil {
		return TournamentResult{}, err
	}

	players, err := s.store.Players(ctx)
	if err != nil {
		return TournamentResult{}, err
	}
	var roster []game.Player
	for _, p := range players {
		if p.IsRoster {
			roster = append(roster, p)
		}
	}
	if len(roster) < game.RosterSize {
		return TournamentResult{}, ErrNotEnoughRoster
	}
	now := s.now().UnixMilli()
	for _, p := range roster {
		if p.Grinding(now) {
			return TournamentResult{}, ErrStillGrinding
		}
	}

	teams := s.drawTeams(roster)
	bracket, err := sim.RunBracket(s.rng, teams)
	if err != nil {
		return TournamentResult{}, err
	}

	awarded := 0
	if bracket.Champion == game.KukuysTeam {
		if err := s.store.AddCoins(ctx, game.ChampionCoins); err != nil {
			return TournamentResult{}, err
		}
		awarded = game.ChampionCoins
	}
	state, err := s.store.State(ctx)
	if err != nil {
		return TournamentResult{}, err
	}

	return TournamentResult{
		TournamentName: game.RealTournaments[s.rng.IntN(len(game.RealTournaments))],
		Rounds:         bracket.Rounds,
		Champion:       bracket.Champion,
		CoinsAwarded:   awarded,
		State:          state,
	}, nil
}

// drawTeams builds the 8-team field: Kukuys rated from the roster's
// mechanics+drafting average (clamped to 20..100), seven opponents drawn
// without replacement from the real-team pool rated 35..89, then a uniform
// shuffle into seed order.
func (s *Service) drawTeams(roster []game.Player) []sim.Team {
	sum := 0
	for _, p := range roster {
		sum += p.Mechanics + p.Drafting
	}
	rating := int(math.Round(float64(sum) / float64(game.RosterSize)))
	rating = min(100, max(20, rating))

	pool := append([]string(nil), game.RealTeams...)
	rng.Shuffle(s.rng, pool)

	teams := make([]sim.Team, 0, 8)
	teams = append(teams, sim.Team{Name: game.KukuysTeam, Rating: rating})
	for _, name := range pool[:7] {
		teams = append(teams, sim.Team{Name: name, Rating: 35 + s.rng.IntN(55)})
	}
	rng.Shuffle(s.rng, teams)
	return teams
}
