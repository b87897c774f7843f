package sim

import (
	"fmt"

	"kukuys-master/internal/rng"
)

// Match is one bracket series as returned to the client. Ephemeral: lives
// only in a tournament-run response.
type Match struct {
	Team1      string   `json:"team1"`
	Team2      string   `json:"team2"`
	Winner     string   `json:"winner"`
	Team1Odds  int      `json:"team1Odds"`
	Team2Odds  int      `json:"team2Odds"`
	MapResults []string `json:"mapResults"`
}

// Round carries a human-readable label and its matches. The slice order of
// rounds and matches is the reveal order consumed by the client, so it is
// a contract.
type Round struct {
	Round   string  `json:"round"`
	Matches []Match `json:"matches"`
}

type BracketResult struct {
	Rounds   []Round
	Champion string
}

func toMatch(t1, t2 Team, res SeriesResult) Match {
	return Match{
		Team1:      t1.Name,
		Team2:      t2.Name,
		Winner:     res.Winner,
		Team1Odds:  res.Team1Odds,
		Team2Odds:  res.Team2Odds,
		MapResults: res.MapResults,
	}
}

// RunBracket simulates the fixed 8-team double-elimination bracket. Teams
// must already be in shuffled seed order; seeding is never skill-based.
// Every series is a BO3 except the grand final (BO5).
func RunBracket(r rng.Source, teams []Team) (BracketResult, error) {
	if len(teams) != 8 {
		return BracketResult{}, fmt.Errorf("bracket needs exactly 8 teams, got %d", len(teams))
	}

	var rounds []Round

	// Upper bracket quarterfinals: consecutive seed pairs.
	ubQf := make([]Match, 0, 4)
	var ubQfWinners, ubQfLosers []Team
	for i := 0; i < 4; i++ {
		t1, t2 := teams[i*2], teams[i*2+1]
		res := SimulateSeries(r, t1, t2, 2)
		ubQf = append(ubQf, toMatch(t1, t2, res))
		ubQfWinners = append(ubQfWinners, Team{Name: res.Winner, Rating: res.WinnerRating})
		if res.Winner == t1.Name {
			ubQfLosers = append(ubQfLosers, t2)
		} else {
			ubQfLosers = append(ubQfLosers, t1)
		}
	}
	rounds = append(rounds, Round{Round: "Upper Bracket — Quarter Finals", Matches: ubQf})

	// Upper bracket semifinals: consecutive pairs of QF winners.
	ubSf := make([]Match, 0, 2)
	var ubSfWinners, ubSfLosers []Team
	for i := 0; i < 2; i++ {
		t1, t2 := ubQfWinners[i*2], ubQfWinners[i*2+1]
		res := SimulateSeries(r, t1, t2, 2)
		ubSf = append(ubSf, toMatch(t1, t2, res))
		ubSfWinners = append(ubSfWinners, Team{Name: res.Winner, Rating: res.WinnerRating})
		if res.Winner == t1.Name {
			ubSfLosers = append(ubSfLosers, t2)
		} else {
			ubSfLosers = append(ubSfLosers, t1)
		}
	}
	rounds = append(rounds, Round{Round: "Upper Bracket — Semi Finals", Matches: ubSf})

	// Lower bracket round 1: consecutive pairs of QF losers.
	lbR1 := make([]Match, 0, 2)
	var lbR1Winners []Team
	for i := 0; i < 2; i++ {
		t1, t2 := ubQfLosers[i*2], ubQfLosers[i*2+1]
		res := SimulateSeries(r, t1, t2, 2)
		lbR1 = append(lbR1, toMatch(t1, t2, res))
		lbR1Winners = append(lbR1Winners, Team{Name: res.Winner, Rating: res.WinnerRating})
	}
	rounds = append(rounds, Round{Round: "Lower Bracket — Round 1", Matches: lbR1})

	// Lower bracket quarterfinals: cross pairing — LB R1 winner[i] faces
	// UB SF loser[1-i].
	lbR2 := make([]Match, 0, 2)
	var lbR2Winners []Team
	for i := 0; i < 2; i++ {
		t1, t2 := lbR1Winners[i], ubSfLosers[1-i]
		res := SimulateSeries(r, t1, t2, 2)
		lbR2 = append(lbR2, toMatch(t1, t2, res))
		lbR2Winners = append(lbR2Winners, Team{Name: res.Winner, Rating: res.WinnerRating})
	}
	rounds = append(rounds, Round{Round: "Lower Bracket — Quarterfinals", Matches: lbR2})

	// Lower bracket semifinal: single match for the LB finalist spot.
	lbSfRes := SimulateSeries(r, lbR2Winners[0], lbR2Winners[1], 2)
	lbFinalist := Team{Name: lbSfRes.Winner, Rating: lbSfRes.WinnerRating}
	rounds = append(rounds, Round{
		Round:   "Lower Bracket — Semi Finals",
		Matches: []Match{toMatch(lbR2Winners[0], lbR2Winners[1], lbSfRes)},
	})

	// Upper bracket final: winner goes straight to the grand final, loser
	// drops to the lower bracket finals.
	ubFinalRes := SimulateSeries(r, ubSfWinners[0], ubSfWinners[1], 2)
	ubWinner := Team{Name: ubFinalRes.Winner, Rating: ubFinalRes.WinnerRating}
	ubFinalLoser := ubSfWinners[1]
	if ubFinalRes.Winner == ubSfWinners[1].Name {
		ubFinalLoser = ubSfWinners[0]
	}
	rounds = append(rounds, Round{
		Round:   "Upper Bracket — Final",
		Matches: []Match{toMatch(ubSfWinners[0], ubSfWinners[1], ubFinalRes)},
	})

	// Lower bracket finals: UB final loser vs LB semifinal winner.
	lbFinalRes := SimulateSeries(r, ubFinalLoser, lbFinalist, 2)
	gfOpponent := Team{Name: lbFinalRes.Winner, Rating: lbFinalRes.WinnerRating}
	rounds = append(rounds, Round{
		Round:   "Lower Bracket — Finals",
		Matches: []Match{toMatch(ubFinalLoser, lbFinalist, lbFinalRes)},
	})

	// Grand final, BO5. Its winner is the champion.
	gfRes := SimulateSeries(r, ubWinner, gfOpponent, 3)
	rounds = append(rounds, Round{
		Round:   "Grand Final",
		Matches: []Match{toMatch(ubWinner, gfOpponent, gfRes)},
	})

	return BracketResult{Rounds: rounds, Champion: gfRes.Winner}, nil
}
