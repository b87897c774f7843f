package sim

import (
	"fmt"
	"testing"

	"kukuys-master/internal/rng"
)

func bracketTeams() []Team {
	teams := make([]Team, 0, 8)
	for i := 0; i < 8; i++ {
		teams = append(teams, Team{Name: fmt.Sprintf("team%d", i), Rating: 30 + i*8})
	}
	return teams
}

func TestRunBracketRejectsWrongTeamCount(t *testing.T) {
	r := rng.NewSeeded(1)
	for _, n := range []int{0, 4, 7, 9, 16} {
		teams := make([]Team, n)
		for i := range teams {
			teams[i] = Team{Name: fmt.Sprintf("t%d", i), Rating: 50}
		}
		if _, err := RunBracket(r, teams); err == nil {
			t.Errorf("RunBracket accepted %d teams", n)
		}
	}
}

func TestRunBracketShape(t *testing.T) {
	r := rng.NewSeeded(2)
	res, err := RunBracket(r, bracketTeams())
	if err != nil {
		t.Fatal(err)
	}

	wantRounds := []struct {
		label   string
		matches int
	}{
		{"Upper Bracket — Quarter Finals", 4},
		{"Upper Bracket — Semi Finals", 2},
		{"Lower Bracket — Round 1", 2},
		{"Lower Bracket — Quarterfinals", 2},
		{"Lower Bracket — Semi Finals", 1},
		{"Upper Bracket — Final", 1},
		{"Lower Bracket — Finals", 1},
		{"Grand Final", 1},
	}
	if len(res.Rounds) != len(wantRounds) {
		t.Fatalf("got %d rounds, want %d", len(res.Rounds), len(wantRounds))
	}
	for i, want := range wantRounds {
		got := res.Rounds[i]
		if got.Round != want.label {
			t.Errorf("round %d label = %q, want %q", i, got.Round, want.label)
		}
		if len(got.Matches) != want.matches {
			t.Errorf("round %q has %d matches, want %d", want.label, len(got.Matches), want.matches)
		}
	}
}

func TestRunBracketFirstRoundSeeding(t *testing.T) {
	r := rng.NewSeeded(3)
	teams := bracketTeams()
	res, err := RunBracket(r, teams)
	if err != nil {
		t.Fatal(err)
	}

	// Quarterfinals pair consecutive seeds, each team exactly once.
	qf := res.Rounds[0].Matches
	for i, m := range qf {
		if m.Team1 != teams[i*2].Name || m.Team2 != teams[i*2+1].Name {
			t.Errorf("QF %d is %s vs %s, want %s vs %s",
				i, m.Team1, m.Team2, teams[i*2].Name, teams[i*2+1].Name)
		}
	}
}

func TestRunBracketChampionIsEntrant(t *testing.T) {
	teams := bracketTeams()
	names := make(map[string]bool, 8)
	for _, tm := range teams {
		names[tm.Name] = true
	}

	for seed := uint64(0); seed < 50; seed++ {
		r := rng.NewSeeded(seed)
		res, err := RunBracket(r, teams)
		if err != nil {
			t.Fatal(err)
		}
		if !names[res.Champion] {
			t.Fatalf("seed %d: champion %q is not an entrant", seed, res.Champion)
		}
		gf := res.Rounds[len(res.Rounds)-1].Matches[0]
		if gf.Winner != res.Champion {
			t.Fatalf("seed %d: champion %q != grand final winner %q", seed, res.Champion, gf.Winner)
		}
	}
}

func TestRunBracketGrandFinalIsBO5(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		r := rng.NewSeeded(seed)
		res, err := RunBracket(r, bracketTeams())
		if err != nil {
			t.Fatal(err)
		}
		gf := res.Rounds[len(res.Rounds)-1].Matches[0]
		if len(gf.MapResults) < 3 || len(gf.MapResults) > 5 {
			t.Fatalf("seed %d: grand final ran %d maps, want 3 to 5", seed, len(gf.MapResults))
		}
		wins := 0
		for _, m := range gf.MapResults {
			if m == gf.Winner {
				wins++
			}
		}
		if wins != 3 {
			t.Fatalf("seed %d: grand final winner took %d maps, want 3", seed, wins)
		}
	}
}

// Every non-final series is a BO3: winner takes exactly 2 maps.
func TestRunBracketSeriesLengths(t *testing.T) {
	r := rng.NewSeeded(9)
	res, err := RunBracket(r, bracketTeams())
	if err != nil {
		t.Fatal(err)
	}
	for _, round := range res.Rounds[:len(res.Rounds)-1] {
		for _, m := range round.Matches {
			wins := 0
			for _, w := range m.MapResults {
				if w == m.Winner {
					wins++
				}
			}
			if wins != 2 {
				t.Errorf("%s: winner took %d maps, want 2", round.Round, wins)
			}
			if len(m.MapResults) < 2 || len(m.MapResults) > 3 {
				t.Errorf("%s: series ran %d maps, want 2 or 3", round.Round, len(m.MapResults))
			}
		}
	}
}
