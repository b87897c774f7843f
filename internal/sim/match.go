// Package sim holds the probabilistic match primitive and the fixed
// 8-team double-elimination bracket built on top of it.
package sim

import (
	"math"

	"kukuys-master/internal/rng"
)

type Team struct {
	Name   string
	Rating int
}

// SeriesResult reports one best-of-N series. Odds are computed once from
// the ratings and fixed for the whole series; map outcomes are drawn
// independently per map.
type SeriesResult struct {
	Winner       string
	WinnerRating int
	Team1Odds    int
	Team2Odds    int
	MapResults   []string
}

// ratings are floored at 1 so every team keeps a non-zero win probability
func floorRating(r int) int {
	if r < 1 {
		return 1
	}
	return r
}

// SimulateMap plays a single map: P(t1 wins) = r1 / (r1 + r2).
func SimulateMap(r rng.Source, t1, t2 Team) string {
	r1 := float64(floorRating(t1.Rating))
	r2 := float64(floorRating(t2.Rating))
	if r.Float64() < r1/(r1+r2) {
		return t1.Name
	}
	return t2.Name
}

// SimulateSeries plays maps until one team reaches winsNeeded: 2 for a
// BO3, 3 for the grand final's BO5.
func SimulateSeries(r rng.Source, t1, t2 Team, winsNeeded int) SeriesResult {
	r1 := floorRating(t1.Rating)
	r2 := floorRating(t2.Rating)
	team1Odds := int(math.Round(100 * float64(r1) / float64(r1+r2)))

	var mapResults []string
	wins1, wins2 := 0, 0
	for wins1 < winsNeeded && wins2 < winsNeeded {
		w := SimulateMap(r, t1, t2)
		mapResults = append(mapResults, w)
		if w == t1.Name {
			wins1++
		} else {
			wins2++
		}
	}

	res := SeriesResult{
		Team1Odds:  team1Odds,
		Team2Odds:  100 - team1Odds,
		MapResults: mapResults,
	}
	if wins1 >= winsNeeded {
		res.Winner, res.WinnerRating = t1.Name, r1
	} else {
		res.Winner, res.WinnerRating = t2.Name, r2
	}
	return res
}
