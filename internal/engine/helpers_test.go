package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Test course: 18 holes, par 70 (35 out, 35 in), par 3s on holes 3, 8, 12
// and 16. The "white" tees index holes by number (hole 1 = stroke index 1);
// the "red" tees reverse the table so tee resolution is observable.
func testHoles() []Hole {
	pars := map[int]int{3: 3, 8: 3, 12: 3, 16: 3, 5: 5, 13: 5}
	holes := make([]Hole, 0, 18)
	for n := 1; n <= 18; n++ {
		par, ok := pars[n]
		if !ok {
			par = 4
		}
		holes = append(holes, Hole{
			Number: n,
			Par:    par,
			StrokeIndexByTee: map[string]int{
				"white": n,
				"red":   19 - n,
			},
		})
	}
	return holes
}

func testPlayer(name string, handicap int) Player {
	return Player{
		ID:             uuid.New(),
		Name:           name,
		CourseHandicap: handicap,
		TeeName:        "white",
	}
}

func playedScore(p Player, hole, gross int) HoleScore {
	return HoleScore{PlayerID: p.ID, HoleNumber: hole, Gross: gross, Played: true}
}

// parScores returns a full card of gross scores at par for every hole,
// with per-hole overrides (hole number -> gross).
func parScores(p Player, holes []Hole, overrides map[int]int) []HoleScore {
	scores := make([]HoleScore, 0, len(holes))
	for _, h := range holes {
		gross := h.Par
		if g, ok := overrides[h.Number]; ok {
			gross = g
		}
		scores = append(scores, playedScore(p, h.Number, gross))
	}
	return scores
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
