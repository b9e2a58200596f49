package engine

import (
	"fmt"
	"sort"
)

// StrokePlayStatus is a player's cumulative position against par: ToPar is
// net strokes minus par over the holes counted, and Label is the scoreboard
// form — "E" at even par, otherwise the signed integer ("+3", "-2").
type StrokePlayStatus struct {
	ToPar int
	Label string
}

// LeaderboardEntry is one row of a stroke-play leaderboard through a hole.
// Players tied on net strokes share a rank.
type LeaderboardEntry struct {
	Player      Player
	NetStrokes  int
	HolesPlayed int
	Status      StrokePlayStatus
	Rank        int
}

// StatusThroughHole computes a player's score-to-par over holes 1..uptoHole,
// counting only holes with a recorded score. An empty card is even par.
func StatusThroughHole(l *ScoreLedger, uptoHole int) StrokePlayStatus {
	net, par := 0, 0
	for n := 1; n <= uptoHole; n++ {
		if r, ok := l.Result(n); ok {
			net += r.Net
			par += r.Par
		}
	}
	return StrokePlayStatus{ToPar: net - par, Label: toParLabel(net - par)}
}

// StrokePlayLeaderboard ranks all players by total net strokes through the
// given hole, ascending. Ties share a rank: two players tied at the top are
// both rank 1 and the next player is rank 3.
func StrokePlayLeaderboard(players []Player, holes []Hole, scores []HoleScore, uptoHole int) ([]LeaderboardEntry, error) {
	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		ledger, err := NewScoreLedger(p, holes, scores)
		if err != nil {
			return nil, err
		}
		net, played := 0, 0
		for n := 1; n <= uptoHole; n++ {
			if r, ok := ledger.Result(n); ok {
				net += r.Net
				played++
			}
		}
		entries = append(entries, LeaderboardEntry{
			Player:      p,
			NetStrokes:  net,
			HolesPlayed: played,
			Status:      StatusThroughHole(ledger, uptoHole),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NetStrokes < entries[j].NetStrokes
	})

	// Standard competition ranking: equal totals share the better rank.
	for i := range entries {
		if i > 0 && entries[i].NetStrokes == entries[i-1].NetStrokes {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries, nil
}

func toParLabel(toPar int) string {
	if toPar == 0 {
		return "E"
	}
	return fmt.Sprintf("%+d", toPar)
}
