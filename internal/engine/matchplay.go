package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// MatchStanding is one player's running match-play position through a hole.
// Match play here is played against the field, not pairwise: on each hole the
// player's net score is compared to the single best net among all other
// players with a recorded score on that hole. Strictly lower wins the hole,
// strictly higher loses it, anything else halves it.
type MatchStanding struct {
	Player    Player
	HolesWon  int
	HolesLost int
	// Standing is holes won minus holes lost. Label is the traditional
	// form: "2 UP", "1 DN", or "AS" (all square).
	Standing int
	Label    string
	// Decided reports that the lead exceeds the holes remaining, so the
	// match is mathematically over. This is informational only — money is
	// still settled on the standing at the contracted settlement hole.
	Decided bool
}

// MatchStandings computes every player's match standing over holes
// 1..uptoHole. Returns ErrInsufficientPlayers for a field of fewer than two:
// a solo round has no match-play component.
//
// A hole where fewer than two players have recorded scores contributes no
// win or loss to anyone.
func MatchStandings(players []Player, holes []Hole, scores []HoleScore, uptoHole int) ([]MatchStanding, error) {
	if len(players) < 2 {
		return nil, ErrInsufficientPlayers
	}

	won, lost, err := matchTallies(players, holes, scores, 1, uptoHole)
	if err != nil {
		return nil, err
	}

	remaining := len(holes) - uptoHole
	if remaining < 0 {
		remaining = 0
	}

	standings := make([]MatchStanding, 0, len(players))
	for _, p := range players {
		standing := won[p.ID] - lost[p.ID]
		decided := standing > remaining || -standing > remaining
		standings = append(standings, MatchStanding{
			Player:    p,
			HolesWon:  won[p.ID],
			HolesLost: lost[p.ID],
			Standing:  standing,
			Label:     standingLabel(standing),
			Decided:   decided,
		})
	}
	return standings, nil
}

// matchTallies counts holes won and lost per player over the hole range
// first..last. Shared by the running-standing view and by segment
// settlement, which scopes the tally to the segment's own holes.
func matchTallies(players []Player, holes []Hole, scores []HoleScore, first, last int) (won, lost map[uuid.UUID]int, err error) {
	ledgers := make(map[uuid.UUID]*ScoreLedger, len(players))
	for _, p := range players {
		l, err := NewScoreLedger(p, holes, scores)
		if err != nil {
			return nil, nil, err
		}
		ledgers[p.ID] = l
	}

	won = make(map[uuid.UUID]int, len(players))
	lost = make(map[uuid.UUID]int, len(players))

	for n := first; n <= last; n++ {
		nets := make(map[uuid.UUID]int)
		for id, l := range ledgers {
			if r, ok := l.Result(n); ok {
				nets[id] = r.Net
			}
		}
		// A hole needs at least two scored players to be contested.
		if len(nets) < 2 {
			continue
		}
		for id, net := range nets {
			best, ok := bestOfOthers(nets, id)
			if !ok {
				continue
			}
			switch {
			case net < best:
				won[id]++
			case net > best:
				lost[id]++
			}
		}
	}
	return won, lost, nil
}

// bestOfOthers returns the minimum net score among every player except the
// one identified by exclude. ok is false when nobody else scored.
func bestOfOthers(nets map[uuid.UUID]int, exclude uuid.UUID) (best int, ok bool) {
	for id, net := range nets {
		if id == exclude {
			continue
		}
		if !ok || net < best {
			best, ok = net, true
		}
	}
	return best, ok
}

func standingLabel(standing int) string {
	switch {
	case standing > 0:
		return fmt.Sprintf("%d UP", standing)
	case standing < 0:
		return fmt.Sprintf("%d DN", -standing)
	default:
		return "AS"
	}
}
