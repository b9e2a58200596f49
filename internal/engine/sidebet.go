package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EvaluateHole resolves every active single-hole wager on one hole and
// returns one SettlementResult per active side-bet type. Both wagers share
// the same rule: the single best net score on the hole wins; if two or more
// players share the best net the hole is void (winner none, amount zero,
// tied true).
//
//   - skins pay double the configured unit. There is no carry-over of a
//     voided skin to the next hole; the pot does not accumulate.
//   - oyeses pay the unit as-is. The evaluator is par-agnostic — callers
//     that only want oyeses on par 3s filter before or after calling.
//
// The result list is empty when no side bets are active or when fewer than
// two players have a recorded score on the hole: a side bet is a contest,
// and a lone recorded score has nobody to collect from. A corrupt stroke
// index on this hole for a player who scored it is ErrInvalidStrokeIndex —
// the wager cannot be resolved over a net score that cannot be derived.
func EvaluateHole(players []Player, holes []Hole, scores []HoleScore, holeNumber int, opts BettingOptions) ([]SettlementResult, error) {
	type scored struct {
		player Player
		net    int
	}

	entrants := make([]scored, 0, len(players))
	for _, p := range players {
		ledger, err := NewScoreLedger(p, holes, scores)
		if err != nil {
			return nil, err
		}
		for _, n := range ledger.InvalidHoles() {
			if n == holeNumber {
				return nil, fmt.Errorf("hole %d: player %q: %w", holeNumber, p.Name, ErrInvalidStrokeIndex)
			}
		}
		if r, ok := ledger.Result(holeNumber); ok {
			entrants = append(entrants, scored{player: p, net: r.Net})
		}
	}
	if len(entrants) < 2 {
		return nil, nil
	}

	best := entrants[0].net
	for _, e := range entrants[1:] {
		if e.net < best {
			best = e.net
		}
	}
	var winners []Player
	for _, e := range entrants {
		if e.net == best {
			winners = append(winners, e.player)
		}
	}

	resolve := func(betType SideBetType, payout decimal.Decimal) SettlementResult {
		if len(winners) > 1 {
			return SettlementResult{Type: betType, Amount: decimal.Zero, Tied: true}
		}
		w := winners[0]
		return SettlementResult{Type: betType, Winner: &w, Amount: roundCents(payout)}
	}

	var results []SettlementResult
	if opts.Skins {
		results = append(results, resolve(SideBetSkins, opts.UnitPerHole.Mul(decimal.NewFromInt(2))))
	}
	if opts.Oyeses {
		results = append(results, resolve(SideBetOyeses, opts.UnitPerHole))
	}
	return results, nil
}
