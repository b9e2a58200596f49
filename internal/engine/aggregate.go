package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate combines every active wager on the round — skins and oyeses on
// each hole, plus each active segment × format settlement — into one final
// balance per player name. Balances start at zero and are derived fresh from
// the snapshot on every call; the engine never keeps a running total.
//
// Side bets apply per hole as they resolve: the winner collects the amount
// and every other player chips in amount/(playerCount−1), rounded half-even
// to cents. The winner is credited with the sum of the rounded debits so the
// hole's deltas cancel exactly. Oyeses are applied on par-3 holes only (the
// evaluator itself is par-agnostic; this is the aggregator's reading of the
// bet). Segment settlements apply once each, at the contracted end of their
// segment, and require complete scores — Aggregate reports
// ErrIncompleteScores rather than treating a missing score as zero.
//
// The returned balances sum to exactly zero across the round.
func Aggregate(round Round) (map[string]decimal.Decimal, error) {
	if err := round.Options.Validate(); err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]decimal.Decimal, len(round.Players))
	for _, p := range round.Players {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		balances[p.ID] = decimal.Zero
	}

	if err := applySideBets(round, balances); err != nil {
		return nil, err
	}
	if err := applySegmentBets(round, balances); err != nil {
		return nil, err
	}

	byName := make(map[string]decimal.Decimal, len(round.Players))
	for _, p := range round.Players {
		byName[p.Name] = balances[p.ID]
	}
	return byName, nil
}

// applySideBets resolves skins and oyeses on every hole with at least two
// recorded scores and folds the deltas into balances. Side bets need someone
// to pay out, so a field of fewer than two players moves no money.
func applySideBets(round Round, balances map[uuid.UUID]decimal.Decimal) error {
	if !round.Options.Skins && !round.Options.Oyeses {
		return nil
	}
	payers := int64(len(round.Players) - 1)
	if payers < 1 {
		return nil
	}

	for _, hole := range round.Holes {
		opts := round.Options
		// Oyeses are a par-3 wager; skins play on every hole.
		opts.Oyeses = opts.Oyeses && hole.Par == 3
		if !opts.Skins && !opts.Oyeses {
			continue
		}

		results, err := EvaluateHole(round.Players, round.Holes, round.Scores, hole.Number, opts)
		if err != nil {
			return err
		}
		for _, res := range results {
			if res.Winner == nil || res.Amount.IsZero() {
				continue
			}
			share := roundCents(res.Amount.Div(decimal.NewFromInt(payers)))
			for _, p := range round.Players {
				if p.ID == res.Winner.ID {
					balances[p.ID] = balances[p.ID].Add(share.Mul(decimal.NewFromInt(payers)))
				} else {
					balances[p.ID] = balances[p.ID].Sub(share)
				}
			}
		}
	}
	return nil
}

// applySegmentBets runs every active segment × format settlement once and
// folds its balances in.
func applySegmentBets(round Round, balances map[uuid.UUID]decimal.Decimal) error {
	for _, seg := range []Segment{SegmentFrontNine, SegmentBackNine, SegmentTotal} {
		for _, format := range round.Formats {
			stake, ok := round.Options.StakeFor(seg, format)
			if !ok {
				continue
			}
			settlement, err := SettleSegment(round.Players, round.Holes, round.Scores, seg, format, stake)
			if err != nil {
				return err
			}
			for id, delta := range settlement.Balances {
				balances[id] = balances[id].Add(delta)
			}
		}
	}
	return nil
}
