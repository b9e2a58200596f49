package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SegmentSettlement is the zero-sum money movement for one scoring segment
// under one format: every non-winner pays the stake, the winner(s) split the
// resulting pot. Balances always sum to exactly zero.
type SegmentSettlement struct {
	Segment  Segment
	Format   GameFormat
	Stake    decimal.Decimal
	Winners  []uuid.UUID
	Balances map[uuid.UUID]decimal.Decimal
	TotalPot decimal.Decimal
}

// SettleSegment computes the money transfers for a segment bet.
//
// Ranking depends on the format: stroke play ranks by total net strokes over
// the segment, ascending; match play ranks by the match standing accumulated
// over the segment's own holes, descending, so a front-nine blowout cannot
// decide the back-nine bet. The player(s) sharing first place split the pot
// of stake × (number of non-winners) evenly; every non-winner pays the full
// stake, ties or not.
//
// This is a final settlement, so it refuses to run on partial data:
// ErrIncompleteScores if any player is missing a score inside the segment,
// ErrInsufficientPlayers for fewer than two players. A corrupt stroke index
// on a hole inside the segment is ErrInvalidStrokeIndex — a data-integrity
// failure, reported as such and never as a missing score.
func SettleSegment(players []Player, holes []Hole, scores []HoleScore, seg Segment, format GameFormat, stake decimal.Decimal) (*SegmentSettlement, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("segment %s: %w", seg, ErrInsufficientPlayers)
	}
	if !seg.Valid() {
		return nil, fmt.Errorf("unknown segment %q", seg)
	}
	if !format.Valid() {
		return nil, fmt.Errorf("unknown format %q", format)
	}

	ledgers := make(map[uuid.UUID]*ScoreLedger, len(players))
	for _, p := range players {
		l, err := NewScoreLedger(p, holes, scores)
		if err != nil {
			return nil, err
		}
		for _, n := range l.InvalidHoles() {
			if seg.Contains(n) {
				return nil, fmt.Errorf("segment %s: player %q: hole %d: %w", seg, p.Name, n, ErrInvalidStrokeIndex)
			}
		}
		if !l.Complete(seg) {
			return nil, fmt.Errorf("segment %s: player %q: %w", seg, p.Name, ErrIncompleteScores)
		}
		ledgers[p.ID] = l
	}

	ranked, err := rankSegment(players, ledgers, holes, scores, seg, format)
	if err != nil {
		return nil, err
	}
	return splitPot(players, ranked, seg, format, stake), nil
}

// rankedPlayer pairs a player with their segment metric. better is true when
// metric i should finish ahead of metric j.
type rankedPlayer struct {
	id     uuid.UUID
	metric int
}

// rankSegment orders players best-first under the chosen format.
func rankSegment(players []Player, ledgers map[uuid.UUID]*ScoreLedger, holes []Hole, scores []HoleScore, seg Segment, format GameFormat) ([]rankedPlayer, error) {
	first, last := seg.HoleRange()

	ranked := make([]rankedPlayer, 0, len(players))
	switch format {
	case FormatStrokePlay:
		for _, p := range players {
			net := 0
			for n := first; n <= last; n++ {
				if r, ok := ledgers[p.ID].Result(n); ok {
					net += r.Net
				}
			}
			// Lower net is better; negate so that higher metric wins
			// uniformly across both formats.
			ranked = append(ranked, rankedPlayer{id: p.ID, metric: -net})
		}
	case FormatMatchPlay:
		won, lost, err := matchTallies(players, holes, scores, first, last)
		if err != nil {
			return nil, err
		}
		for _, p := range players {
			ranked = append(ranked, rankedPlayer{id: p.ID, metric: won[p.ID] - lost[p.ID]})
		}
	}

	// Stable selection of the leaders: order by metric descending while
	// keeping the caller's player order among equals.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].metric > ranked[j-1].metric; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked, nil
}

// splitPot turns the ranking into zero-sum balances. Each winner's share is
// rounded half-even to cents; any residual cents from an uneven split go to
// the first winner so the deltas sum to exactly zero.
func splitPot(players []Player, ranked []rankedPlayer, seg Segment, format GameFormat, stake decimal.Decimal) *SegmentSettlement {
	best := ranked[0].metric
	var winners []uuid.UUID
	for _, r := range ranked {
		if r.metric == best {
			winners = append(winners, r.id)
		}
	}

	losers := len(players) - len(winners)
	pot := roundCents(stake.Mul(decimal.NewFromInt(int64(losers))))
	share := roundCents(pot.Div(decimal.NewFromInt(int64(len(winners)))))
	residual := pot.Sub(share.Mul(decimal.NewFromInt(int64(len(winners)))))

	balances := make(map[uuid.UUID]decimal.Decimal, len(players))
	isWinner := make(map[uuid.UUID]bool, len(winners))
	for _, id := range winners {
		isWinner[id] = true
	}
	for _, p := range players {
		if isWinner[p.ID] {
			balances[p.ID] = share
		} else {
			balances[p.ID] = roundCents(stake.Neg())
		}
	}
	balances[winners[0]] = balances[winners[0]].Add(residual)

	return &SegmentSettlement{
		Segment:  seg,
		Format:   format,
		Stake:    stake,
		Winners:  winners,
		Balances: balances,
		TotalPot: pot,
	}
}
