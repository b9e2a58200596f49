package engine

import "sort"

// HoleResult is one player's derived result on one played hole:
// net = gross - strokes received from handicap allocation.
type HoleResult struct {
	HoleNumber      int
	Par             int
	Gross           int
	StrokesReceived int
	Net             int
}

// ScoreLedger holds one player's recorded gross scores for a round and
// derives net scores through handicap allocation. It is built once per
// evaluation from a score snapshot and is read-only afterwards.
//
// A hole without a recorded score contributes to no total and is treated as
// incomplete by every downstream evaluator that requires full data. A hole
// whose stroke index is corrupt for the player's tee is skipped and listed in
// InvalidHoles rather than failing the whole ledger.
type ScoreLedger struct {
	player  Player
	holes   map[int]Hole
	results map[int]HoleResult
	invalid []int
}

// NewScoreLedger derives per-hole net results for one player from the score
// snapshot. Scores belonging to other players are ignored, so the full round
// snapshot can be passed as-is. Returns ErrInvalidHandicap if the player's
// course handicap is out of range.
func NewScoreLedger(player Player, holes []Hole, scores []HoleScore) (*ScoreLedger, error) {
	if err := player.Validate(); err != nil {
		return nil, err
	}

	l := &ScoreLedger{
		player:  player,
		holes:   holeByNumber(holes),
		results: make(map[int]HoleResult),
	}

	for _, s := range scores {
		if s.PlayerID != player.ID || !s.Played {
			continue
		}
		hole, ok := l.holes[s.HoleNumber]
		if !ok {
			continue
		}
		idx, err := hole.StrokeIndexFor(player.TeeName)
		if err != nil {
			// Corrupt reference data kills this hole's computation only.
			l.invalid = append(l.invalid, s.HoleNumber)
			continue
		}
		received, err := StrokesReceived(player.CourseHandicap, idx)
		if err != nil {
			l.invalid = append(l.invalid, s.HoleNumber)
			continue
		}
		l.results[s.HoleNumber] = HoleResult{
			HoleNumber:      s.HoleNumber,
			Par:             hole.Par,
			Gross:           s.Gross,
			StrokesReceived: received,
			Net:             s.Gross - received,
		}
	}
	sort.Ints(l.invalid)
	return l, nil
}

// Player returns the player this ledger belongs to.
func (l *ScoreLedger) Player() Player { return l.player }

// Result returns the derived result for a hole, and whether the hole has a
// recorded score with valid reference data.
func (l *ScoreLedger) Result(holeNumber int) (HoleResult, bool) {
	r, ok := l.results[holeNumber]
	return r, ok
}

// Played reports whether the player has a usable recorded score on the hole.
func (l *ScoreLedger) Played(holeNumber int) bool {
	_, ok := l.results[holeNumber]
	return ok
}

// GrossTotal sums gross strokes over every played hole.
func (l *ScoreLedger) GrossTotal() int {
	total := 0
	for _, r := range l.results {
		total += r.Gross
	}
	return total
}

// NetTotal sums net strokes over every played hole.
func (l *ScoreLedger) NetTotal() int {
	total := 0
	for _, r := range l.results {
		total += r.Net
	}
	return total
}

// HolesPlayed returns how many holes have a usable recorded score.
func (l *ScoreLedger) HolesPlayed() int { return len(l.results) }

// Complete reports whether the player has a recorded score for every course
// hole inside the segment. Final settlement for a segment must only run once
// this is true for every active player; partial data is for progress views
// only, never for moving money.
func (l *ScoreLedger) Complete(seg Segment) bool {
	for number := range l.holes {
		if seg.Contains(number) && !l.Played(number) {
			return false
		}
	}
	return true
}

// InvalidHoles lists holes that were skipped because their stroke index was
// missing or out of range for the player's tee. A non-empty list mid-round
// points at a data-integrity bug in the course reference data.
func (l *ScoreLedger) InvalidHoles() []int { return l.invalid }
