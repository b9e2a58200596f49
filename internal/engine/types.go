// Package engine implements the handicap scoring and wagering settlement engine
// for a golf round: it turns raw per-hole strokes into net scores, per-format
// standings (stroke play, match play), and money owed between players under the
// round's side-wager schemes (skins, oyeses, segment bets).
//
// The engine is purely computational. Every exported function is a deterministic,
// side-effect-free function of its inputs: it owns no mutable state, performs no
// I/O, and never mutates its arguments. Callers hand it a consistent snapshot of
// (players, holes, scores, betting options) and get results back; on every score
// change the caller recomputes from scratch rather than patching a stored total,
// so any result can be re-derived and verified from the snapshot alone.
//
// All money is represented with shopspring/decimal and rounded half-even to
// cents after each settlement step. Every money-moving result is zero-sum: the
// per-player deltas it produces sum to exactly zero.
package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handicap and stroke-index bounds. A course handicap above 54 or a stroke
// index outside 1..18 is rejected as corrupt input, never silently clamped.
const (
	MaxCourseHandicap = 54
	MinStrokeIndex    = 1
	MaxStrokeIndex    = 18
)

// Segment identifies the scored portion of the round a bet is settled over.
type Segment string

const (
	SegmentFrontNine Segment = "front_nine" // holes 1-9
	SegmentBackNine  Segment = "back_nine"  // holes 10-18
	SegmentTotal     Segment = "total"      // holes 1-18
)

// HoleRange returns the first and last hole numbers covered by the segment.
func (s Segment) HoleRange() (first, last int) {
	switch s {
	case SegmentFrontNine:
		return 1, 9
	case SegmentBackNine:
		return 10, 18
	default:
		return 1, 18
	}
}

// Contains reports whether the given hole number falls inside the segment.
func (s Segment) Contains(holeNumber int) bool {
	first, last := s.HoleRange()
	return holeNumber >= first && holeNumber <= last
}

// Valid reports whether s is one of the known segments.
func (s Segment) Valid() bool {
	switch s {
	case SegmentFrontNine, SegmentBackNine, SegmentTotal:
		return true
	}
	return false
}

// GameFormat describes how a segment bet is scored.
type GameFormat string

const (
	FormatStrokePlay GameFormat = "stroke_play" // fewest total net strokes wins
	FormatMatchPlay  GameFormat = "match_play"  // hole-by-hole wins/losses vs the field
)

// Valid reports whether f is one of the known formats.
func (f GameFormat) Valid() bool {
	return f == FormatStrokePlay || f == FormatMatchPlay
}

// SideBetType identifies a single-hole wager.
type SideBetType string

const (
	SideBetSkins  SideBetType = "skins"  // best net on the hole, double stake, void on tie
	SideBetOyeses SideBetType = "oyeses" // best net on the hole, single stake, void on tie
)

// Player is one participant in the round. CourseHandicap is fixed for the
// duration of the round's settlement; TeeName selects which stroke-index
// table applies when allocating handicap strokes.
type Player struct {
	ID             uuid.UUID
	Name           string
	CourseHandicap int
	TeeName        string
}

// Validate checks the player's course handicap against the allowed range.
func (p Player) Validate() error {
	if p.CourseHandicap < 0 || p.CourseHandicap > MaxCourseHandicap {
		return fmt.Errorf("player %q: handicap %d: %w", p.Name, p.CourseHandicap, ErrInvalidHandicap)
	}
	return nil
}

// Hole is immutable course reference data: its number within the round, its
// par, and a stroke-index value per tee. Stroke index ranks hole difficulty
// (1 = hardest) and decides which holes receive handicap strokes first; it
// can differ between tee sets on the same course, so it is resolved through
// the player's selected tee, never a default.
type Hole struct {
	Number           int
	Par              int
	StrokeIndexByTee map[string]int
}

// StrokeIndexFor resolves the hole's stroke index for the given tee.
// A missing or out-of-range entry indicates corrupt course reference data
// and is reported as ErrInvalidStrokeIndex.
func (h Hole) StrokeIndexFor(tee string) (int, error) {
	idx, ok := h.StrokeIndexByTee[tee]
	if !ok {
		return 0, fmt.Errorf("hole %d: no stroke index for tee %q: %w", h.Number, tee, ErrInvalidStrokeIndex)
	}
	if idx < MinStrokeIndex || idx > MaxStrokeIndex {
		return 0, fmt.Errorf("hole %d tee %q: stroke index %d: %w", h.Number, tee, idx, ErrInvalidStrokeIndex)
	}
	return idx, nil
}

// HoleScore records the strokes a player took on a single hole.
// Played is an explicit sentinel: a score that hasn't been entered yet is
// Played=false, which is distinct from any gross value — "not yet played" is
// never conflated with "scored zero". An edit replaces the whole record.
type HoleScore struct {
	PlayerID   uuid.UUID
	HoleNumber int
	Gross      int
	Played     bool
}

// BettingOptions is the round's wager configuration, validated once at round
// creation and not mutated after the round starts except by explicit user
// action.
//
// Foursomes, Presses and Carryovers are accepted and stored because the round
// setup screen offers them, but no resolution algorithm is applied to them:
// their rules are not confirmed, so the engine deliberately ignores them
// rather than inventing semantics.
type BettingOptions struct {
	Skins      bool
	Oyeses     bool
	Foursomes  bool
	Presses    bool
	Carryovers bool

	// UnitPerHole is the single-hole wager amount. Oyeses pay one unit,
	// skins pay two.
	UnitPerHole decimal.Decimal

	// Segments marks which portions of the round carry a segment bet.
	Segments map[Segment]bool

	// Stakes holds the per-segment, per-format stake for every active
	// segment bet. Only entries for active segments and formats are read.
	Stakes map[Segment]map[GameFormat]decimal.Decimal
}

// Validate checks the configuration for negative amounts, unknown segments
// and unknown formats. A side bet being active with a zero unit is allowed
// (the bet resolves but moves no money).
func (o BettingOptions) Validate() error {
	if o.UnitPerHole.IsNegative() {
		return fmt.Errorf("unit per hole %s is negative", o.UnitPerHole)
	}
	for seg := range o.Segments {
		if !seg.Valid() {
			return fmt.Errorf("unknown segment %q", seg)
		}
	}
	for seg, byFormat := range o.Stakes {
		if !seg.Valid() {
			return fmt.Errorf("unknown segment %q in stakes", seg)
		}
		for format, stake := range byFormat {
			if !format.Valid() {
				return fmt.Errorf("unknown format %q in stakes", format)
			}
			if stake.IsNegative() {
				return fmt.Errorf("stake %s for %s/%s is negative", stake, seg, format)
			}
		}
	}
	return nil
}

// StakeFor returns the configured stake for an active segment/format pair.
// The second return is false when the segment is inactive or no stake is set.
func (o BettingOptions) StakeFor(seg Segment, format GameFormat) (decimal.Decimal, bool) {
	if !o.Segments[seg] {
		return decimal.Zero, false
	}
	byFormat, ok := o.Stakes[seg]
	if !ok {
		return decimal.Zero, false
	}
	stake, ok := byFormat[format]
	return stake, ok
}

// SettlementResult is the outcome of one side-bet resolution on one hole.
// Winner is nil when nobody wins: either the best net score was shared
// (Tied=true) or no player had a recorded score.
type SettlementResult struct {
	Type   SideBetType
	Winner *Player
	Amount decimal.Decimal
	Tied   bool
}

// Round is the snapshot the engine evaluates: the players, the course's
// holes, every recorded score, the wager configuration, and which game
// formats are active. The engine never mutates a Round.
type Round struct {
	Players []Player
	Holes   []Hole
	Scores  []HoleScore
	Options BettingOptions
	Formats []GameFormat
}

// FormatActive reports whether the given format was enabled for the round.
func (r Round) FormatActive(format GameFormat) bool {
	for _, f := range r.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// holeByNumber builds a lookup from hole number to hole reference data.
func holeByNumber(holes []Hole) map[int]Hole {
	m := make(map[int]Hole, len(holes))
	for _, h := range holes {
		m[h.Number] = h
	}
	return m
}

// roundCents rounds a monetary amount half-even to the smallest currency
// unit. Every settlement step rounds through this — not only final display —
// so floating drift can never accumulate into the zero-sum invariant.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
