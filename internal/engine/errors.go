package engine

import "errors"

// Every failure the engine can report is one of these sentinels, wrapped with
// context via fmt.Errorf("...: %w", ...). Callers match with errors.Is.
var (
	// ErrInvalidHandicap reports a course handicap outside 0..54. Rejected
	// at the input boundary — never silently clamped.
	ErrInvalidHandicap = errors.New("course handicap out of range")

	// ErrInvalidStrokeIndex reports a stroke index outside 1..18 for a
	// hole/tee combination. This means the course reference data is corrupt:
	// the offending hole is skipped and reported, but it must not take down
	// computations for the rest of the round.
	ErrInvalidStrokeIndex = errors.New("stroke index out of range")

	// ErrInsufficientPlayers reports a match-play or settlement computation
	// invoked with fewer than two players. A one-player round has no
	// head-to-head component and no pot to split.
	ErrInsufficientPlayers = errors.New("fewer than two players")

	// ErrIncompleteScores reports a final settlement attempted while some
	// player is missing a score inside the segment being settled. A missing
	// score means "not yet played", not "scored zero", so money must not
	// move until every hole in the segment has been recorded.
	ErrIncompleteScores = errors.New("segment has unrecorded scores")
)
