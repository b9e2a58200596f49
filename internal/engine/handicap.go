package engine

// StrokesReceived converts a player's course handicap and a hole's stroke
// index into the number of handicap strokes the player receives on that hole.
//
// Every 18 points of handicap grant one stroke on every hole; the remainder
// is distributed to the hardest holes first, stroke index 1 being the
// hardest. A 12-handicap therefore strokes on indexes 1 through 12, an
// 18-handicap strokes once everywhere, and a 36-handicap strokes twice on
// every hole. The result generalizes upward for handicaps above 36.
//
// The stroke index must come from the table for the player's selected tee;
// passing an index outside 1..18 indicates corrupt course data and returns
// ErrInvalidStrokeIndex.
func StrokesReceived(handicap, strokeIndex int) (int, error) {
	if handicap < 0 || handicap > MaxCourseHandicap {
		return 0, ErrInvalidHandicap
	}
	if strokeIndex < MinStrokeIndex || strokeIndex > MaxStrokeIndex {
		return 0, ErrInvalidStrokeIndex
	}

	strokes := handicap / 18
	if strokeIndex <= handicap%18 {
		strokes++
	}
	return strokes, nil
}
