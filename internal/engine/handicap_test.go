package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrokesReceived(t *testing.T) {
	cases := []struct {
		name        string
		handicap    int
		strokeIndex int
		want        int
	}{
		{"12 handicap strokes on index 7", 12, 7, 1},
		{"12 handicap strokes on index 1", 12, 1, 1},
		{"12 handicap gets nothing on index 13", 12, 13, 0},
		{"8 handicap strokes on index 7", 8, 7, 1},
		{"8 handicap gets nothing on index 9", 8, 9, 0},
		{"18 handicap strokes once everywhere", 18, 7, 1},
		{"18 handicap strokes once on the easiest hole", 18, 18, 1},
		{"36 handicap strokes twice on the hardest hole", 36, 1, 2},
		{"36 handicap strokes twice on the easiest hole", 36, 18, 2},
		{"scratch gets nothing", 0, 1, 0},
		{"54 handicap strokes three times everywhere", 54, 18, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StrokesReceived(tc.handicap, tc.strokeIndex)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStrokesReceivedFullTable(t *testing.T) {
	// A 36 handicap receives exactly two strokes on every hole.
	for idx := MinStrokeIndex; idx <= MaxStrokeIndex; idx++ {
		got, err := StrokesReceived(36, idx)
		require.NoError(t, err)
		assert.Equal(t, 2, got, "index %d", idx)
	}
	// A 12 handicap receives one stroke on indexes 1..12 and none after.
	for idx := MinStrokeIndex; idx <= MaxStrokeIndex; idx++ {
		got, err := StrokesReceived(12, idx)
		require.NoError(t, err)
		if idx <= 12 {
			assert.Equal(t, 1, got, "index %d", idx)
		} else {
			assert.Equal(t, 0, got, "index %d", idx)
		}
	}
}

func TestStrokesReceivedMonotonic(t *testing.T) {
	// With the stroke index fixed, raising the handicap never lowers the
	// strokes received.
	for idx := MinStrokeIndex; idx <= MaxStrokeIndex; idx++ {
		prev := 0
		for handicap := 0; handicap <= MaxCourseHandicap; handicap++ {
			got, err := StrokesReceived(handicap, idx)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev, "handicap %d index %d", handicap, idx)
			prev = got
		}
	}
}

func TestStrokesReceivedRejectsBadInput(t *testing.T) {
	_, err := StrokesReceived(-1, 5)
	assert.ErrorIs(t, err, ErrInvalidHandicap)

	_, err = StrokesReceived(55, 5)
	assert.ErrorIs(t, err, ErrInvalidHandicap)

	_, err = StrokesReceived(10, 0)
	assert.ErrorIs(t, err, ErrInvalidStrokeIndex)

	_, err = StrokesReceived(10, 19)
	assert.ErrorIs(t, err, ErrInvalidStrokeIndex)
}
