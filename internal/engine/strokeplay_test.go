package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusThroughHole(t *testing.T) {
	holes := testHoles()
	p := testPlayer("Ana", 0)

	// Front nine is par 35. Bogeys on 1 and 2, birdie on 3, par elsewhere.
	scores := parScores(p, holes, map[int]int{1: 5, 2: 5, 3: 2})
	ledger, err := NewScoreLedger(p, holes, scores)
	require.NoError(t, err)

	status := StatusThroughHole(ledger, 9)
	assert.Equal(t, 1, status.ToPar)
	assert.Equal(t, "+1", status.Label)

	// Through hole 3 the birdie cancels one bogey.
	status = StatusThroughHole(ledger, 3)
	assert.Equal(t, 1, status.ToPar)

	// Through hole 18 they finish +1 (par the rest of the way).
	status = StatusThroughHole(ledger, 18)
	assert.Equal(t, "+1", status.Label)
}

func TestStatusLabels(t *testing.T) {
	holes := testHoles()

	even := testPlayer("Eve", 0)
	ledger, err := NewScoreLedger(even, holes, parScores(even, holes, nil))
	require.NoError(t, err)
	assert.Equal(t, "E", StatusThroughHole(ledger, 18).Label)

	under := testPlayer("Uma", 0)
	ledger, err = NewScoreLedger(under, holes, parScores(under, holes, map[int]int{3: 2, 8: 2}))
	require.NoError(t, err)
	assert.Equal(t, "-2", StatusThroughHole(ledger, 18).Label)
}

func TestStatusCountsOnlyRecordedHoles(t *testing.T) {
	holes := testHoles()
	p := testPlayer("Ana", 0)

	// Only holes 1 and 2 played, both bogeys. Holes 3..9 must not count
	// as par nor as zero.
	ledger, err := NewScoreLedger(p, holes, []HoleScore{
		playedScore(p, 1, 5),
		playedScore(p, 2, 5),
	})
	require.NoError(t, err)

	status := StatusThroughHole(ledger, 9)
	assert.Equal(t, 2, status.ToPar)
	assert.Equal(t, "+2", status.Label)
}

func TestStrokePlayLeaderboardSharedRanks(t *testing.T) {
	holes := testHoles()
	ana := testPlayer("Ana", 0)
	ben := testPlayer("Ben", 0)
	cal := testPlayer("Cal", 0)

	var scores []HoleScore
	scores = append(scores, parScores(ana, holes, map[int]int{1: 3})...) // -1
	scores = append(scores, parScores(ben, holes, map[int]int{2: 3})...) // -1
	scores = append(scores, parScores(cal, holes, nil)...)               // E

	board, err := StrokePlayLeaderboard([]Player{ana, ben, cal}, holes, scores, 18)
	require.NoError(t, err)
	require.Len(t, board, 3)

	// Ana and Ben tie on 69 net and share rank 1; Cal is rank 3, not 2.
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 1, board[1].Rank)
	assert.Equal(t, 3, board[2].Rank)
	assert.Equal(t, "Cal", board[2].Player.Name)
	assert.Equal(t, 69, board[0].NetStrokes)
	assert.Equal(t, 70, board[2].NetStrokes)
}

func TestStrokePlayLeaderboardUsesNetStrokes(t *testing.T) {
	holes := testHoles()
	scratch := testPlayer("Scratch", 0)
	chopper := testPlayer("Chopper", 18)

	var scores []HoleScore
	// Scratch shoots even par 70; the 18-handicap shoots 87 gross, which
	// nets to 69 — the handicap decides the board.
	scores = append(scores, parScores(scratch, holes, nil)...)
	for _, h := range holes {
		scores = append(scores, playedScore(chopper, h.Number, h.Par+1))
	}
	scores[len(scores)-1].Gross-- // one par late in the round: 87 gross

	board, err := StrokePlayLeaderboard([]Player{scratch, chopper}, holes, scores, 18)
	require.NoError(t, err)
	assert.Equal(t, "Chopper", board[0].Player.Name)
	assert.Equal(t, 69, board[0].NetStrokes)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 2, board[1].Rank)
}
