package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standingFor(t *testing.T, standings []MatchStanding, name string) MatchStanding {
	t.Helper()
	for _, s := range standings {
		if s.Player.Name == name {
			return s
		}
	}
	t.Fatalf("no standing for %s", name)
	return MatchStanding{}
}

func TestMatchStandingsAgainstBestOfField(t *testing.T) {
	holes := testHoles()
	ana := testPlayer("Ana", 0)
	ben := testPlayer("Ben", 0)
	cal := testPlayer("Cal", 0)

	var scores []HoleScore
	// Ana birdies 1 and 2; Ben birdies 5; everything else is par.
	scores = append(scores, parScores(ana, holes, map[int]int{1: 3, 2: 3})...)
	scores = append(scores, parScores(ben, holes, map[int]int{5: 4})...)
	scores = append(scores, parScores(cal, holes, nil)...)

	standings, err := MatchStandings([]Player{ana, ben, cal}, holes, scores, 9)
	require.NoError(t, err)

	// Holes 1,2: Ana beats the best of Ben/Cal; both of them lose the hole.
	// Hole 5: Ben beats the best of Ana/Cal.
	ana1 := standingFor(t, standings, "Ana")
	assert.Equal(t, 2, ana1.HolesWon)
	assert.Equal(t, 1, ana1.HolesLost)
	assert.Equal(t, 1, ana1.Standing)
	assert.Equal(t, "1 UP", ana1.Label)

	ben1 := standingFor(t, standings, "Ben")
	assert.Equal(t, 1, ben1.HolesWon)
	assert.Equal(t, 2, ben1.HolesLost)
	assert.Equal(t, "1 DN", ben1.Label)

	cal1 := standingFor(t, standings, "Cal")
	assert.Equal(t, 0, cal1.HolesWon)
	assert.Equal(t, 3, cal1.HolesLost)
	assert.Equal(t, "3 DN", cal1.Label)
}

func TestMatchStandingsAllSquare(t *testing.T) {
	holes := testHoles()
	ana := testPlayer("Ana", 0)
	ben := testPlayer("Ben", 0)

	var scores []HoleScore
	scores = append(scores, parScores(ana, holes, nil)...)
	scores = append(scores, parScores(ben, holes, nil)...)

	standings, err := MatchStandings([]Player{ana, ben}, holes, scores, 18)
	require.NoError(t, err)
	for _, s := range standings {
		assert.Equal(t, 0, s.Standing)
		assert.Equal(t, "AS", s.Label)
		assert.False(t, s.Decided)
	}
}

func TestMatchStandingsNetNotGross(t *testing.T) {
	holes := testHoles()
	scratch := testPlayer("Scratch", 0)
	chopper := testPlayer("Chopper", 18)

	// Both shoot gross par on hole 1; the stroke makes the chopper net 3
	// and win the hole.
	scores := []HoleScore{
		playedScore(scratch, 1, 4),
		playedScore(chopper, 1, 4),
	}
	standings, err := MatchStandings([]Player{scratch, chopper}, holes, scores, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, standingFor(t, standings, "Chopper").Standing)
	assert.Equal(t, -1, standingFor(t, standings, "Scratch").Standing)
}

func TestMatchStandingsDecided(t *testing.T) {
	holes := testHoles()
	ana := testPlayer("Ana", 0)
	ben := testPlayer("Ben", 0)

	// Ana wins the first five holes. Through hole 14 she is 5 UP with
	// four to play: mathematically over, but the standing keeps counting.
	overrides := map[int]int{1: 3, 2: 3, 3: 2, 4: 3, 5: 4}
	var scores []HoleScore
	scores = append(scores, parScores(ana, holes, overrides)...)
	scores = append(scores, parScores(ben, holes, nil)...)

	standings, err := MatchStandings([]Player{ana, ben}, holes, scores, 14)
	require.NoError(t, err)
	ana14 := standingFor(t, standings, "Ana")
	assert.Equal(t, 5, ana14.Standing)
	assert.True(t, ana14.Decided)

	// Through hole 13 (5 up, 5 to play) it is not decided yet.
	standings, err = MatchStandings([]Player{ana, ben}, holes, scores, 13)
	require.NoError(t, err)
	assert.False(t, standingFor(t, standings, "Ana").Decided)
}

func TestMatchStandingsSkipsHolesWithoutTwoScores(t *testing.T) {
	holes := testHoles()
	ana := testPlayer("Ana", 0)
	ben := testPlayer("Ben", 0)

	// Only Ana has scored holes 1-3; nobody can win or lose those holes.
	var scores []HoleScore
	for n := 1; n <= 3; n++ {
		scores = append(scores, playedScore(ana, n, 3))
	}
	scores = append(scores, playedScore(ana, 4, 5))
	scores = append(scores, playedScore(ben, 4, 4))

	standings, err := MatchStandings([]Player{ana, ben}, holes, scores, 9)
	require.NoError(t, err)
	assert.Equal(t, -1, standingFor(t, standings, "Ana").Standing)
	assert.Equal(t, 1, standingFor(t, standings, "Ben").Standing)
}

func TestMatchStandingsRequiresTwoPlayers(t *testing.T) {
	holes := testHoles()
	solo := testPlayer("Solo", 0)
	_, err := MatchStandings([]Player{solo}, holes, parScores(solo, holes, nil), 18)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}
