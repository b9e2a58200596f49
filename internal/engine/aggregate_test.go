package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregateRound() Round {
	holes := testHoles()
	ana := testPlayer("Ana", 0)
	ben := testPlayer("Ben", 0)
	cal := testPlayer("Cal", 0)

	var scores []HoleScore
	// Ana birdies the par-3 3rd; everything else is tied at par, so hole 3
	// is the only hole where money moves on side bets.
	scores = append(scores, parScores(ana, holes, map[int]int{3: 2})...)
	scores = append(scores, parScores(ben, holes, nil)...)
	scores = append(scores, parScores(cal, holes, nil)...)

	return Round{
		Players: []Player{ana, ben, cal},
		Holes:   holes,
		Scores:  scores,
		Formats: []GameFormat{FormatStrokePlay},
		Options: BettingOptions{
			Skins:       true,
			Oyeses:      true,
			UnitPerHole: dec("1.00"),
			Segments:    map[Segment]bool{SegmentTotal: true},
			Stakes: map[Segment]map[GameFormat]decimal.Decimal{
				SegmentTotal: {FormatStrokePlay: dec("10.00")},
			},
		},
	}
}

func TestAggregateFullRound(t *testing.T) {
	round := aggregateRound()
	balances, err := Aggregate(round)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	// Hole 3: Ana wins the skin (2.00, each loser pays 1.00) and the oyes
	// (1.00, each loser pays 0.50). Total-segment stroke play: Ana nets 69
	// against two 70s and takes the 20.00 pot while Ben and Cal pay 10.00.
	assert.True(t, balances["Ana"].Equal(dec("23.00")), "Ana got %s", balances["Ana"])
	assert.True(t, balances["Ben"].Equal(dec("-11.50")), "Ben got %s", balances["Ben"])
	assert.True(t, balances["Cal"].Equal(dec("-11.50")), "Cal got %s", balances["Cal"])

	sum := decimal.Zero
	for _, d := range balances {
		sum = sum.Add(d)
	}
	assert.True(t, sum.IsZero())
}

func TestAggregateOyesesOnlyOnParThrees(t *testing.T) {
	round := aggregateRound()
	// Move Ana's birdie to the par-4 1st: the skin still pays, the oyes
	// does not apply off a par 3.
	for i, s := range round.Scores {
		if s.PlayerID == round.Players[0].ID {
			switch s.HoleNumber {
			case 1:
				round.Scores[i].Gross = 3
			case 3:
				round.Scores[i].Gross = 3
			}
		}
	}
	round.Options.Segments = nil
	round.Options.Stakes = nil

	balances, err := Aggregate(round)
	require.NoError(t, err)

	// Only the 2.00 skin on hole 1 moves: Ana +2.00, others -1.00.
	assert.True(t, balances["Ana"].Equal(dec("2.00")), "Ana got %s", balances["Ana"])
	assert.True(t, balances["Ben"].Equal(dec("-1.00")))
	assert.True(t, balances["Cal"].Equal(dec("-1.00")))
}

func TestAggregateMatchPlaySegment(t *testing.T) {
	round := aggregateRound()
	round.Formats = []GameFormat{FormatMatchPlay}
	round.Options.Skins = false
	round.Options.Oyeses = false
	round.Options.Segments = map[Segment]bool{SegmentFrontNine: true}
	round.Options.Stakes = map[Segment]map[GameFormat]decimal.Decimal{
		SegmentFrontNine: {FormatMatchPlay: dec("9.00")},
	}

	balances, err := Aggregate(round)
	require.NoError(t, err)

	// Ana wins hole 3 and halves the rest: 1 UP takes the front-nine match.
	assert.True(t, balances["Ana"].Equal(dec("18.00")), "Ana got %s", balances["Ana"])
	assert.True(t, balances["Ben"].Equal(dec("-9.00")))
	assert.True(t, balances["Cal"].Equal(dec("-9.00")))
}

func TestAggregateRejectsIncompleteSegment(t *testing.T) {
	round := aggregateRound()
	// Drop Cal's 18th: the total-segment bet can no longer settle, and a
	// missing score must not be treated as zero.
	trimmed := round.Scores[:0]
	for _, s := range round.Scores {
		if s.PlayerID == round.Players[2].ID && s.HoleNumber == 18 {
			continue
		}
		trimmed = append(trimmed, s)
	}
	round.Scores = trimmed

	_, err := Aggregate(round)
	assert.ErrorIs(t, err, ErrIncompleteScores)
}

func TestAggregateSurfacesCorruptStrokeIndex(t *testing.T) {
	round := aggregateRound()
	round.Holes[4].StrokeIndexByTee = map[string]int{"white": 0, "red": 14}

	// Every card is full; the failure is corrupt reference data and must
	// not be reported as unrecorded scores.
	_, err := Aggregate(round)
	assert.ErrorIs(t, err, ErrInvalidStrokeIndex)
	assert.NotErrorIs(t, err, ErrIncompleteScores)
}

func TestAggregateSideBetsOnlyTolerateMissingHoles(t *testing.T) {
	round := aggregateRound()
	round.Options.Segments = nil
	round.Options.Stakes = nil
	// Everyone short of a full card: side bets settle hole by hole over
	// whatever has been recorded.
	round.Scores = round.Scores[:len(round.Scores)-1]

	balances, err := Aggregate(round)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, d := range balances {
		sum = sum.Add(d)
	}
	assert.True(t, sum.IsZero())
}

func TestAggregateIdempotent(t *testing.T) {
	round := aggregateRound()
	first, err := Aggregate(round)
	require.NoError(t, err)
	second, err := Aggregate(round)
	require.NoError(t, err)
	for name, d := range first {
		assert.True(t, d.Equal(second[name]), "player %s", name)
	}
}

func TestAggregateSoloRoundMovesNoMoney(t *testing.T) {
	holes := testHoles()
	solo := testPlayer("Solo", 7)
	round := Round{
		Players: []Player{solo},
		Holes:   holes,
		Scores:  parScores(solo, holes, nil),
		Options: BettingOptions{Skins: true, Oyeses: true, UnitPerHole: dec("1.00")},
	}
	balances, err := Aggregate(round)
	require.NoError(t, err)
	assert.True(t, balances["Solo"].IsZero())
}

func TestAggregateValidatesOptions(t *testing.T) {
	round := aggregateRound()
	round.Options.UnitPerHole = dec("-1.00")
	_, err := Aggregate(round)
	assert.Error(t, err)
}
