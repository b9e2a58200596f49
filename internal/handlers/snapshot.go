// snapshot.go — loads a round from storage and converts it into the value
// objects the engine evaluates. The engine never sees GORM models; every
// request builds a fresh consistent snapshot, runs the pure computation, and
// throws the snapshot away. Settlement output is never written back.
package handlers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trentd187/golf-wager/internal/engine"
	"github.com/trentd187/golf-wager/internal/models"
)

var errRoundNotFound = errors.New("round not found")

// loadRound fetches a round with its course reference data, players and
// scores preloaded.
func loadRound(db *gorm.DB, roundID uuid.UUID) (*models.Round, error) {
	var round models.Round
	err := db.
		Preload("Course.Tees.Holes").
		Preload("Players.Tee").
		Preload("Players.Scores").
		First(&round, "id = ?", roundID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errRoundNotFound
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// engineRound converts storage rows into the engine's snapshot: players with
// their tee selection, holes with a stroke-index table keyed by tee name,
// every recorded score, and the betting configuration.
func engineRound(round *models.Round) (engine.Round, error) {
	holes, err := engineHoles(&round.Course)
	if err != nil {
		return engine.Round{}, err
	}

	players := make([]engine.Player, 0, len(round.Players))
	var scores []engine.HoleScore
	for _, rp := range round.Players {
		players = append(players, engine.Player{
			ID:             rp.ID,
			Name:           rp.Name,
			CourseHandicap: rp.CourseHandicap,
			TeeName:        rp.Tee.Name,
		})
		for _, s := range rp.Scores {
			scores = append(scores, engine.HoleScore{
				PlayerID:   rp.ID,
				HoleNumber: s.HoleNumber,
				Gross:      s.GrossScore,
				Played:     true,
			})
		}
	}

	var formats []engine.GameFormat
	if round.StrokePlay {
		formats = append(formats, engine.FormatStrokePlay)
	}
	if round.MatchPlay {
		formats = append(formats, engine.FormatMatchPlay)
	}

	return engine.Round{
		Players: players,
		Holes:   holes,
		Scores:  scores,
		Formats: formats,
		Options: engineOptions(round),
	}, nil
}

// engineHoles folds the course's per-tee hole rows into one hole list with a
// stroke-index table per tee. Par is taken from the first tee that defines
// the hole; stroke indexes stay tee-specific.
func engineHoles(course *models.Course) ([]engine.Hole, error) {
	byNumber := make(map[int]*engine.Hole)
	for _, tee := range course.Tees {
		for _, h := range tee.Holes {
			eh, ok := byNumber[h.HoleNumber]
			if !ok {
				eh = &engine.Hole{
					Number:           h.HoleNumber,
					Par:              h.Par,
					StrokeIndexByTee: make(map[string]int),
				}
				byNumber[h.HoleNumber] = eh
			}
			eh.StrokeIndexByTee[tee.Name] = h.StrokeIndex
		}
	}
	if len(byNumber) == 0 {
		return nil, fmt.Errorf("course %s has no hole data", course.ID)
	}

	holes := make([]engine.Hole, 0, len(byNumber))
	for _, h := range byNumber {
		holes = append(holes, *h)
	}
	sort.Slice(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })
	return holes, nil
}

// engineOptions maps the round's betting columns onto the engine's
// configuration record. Stake entries are only added for positive amounts:
// a zero stake means the bet was not taken, and adding it would force
// completeness checks on a bet that moves no money.
func engineOptions(round *models.Round) engine.BettingOptions {
	opts := engine.BettingOptions{
		Skins:       round.Skins,
		Oyeses:      round.Oyeses,
		Foursomes:   round.Foursomes,
		Presses:     round.Presses,
		Carryovers:  round.Carryovers,
		UnitPerHole: round.UnitPerHole,
		Segments:    make(map[engine.Segment]bool),
		Stakes:      make(map[engine.Segment]map[engine.GameFormat]decimal.Decimal),
	}

	addSegment := func(seg engine.Segment, active bool, strokeBet, matchBet decimal.Decimal) {
		if !active {
			return
		}
		opts.Segments[seg] = true
		stakes := make(map[engine.GameFormat]decimal.Decimal)
		if strokeBet.IsPositive() {
			stakes[engine.FormatStrokePlay] = strokeBet
		}
		if matchBet.IsPositive() {
			stakes[engine.FormatMatchPlay] = matchBet
		}
		opts.Stakes[seg] = stakes
	}
	addSegment(engine.SegmentFrontNine, round.FrontNine, round.FrontStrokeBet, round.FrontMatchBet)
	addSegment(engine.SegmentBackNine, round.BackNine, round.BackStrokeBet, round.BackMatchBet)
	addSegment(engine.SegmentTotal, round.Total, round.TotalStrokeBet, round.TotalMatchBet)
	return opts
}

// parseRoundID parses the :id route parameter.
func parseRoundID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
