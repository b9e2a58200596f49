// scores.go — entering and editing hole scores. A score entry replaces the
// whole record for that player/hole (never a partial update), and every
// accepted entry triggers a full recompute of the round's results, which is
// pushed to live watchers through the hub. The engine is re-run from scratch
// on each change; nothing derived is stored.
package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trentd187/golf-wager/internal/engine"
	"github.com/trentd187/golf-wager/internal/logger"
	"github.com/trentd187/golf-wager/internal/models"
	"github.com/trentd187/golf-wager/internal/websocket"
)

// ScoreRequest is the JSON body for PUT /api/v1/rounds/:id/scores.
type ScoreRequest struct {
	Player string `json:"player"` // round player's display name
	Hole   int    `json:"hole"`
	Gross  int    `json:"gross"`
}

// LiveUpdate is the payload broadcast to round watchers after every accepted
// score, and also returned to the entering client. It carries the engine's
// recomputed view of the round, not the raw score.
type LiveUpdate struct {
	RoundID     string             `json:"round_id"`
	Hole        int                `json:"hole"`
	Leaderboard []LeaderboardRow   `json:"leaderboard"`
	Match       []MatchStandingRow `json:"match,omitempty"`
	SideBets    []SettlementRow    `json:"side_bets,omitempty"`
	Complete    bool               `json:"complete"`
}

// UpsertScore returns the handler for PUT /api/v1/rounds/:id/scores.
//
// A gross of zero is rejected: zero is not a golf score, and "not yet
// played" is represented by the absence of a record, never by a sentinel
// value.
func UpsertScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := parseRoundID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}

		var req ScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Gross < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "gross must be at least 1"})
		}

		round, err := loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		if req.Hole < 1 || req.Hole > round.Course.HoleCount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hole out of range"})
		}

		var player *models.RoundPlayer
		for i := range round.Players {
			if round.Players[i].Name == req.Player {
				player = &round.Players[i]
				break
			}
		}
		if player == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no such player in this round"})
		}

		// Replace-or-create the whole record for this player/hole.
		score := models.HoleScore{
			RoundPlayerID: player.ID,
			HoleNumber:    req.Hole,
			GrossScore:    req.Gross,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			var existing models.HoleScore
			res := tx.Where("round_player_id = ? AND hole_number = ?", player.ID, req.Hole).First(&existing)
			if res.Error == nil {
				return tx.Model(&existing).Update("gross_score", req.Gross).Error
			}
			if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
				return res.Error
			}
			return tx.Create(&score).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save score"})
		}

		logger.WithRoundPlayer(roundID.String(), player.Name).
			WithField("hole", req.Hole).
			WithField("gross", req.Gross).
			Info("score recorded")

		// Reload and recompute the full round view.
		round, err = loadRound(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to reload round"})
		}
		update, err := buildLiveUpdate(round, req.Hole)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		// Flip the round to completed once every card is full. A failed
		// flip must not lose the accepted score, but it has to leave a
		// trace: the round would otherwise stay active forever.
		if update.Complete && round.Status != models.RoundStatusCompleted {
			if err := db.Model(round).Update("status", models.RoundStatusCompleted).Error; err != nil {
				logger.WithRound(roundID.String()).WithError(err).Error("failed to mark round completed")
			}
		}

		if payload, err := json.Marshal(update); err == nil {
			hub.Publish(roundID.String(), payload)
		}
		return c.JSON(update)
	}
}

// buildLiveUpdate reruns the engine over the round snapshot and assembles
// the broadcast payload: the stroke-play leaderboard, match standings when
// that format is active, and the side-bet outcome of the hole just entered.
func buildLiveUpdate(round *models.Round, holeNumber int) (*LiveUpdate, error) {
	er, err := engineRound(round)
	if err != nil {
		return nil, err
	}

	update := &LiveUpdate{
		RoundID:  round.ID.String(),
		Hole:     holeNumber,
		Complete: allCardsFull(round),
	}

	board, err := engine.StrokePlayLeaderboard(er.Players, er.Holes, er.Scores, round.Course.HoleCount)
	if err != nil {
		return nil, err
	}
	update.Leaderboard = leaderboardRows(board)

	if round.MatchPlay && len(er.Players) >= 2 {
		standings, err := engine.MatchStandings(er.Players, er.Holes, er.Scores, round.Course.HoleCount)
		if err != nil {
			return nil, err
		}
		update.Match = matchRows(standings)
	}

	if round.Skins || round.Oyeses {
		results, err := evaluateHoleSideBets(er, holeNumber)
		if err != nil {
			return nil, err
		}
		update.SideBets = settlementRows(results)
	}
	return update, nil
}

// allCardsFull reports whether every player has a recorded score on every
// course hole.
func allCardsFull(round *models.Round) bool {
	for _, rp := range round.Players {
		recorded := make(map[int]bool, len(rp.Scores))
		for _, s := range rp.Scores {
			recorded[s.HoleNumber] = true
		}
		for n := 1; n <= round.Course.HoleCount; n++ {
			if !recorded[n] {
				return false
			}
		}
	}
	return true
}
