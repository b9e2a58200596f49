// rounds.go — creating and reading rounds. A round binds players (with their
// course handicaps and tee selections) to a course and fixes the betting
// configuration. Everything is validated here, once, at creation time; after
// that the configuration is treated as immutable by the engine.
package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trentd187/golf-wager/internal/engine"
	"github.com/trentd187/golf-wager/internal/models"
)

// CreateRoundRequest is the JSON body for POST /api/v1/rounds.
type CreateRoundRequest struct {
	CourseID string                `json:"course_id"`
	Name     string                `json:"name"`
	PlayedOn *string               `json:"played_on"` // "YYYY-MM-DD"; defaults to today
	Players  []RoundPlayerRequest  `json:"players"`
	Formats  []string              `json:"formats"` // "stroke_play", "match_play"
	Betting  BettingOptionsRequest `json:"betting"`
}

// RoundPlayerRequest is one participant: their display name, the course
// handicap they play off for this round, and the tee set they play from.
type RoundPlayerRequest struct {
	Name           string `json:"name"`
	CourseHandicap int    `json:"course_handicap"`
	Tee            string `json:"tee"`
}

// BettingOptionsRequest mirrors the round's wager configuration. Amounts
// accept JSON numbers or strings ("5" or "5.00").
type BettingOptionsRequest struct {
	Skins       bool            `json:"skins"`
	Oyeses      bool            `json:"oyeses"`
	Foursomes   bool            `json:"foursomes"`
	Presses     bool            `json:"presses"`
	Carryovers  bool            `json:"carryovers"`
	UnitPerHole decimal.Decimal `json:"unit_per_hole"`

	FrontNine      bool            `json:"front_nine"`
	BackNine       bool            `json:"back_nine"`
	Total          bool            `json:"total"`
	FrontStrokeBet decimal.Decimal `json:"front_stroke_bet"`
	FrontMatchBet  decimal.Decimal `json:"front_match_bet"`
	BackStrokeBet  decimal.Decimal `json:"back_stroke_bet"`
	BackMatchBet   decimal.Decimal `json:"back_match_bet"`
	TotalStrokeBet decimal.Decimal `json:"total_stroke_bet"`
	TotalMatchBet  decimal.Decimal `json:"total_match_bet"`
}

// RoundResponse is the representation sent back to clients.
type RoundResponse struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	CourseID string                `json:"course_id"`
	Status   string                `json:"status"`
	PlayedOn string                `json:"played_on"`
	Formats  []string              `json:"formats"`
	Betting  BettingOptionsRequest `json:"betting"`
	Players  []RoundPlayerResponse `json:"players"`
}

type RoundPlayerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CourseHandicap int    `json:"course_handicap"`
	Tee            string `json:"tee"`
	HolesRecorded  int    `json:"holes_recorded"`
}

// CreateRound returns the handler for POST /api/v1/rounds.
func CreateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid course_id"})
		}
		course, err := fetchCourse(db, courseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "course not found"})
		}

		if len(req.Players) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least one player is required"})
		}

		// Resolve each player's tee by name against the course's tee sets
		// and reject out-of-range handicaps outright — never clamp.
		teeByName := make(map[string]models.Tee, len(course.Tees))
		for _, tee := range course.Tees {
			teeByName[tee.Name] = tee
		}
		seenNames := make(map[string]bool, len(req.Players))
		for _, p := range req.Players {
			if p.Name == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player name is required"})
			}
			if seenNames[p.Name] {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("duplicate player name %q", p.Name)})
			}
			seenNames[p.Name] = true
			if p.CourseHandicap < 0 || p.CourseHandicap > engine.MaxCourseHandicap {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("player %q: course handicap must be between 0 and %d", p.Name, engine.MaxCourseHandicap),
				})
			}
			if _, ok := teeByName[p.Tee]; !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("player %q: unknown tee %q", p.Name, p.Tee)})
			}
		}

		strokePlay, matchPlay, err := parseFormats(req.Formats)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		playedOn := time.Now().UTC().Truncate(24 * time.Hour)
		if req.PlayedOn != nil && *req.PlayedOn != "" {
			playedOn, err = time.Parse("2006-01-02", *req.PlayedOn)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "played_on must be in YYYY-MM-DD format"})
			}
		}

		round := models.Round{
			CourseID:       course.ID,
			Name:           req.Name,
			Status:         models.RoundStatusActive,
			PlayedOn:       playedOn,
			StrokePlay:     strokePlay,
			MatchPlay:      matchPlay,
			Skins:          req.Betting.Skins,
			Oyeses:         req.Betting.Oyeses,
			Foursomes:      req.Betting.Foursomes,
			Presses:        req.Betting.Presses,
			Carryovers:     req.Betting.Carryovers,
			UnitPerHole:    req.Betting.UnitPerHole,
			FrontNine:      req.Betting.FrontNine,
			BackNine:       req.Betting.BackNine,
			Total:          req.Betting.Total,
			FrontStrokeBet: req.Betting.FrontStrokeBet,
			FrontMatchBet:  req.Betting.FrontMatchBet,
			BackStrokeBet:  req.Betting.BackStrokeBet,
			BackMatchBet:   req.Betting.BackMatchBet,
			TotalStrokeBet: req.Betting.TotalStrokeBet,
			TotalMatchBet:  req.Betting.TotalMatchBet,
		}
		if round.Name == "" {
			round.Name = fmt.Sprintf("%s — %s", course.Name, playedOn.Format("2006-01-02"))
		}

		// Reject negative amounts up front. engineOptions only carries
		// positive stakes into the engine's config, so this is the one place
		// a negative column can be caught.
		if err := validateBettingAmounts(req.Betting); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		// Run the engine's own configuration validation before touching the
		// database, so a bad stake never reaches a stored round.
		if err := engineOptions(&round).Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&round).Error; err != nil {
				return err
			}
			for _, p := range req.Players {
				player := models.RoundPlayer{
					RoundID:        round.ID,
					Name:           p.Name,
					CourseHandicap: p.CourseHandicap,
					TeeID:          teeByName[p.Tee].ID,
				}
				if err := tx.Create(&player).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create round"})
		}

		created, err := loadRound(db, round.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load round"})
		}
		return c.Status(fiber.StatusCreated).JSON(roundResponse(created))
	}
}

// GetRound returns the handler for GET /api/v1/rounds/:id.
func GetRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseRoundID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		}
		round, err := loadRound(db, id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "round not found"})
		}
		return c.JSON(roundResponse(round))
	}
}

func validateBettingAmounts(b BettingOptionsRequest) error {
	amounts := map[string]decimal.Decimal{
		"unit_per_hole":    b.UnitPerHole,
		"front_stroke_bet": b.FrontStrokeBet,
		"front_match_bet":  b.FrontMatchBet,
		"back_stroke_bet":  b.BackStrokeBet,
		"back_match_bet":   b.BackMatchBet,
		"total_stroke_bet": b.TotalStrokeBet,
		"total_match_bet":  b.TotalMatchBet,
	}
	for field, amount := range amounts {
		if amount.IsNegative() {
			return fmt.Errorf("%s must not be negative", field)
		}
	}
	return nil
}

func parseFormats(names []string) (strokePlay, matchPlay bool, err error) {
	for _, name := range names {
		switch engine.GameFormat(name) {
		case engine.FormatStrokePlay:
			strokePlay = true
		case engine.FormatMatchPlay:
			matchPlay = true
		default:
			return false, false, fmt.Errorf("format must be %q or %q", engine.FormatStrokePlay, engine.FormatMatchPlay)
		}
	}
	if !strokePlay && !matchPlay {
		return false, false, fmt.Errorf("at least one format is required")
	}
	return strokePlay, matchPlay, nil
}

func roundResponse(round *models.Round) RoundResponse {
	var formats []string
	if round.StrokePlay {
		formats = append(formats, string(engine.FormatStrokePlay))
	}
	if round.MatchPlay {
		formats = append(formats, string(engine.FormatMatchPlay))
	}

	players := make([]RoundPlayerResponse, 0, len(round.Players))
	for _, rp := range round.Players {
		players = append(players, RoundPlayerResponse{
			ID:             rp.ID.String(),
			Name:           rp.Name,
			CourseHandicap: rp.CourseHandicap,
			Tee:            rp.Tee.Name,
			HolesRecorded:  len(rp.Scores),
		})
	}

	return RoundResponse{
		ID:       round.ID.String(),
		Name:     round.Name,
		CourseID: round.CourseID.String(),
		Status:   string(round.Status),
		PlayedOn: round.PlayedOn.UTC().Format("2006-01-02"),
		Formats:  formats,
		Betting: BettingOptionsRequest{
			Skins:          round.Skins,
			Oyeses:         round.Oyeses,
			Foursomes:      round.Foursomes,
			Presses:        round.Presses,
			Carryovers:     round.Carryovers,
			UnitPerHole:    round.UnitPerHole,
			FrontNine:      round.FrontNine,
			BackNine:       round.BackNine,
			Total:          round.Total,
			FrontStrokeBet: round.FrontStrokeBet,
			FrontMatchBet:  round.FrontMatchBet,
			BackStrokeBet:  round.BackStrokeBet,
			BackMatchBet:   round.BackMatchBet,
			TotalStrokeBet: round.TotalStrokeBet,
			TotalMatchBet:  round.TotalMatchBet,
		},
		Players: players,
	}
}
