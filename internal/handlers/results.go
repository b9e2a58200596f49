// results.go — the read side of the engine: leaderboard and match standings
// for progress displays, per-hole side-bet outcomes, segment settlements and
// the final aggregated balances. All of these are computed on request from
// the stored scores; none of them are persisted anywhere.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trentd187/golf-wager/internal/engine"
	"github.com/trentd187/golf-wager/internal/models"
)

// LeaderboardRow is one line of the stroke-play leaderboard.
type LeaderboardRow struct {
	Rank        int    `json:"rank"`
	Player      string `json:"player"`
	NetStrokes  int    `json:"net_strokes"`
	HolesPlayed int    `json:"holes_played"`
	ToPar       int    `json:"to_par"`
	Label       string `json:"label"` // "E", "+3", "-2"
}

// MatchStandingRow is one player's match-play position.
type MatchStandingRow struct {
	Player    string `json:"player"`
	HolesWon  int    `json:"holes_won"`
	HolesLost int    `json:"holes_lost"`
	Standing  int    `json:"standing"`
	Label     string `json:"label"` // "2 UP", "1 DN", "AS"
	Decided   bool   `json:"decided"`
}

// SettlementRow is one side-bet outcome on one hole.
type SettlementRow struct {
	Type   string  `json:"type"`
	Winner *string `json:"winner"` // null when tied or nobody scored
	Amount string  `json:"amount"`
	Tied   bool    `json:"tied"`
}

// SegmentSettlementResponse is the money movement for one segment bet.
type SegmentSettlementResponse struct {
	Segment  string            `json:"segment"`
	Format   string            `json:"format"`
	Stake    string            `json:"stake"`
	TotalPot string            `json:"total_pot"`
	Winners  []string          `json:"winners"`
	Balances map[string]string `json:"balances"` // player name -> signed amount
}

// BalancesResponse is the final aggregated result of the round.
type BalancesResponse struct {
	RoundID  string            `json:"round_id"`
	Balances map[string]string `json:"balances"` // player name -> signed amount
}

// GetLeaderboard returns the handler for
// GET /api/v1/rounds/:id/leaderboard?through=N. This is a progress view: it
// ranks whatever has been recorded so far.
func GetLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		round, er, ok := roundSnapshot(c, db)
		if !ok {
			return nil
		}
		through := c.QueryInt("through", round.Course.HoleCount)
		if through < 1 || through > round.Course.HoleCount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "through out of range"})
		}

		board, err := engine.StrokePlayLeaderboard(er.Players, er.Holes, er.Scores, through)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(leaderboardRows(board))
	}
}

// GetMatchStandings returns the handler for
// GET /api/v1/rounds/:id/match?through=N.
func GetMatchStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		round, er, ok := roundSnapshot(c, db)
		if !ok {
			return nil
		}
		through := c.QueryInt("through", round.Course.HoleCount)
		if through < 1 || through > round.Course.HoleCount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "through out of range"})
		}

		standings, err := engine.MatchStandings(er.Players, er.Holes, er.Scores, through)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(matchRows(standings))
	}
}

// GetHoleSideBets returns the handler for
// GET /api/v1/rounds/:id/holes/:hole/sidebets — who won this hole's skins
// and oyeses, if anyone.
func GetHoleSideBets(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		round, er, ok := roundSnapshot(c, db)
		if !ok {
			return nil
		}
		hole, err := c.ParamsInt("hole")
		if err != nil || hole < 1 || hole > round.Course.HoleCount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hole"})
		}

		results, err := evaluateHoleSideBets(er, hole)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(settlementRows(results))
	}
}

// GetSegmentSettlement returns the handler for
// GET /api/v1/rounds/:id/settlement?segment=&format=. This moves (virtual)
// money, so it refuses to run until every player has a full card for the
// segment.
func GetSegmentSettlement(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		round, er, ok := roundSnapshot(c, db)
		if !ok {
			return nil
		}

		seg := engine.Segment(c.Query("segment"))
		if !seg.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "segment must be 'front_nine', 'back_nine', or 'total'"})
		}
		format := engine.GameFormat(c.Query("format"))
		if !format.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be 'stroke_play' or 'match_play'"})
		}
		if !er.FormatActive(format) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format is not active for this round"})
		}
		stake, ok2 := er.Options.StakeFor(seg, format)
		if !ok2 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no bet configured for this segment and format"})
		}

		settlement, err := engine.SettleSegment(er.Players, er.Holes, er.Scores, seg, format, stake)
		if err != nil {
			return engineError(c, err)
		}

		nameByID := make(map[string]string, len(round.Players))
		for _, rp := range round.Players {
			nameByID[rp.ID.String()] = rp.Name
		}
		resp := SegmentSettlementResponse{
			Segment:  string(settlement.Segment),
			Format:   string(settlement.Format),
			Stake:    settlement.Stake.StringFixed(2),
			TotalPot: settlement.TotalPot.StringFixed(2),
			Balances: make(map[string]string, len(settlement.Balances)),
		}
		for _, id := range settlement.Winners {
			resp.Winners = append(resp.Winners, nameByID[id.String()])
		}
		for id, amount := range settlement.Balances {
			resp.Balances[nameByID[id.String()]] = amount.StringFixed(2)
		}
		return c.JSON(resp)
	}
}

// GetBalances returns the handler for GET /api/v1/rounds/:id/balances — the
// final aggregated balance per player across every active wager. Responds
// 409 while any active segment bet is still missing scores.
func GetBalances(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		round, er, ok := roundSnapshot(c, db)
		if !ok {
			return nil
		}

		balances, err := engine.Aggregate(er)
		if err != nil {
			return engineError(c, err)
		}
		resp := BalancesResponse{
			RoundID:  round.ID.String(),
			Balances: make(map[string]string, len(balances)),
		}
		for name, amount := range balances {
			resp.Balances[name] = amount.StringFixed(2)
		}
		return c.JSON(resp)
	}
}

// roundSnapshot loads the round named in the route and builds the engine
// snapshot, writing the error response itself when anything is off. The
// boolean reports whether the caller should continue.
func roundSnapshot(c *fiber.Ctx, db *gorm.DB) (*models.Round, engine.Round, bool) {
	id, err := parseRoundID(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid round ID"})
		return nil, engine.Round{}, false
	}
	round, err := loadRound(db, id)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, errRoundNotFound) {
			status = fiber.StatusNotFound
		}
		_ = c.Status(status).JSON(fiber.Map{"error": "round not found"})
		return nil, engine.Round{}, false
	}
	er, err := engineRound(round)
	if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		return nil, engine.Round{}, false
	}
	return round, er, true
}

// evaluateHoleSideBets runs the side-bet evaluator on one hole with the
// round's options, restricting oyeses to par-3 holes the same way the final
// aggregation does.
func evaluateHoleSideBets(er engine.Round, holeNumber int) ([]engine.SettlementResult, error) {
	opts := er.Options
	for _, h := range er.Holes {
		if h.Number == holeNumber {
			opts.Oyeses = opts.Oyeses && h.Par == 3
			break
		}
	}
	return engine.EvaluateHole(er.Players, er.Holes, er.Scores, holeNumber, opts)
}

// engineError maps the engine's error taxonomy onto HTTP statuses.
// Incomplete scores are a conflict with the round's current state; too few
// players is an unprocessable request; corrupt reference data is a server
// problem — course data is supposed to be immutable and valid.
func engineError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrIncompleteScores):
		status = fiber.StatusConflict
	case errors.Is(err, engine.ErrInsufficientPlayers):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrInvalidHandicap):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrInvalidStrokeIndex):
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func leaderboardRows(board []engine.LeaderboardEntry) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(board))
	for _, e := range board {
		rows = append(rows, LeaderboardRow{
			Rank:        e.Rank,
			Player:      e.Player.Name,
			NetStrokes:  e.NetStrokes,
			HolesPlayed: e.HolesPlayed,
			ToPar:       e.Status.ToPar,
			Label:       e.Status.Label,
		})
	}
	return rows
}

func matchRows(standings []engine.MatchStanding) []MatchStandingRow {
	rows := make([]MatchStandingRow, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, MatchStandingRow{
			Player:    s.Player.Name,
			HolesWon:  s.HolesWon,
			HolesLost: s.HolesLost,
			Standing:  s.Standing,
			Label:     s.Label,
			Decided:   s.Decided,
		})
	}
	return rows
}

func settlementRows(results []engine.SettlementResult) []SettlementRow {
	rows := make([]SettlementRow, 0, len(results))
	for _, r := range results {
		row := SettlementRow{
			Type:   string(r.Type),
			Amount: r.Amount.StringFixed(2),
			Tied:   r.Tied,
		}
		if r.Winner != nil {
			name := r.Winner.Name
			row.Winner = &name
		}
		rows = append(rows, row)
	}
	return rows
}
