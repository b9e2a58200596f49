package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trentd187/golf-wager/internal/models"
	"github.com/trentd187/golf-wager/internal/websocket"
)

// testDB opens an in-memory SQLite database with the full schema. A single
// connection is forced because each new :memory: connection would otherwise
// be a fresh empty database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Course{}, &models.Tee{}, &models.Hole{},
		&models.Round{}, &models.RoundPlayer{}, &models.HoleScore{},
	))
	return db
}

// seedRound stores an 18-hole course with one tee set and an active
// stroke-play round for Ana and Ben, no bets configured.
func seedRound(t *testing.T, db *gorm.DB) *models.Round {
	t.Helper()

	course := models.Course{Name: "Pine Hollow", HoleCount: 18}
	require.NoError(t, db.Create(&course).Error)

	tee := models.Tee{CourseID: course.ID, Name: "white", Gender: models.TeeGenderUnisex}
	require.NoError(t, db.Create(&tee).Error)
	for n := 1; n <= 18; n++ {
		hole := models.Hole{TeeID: tee.ID, HoleNumber: n, Par: 4, StrokeIndex: n}
		require.NoError(t, db.Create(&hole).Error)
	}

	round := models.Round{
		CourseID:   course.ID,
		Name:       "Saturday game",
		Status:     models.RoundStatusActive,
		PlayedOn:   time.Now().UTC(),
		StrokePlay: true,
	}
	require.NoError(t, db.Create(&round).Error)
	for _, name := range []string{"Ana", "Ben"} {
		player := models.RoundPlayer{RoundID: round.ID, Name: name, CourseHandicap: 9, TeeID: tee.ID}
		require.NoError(t, db.Create(&player).Error)
	}
	return &round
}

func scoresApp(db *gorm.DB) *fiber.App {
	hub := websocket.NewHub()
	go hub.Run()
	app := fiber.New()
	app.Put("/api/v1/rounds/:id/scores", UpsertScore(db, hub))
	return app
}

func putScore(t *testing.T, app *fiber.App, roundID uuid.UUID, player string, hole, gross int) *http.Response {
	t.Helper()
	body, err := json.Marshal(ScoreRequest{Player: player, Hole: hole, Gross: gross})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/rounds/%s/scores", roundID), bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func storedRound(t *testing.T, db *gorm.DB, id uuid.UUID) models.Round {
	t.Helper()
	var round models.Round
	require.NoError(t, db.First(&round, "id = ?", id).Error)
	return round
}

func TestUpsertScoreMarksRoundCompleted(t *testing.T) {
	db := testDB(t)
	round := seedRound(t, db)
	app := scoresApp(db)

	for _, name := range []string{"Ana", "Ben"} {
		for n := 1; n <= 17; n++ {
			resp := putScore(t, app, round.ID, name, n, 4)
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}
	}
	assert.Equal(t, models.RoundStatusActive, storedRound(t, db, round.ID).Status)

	// One card still open: the round stays active.
	putScore(t, app, round.ID, "Ana", 18, 4)
	assert.Equal(t, models.RoundStatusActive, storedRound(t, db, round.ID).Status)

	// The last score lands: the stored status flips and the returned
	// update reports the round complete.
	resp := putScore(t, app, round.ID, "Ben", 18, 5)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var update LiveUpdate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&update))
	assert.True(t, update.Complete)
	assert.Equal(t, models.RoundStatusCompleted, storedRound(t, db, round.ID).Status)
}

func TestUpsertScoreReplacesExistingRecord(t *testing.T) {
	db := testDB(t)
	round := seedRound(t, db)
	app := scoresApp(db)

	resp := putScore(t, app, round.ID, "Ana", 1, 6)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = putScore(t, app, round.ID, "Ana", 1, 4)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scores []models.HoleScore
	require.NoError(t, db.Find(&scores).Error)
	require.Len(t, scores, 1)
	assert.Equal(t, 4, scores[0].GrossScore)
}

func TestUpsertScoreRejectsBadInput(t *testing.T) {
	db := testDB(t)
	round := seedRound(t, db)
	app := scoresApp(db)

	// Zero is not a golf score.
	resp := putScore(t, app, round.ID, "Ana", 1, 0)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = putScore(t, app, round.ID, "Ana", 19, 4)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = putScore(t, app, round.ID, "Zed", 1, 4)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.HoleScore{}).Count(&count).Error)
	assert.Zero(t, count)
}
