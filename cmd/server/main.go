// cmd/server/main.go
// Entry point for the golf wagering API server: the HTTP surface around the
// scoring and settlement engine in internal/engine. The server stores course
// reference data, rounds and raw scores; every standing, side-bet outcome
// and money balance is recomputed from those rows on demand.
package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trentd187/golf-wager/internal/config"
	"github.com/trentd187/golf-wager/internal/database"
	"github.com/trentd187/golf-wager/internal/handlers"
	"github.com/trentd187/golf-wager/internal/logger"
	"github.com/trentd187/golf-wager/internal/websocket"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// The hub fans recomputed round results out to live watchers.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Golf Wager API",
	})

	// Global middleware: request logging, panic recovery, CORS for the
	// mobile app during development.
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api/v1")

	// Course reference data: the stroke-index tables every handicap
	// allocation resolves against.
	api.Post("/courses", handlers.CreateCourse(db))
	api.Get("/courses", handlers.GetCourses(db))
	api.Get("/courses/:id", handlers.GetCourse(db))

	// Rounds: players, handicaps, tees and the betting configuration,
	// validated once at creation.
	api.Post("/rounds", handlers.CreateRound(db))
	api.Get("/rounds/:id", handlers.GetRound(db))

	// Score entry. Each accepted score replaces the whole record and
	// triggers a full recompute broadcast to watchers.
	api.Put("/rounds/:id/scores", handlers.UpsertScore(db, hub))

	// Computed views. Leaderboard and match standings work on partial
	// data; settlement and balances refuse to move money until the
	// relevant scores are complete.
	api.Get("/rounds/:id/leaderboard", handlers.GetLeaderboard(db))
	api.Get("/rounds/:id/match", handlers.GetMatchStandings(db))
	api.Get("/rounds/:id/holes/:hole/sidebets", handlers.GetHoleSideBets(db))
	api.Get("/rounds/:id/settlement", handlers.GetSegmentSettlement(db))
	api.Get("/rounds/:id/balances", handlers.GetBalances(db))

	// Live results stream.
	app.Use("/ws", handlers.RequireWebSocketUpgrade)
	app.Get("/ws/rounds/:id", handlers.RoundLive(hub))

	log.WithField("port", cfg.Port).Info("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
