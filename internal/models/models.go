// Package models defines the data structures that map to database tables.
// GORM uses these structs to generate SQL and map rows back to Go values; the
// struct tags tell it column types, constraints and relationships.
//
// The data model covers the inputs of the wagering engine only:
//   - Courses carry Tees, and each Tee carries per-hole reference data
//     (par, stroke index) — immutable once loaded
//   - A Round fixes the players, their handicaps and tees, and the betting
//     configuration for one outing
//   - HoleScores record raw gross strokes as they are entered
//
// Nothing derived is stored. Net scores, standings and money balances are
// recomputed by internal/engine from these rows on every request, so there
// is no stored running total that can drift out of sync with the scores.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IDs are assigned application-side in BeforeCreate hooks rather than by a
// database default, so the models work against any database GORM can open
// (the Postgres schema keeps gen_random_uuid() as a backstop).
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// --- Enums ---
// Named string types plus constants stand in for enums: type-safe in Go,
// human-readable in the database.

// TeeGender indicates which gender a set of tees is rated for. Courses rate
// tee boxes separately because the distances differ.
type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex"
)

// RoundStatus tracks the lifecycle of a round.
type RoundStatus string

const (
	RoundStatusActive    RoundStatus = "active"    // scores are being entered
	RoundStatusCompleted RoundStatus = "completed" // every card is full; final settlement is available
)

// --- Models ---

// Course represents a golf course. Its tees and holes are reference data:
// written when the course is registered, read-only afterwards.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:''"`
	HoleCount int       `gorm:"not null;default:18"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tees      []Tee `gorm:"foreignKey:CourseID"`
}

func (c *Course) BeforeCreate(*gorm.DB) error { assignID(&c.ID); return nil }

// Tee is one set of tee boxes on a course (e.g., "Blue", "White", "Red").
// Stroke indexes are stored per tee because hole difficulty rank can differ
// between tee sets on the same course.
type Tee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID uuid.UUID `gorm:"type:uuid;not null"`
	Course   Course    `gorm:"foreignKey:CourseID"`
	Name     string    `gorm:"not null"` // e.g., "Blue", "White", "Red"
	Gender   TeeGender `gorm:"type:tee_gender;not null"`
	Holes    []Hole    `gorm:"foreignKey:TeeID"`
}

func (t *Tee) BeforeCreate(*gorm.DB) error { assignID(&t.ID); return nil }

// Hole stores per-hole reference data for one tee set: par and the stroke
// index (1 = hardest hole, receives the first handicap stroke). The unique
// index prevents two rows for the same hole on the same tee.
type Hole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tee_hole"`
	Tee         Tee       `gorm:"foreignKey:TeeID"`
	HoleNumber  int       `gorm:"not null;uniqueIndex:idx_tee_hole"` // 1-18
	Par         int       `gorm:"not null"`
	StrokeIndex int       `gorm:"not null"` // 1-18, 1 = hardest
	Yardage     *int      // optional; some courses don't publish yardages
}

func (h *Hole) BeforeCreate(*gorm.DB) error { assignID(&h.ID); return nil }

// Round is one outing: the course, the players, and the betting
// configuration, all fixed at creation. The betting columns are an explicit
// enumerated record — validated once when the round is created, never
// re-interpreted from loose flags afterwards.
//
// Foursomes, presses and carryovers are offered by the round setup screen
// and stored here, but no settlement rule is applied to them yet.
type Round struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID   `gorm:"type:uuid;not null"`
	Course    Course      `gorm:"foreignKey:CourseID"`
	Name      string      `gorm:"not null"`
	Status    RoundStatus `gorm:"type:round_status;not null;default:'active'"`
	PlayedOn  time.Time   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Active game formats.
	StrokePlay bool `gorm:"not null;default:false"`
	MatchPlay  bool `gorm:"not null;default:false"`

	// Side-bet toggles and the single-hole unit.
	Skins       bool            `gorm:"not null;default:false"`
	Oyeses      bool            `gorm:"not null;default:false"`
	Foursomes   bool            `gorm:"not null;default:false"`
	Presses     bool            `gorm:"not null;default:false"`
	Carryovers  bool            `gorm:"not null;default:false"`
	UnitPerHole decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	// Segment bets. A segment is active when its flag is set; the stake
	// columns hold the per-format amounts for that segment.
	FrontNine      bool            `gorm:"not null;default:false"`
	BackNine       bool            `gorm:"not null;default:false"`
	Total          bool            `gorm:"not null;default:false"`
	FrontStrokeBet decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	FrontMatchBet  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BackStrokeBet  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BackMatchBet   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalStrokeBet decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalMatchBet  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	Players []RoundPlayer `gorm:"foreignKey:RoundID"`
}

func (r *Round) BeforeCreate(*gorm.DB) error { assignID(&r.ID); return nil }

// RoundPlayer is one participant in a round: display name, the course
// handicap they play off for this round (0-54, fixed for the round's
// settlement), and the tee set they play from. The unique index keeps a name
// from appearing twice in one round.
type RoundPlayer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoundID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_name"`
	Round          Round     `gorm:"foreignKey:RoundID"`
	Name           string    `gorm:"not null;uniqueIndex:idx_round_player_name"`
	CourseHandicap int       `gorm:"not null"`
	TeeID          uuid.UUID `gorm:"type:uuid;not null"`
	Tee            Tee       `gorm:"foreignKey:TeeID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Scores []HoleScore `gorm:"foreignKey:RoundPlayerID"`
}

func (p *RoundPlayer) BeforeCreate(*gorm.DB) error { assignID(&p.ID); return nil }

// HoleScore records the gross strokes a player took on one hole. The unique
// index enforces at most one record per player per hole; an edit replaces
// the whole record. Only gross is stored — net is derived by the engine from
// the player's handicap and the hole's stroke index, so "not yet played"
// simply means no row exists, never a zero.
type HoleScore struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	RoundPlayerID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_hole"`
	RoundPlayer   RoundPlayer `gorm:"foreignKey:RoundPlayerID"`
	HoleNumber    int         `gorm:"not null;uniqueIndex:idx_round_player_hole"` // 1-18
	GrossScore    int         `gorm:"not null"`
	EnteredAt     time.Time   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`
}

func (s *HoleScore) BeforeCreate(*gorm.DB) error { assignID(&s.ID); return nil }
