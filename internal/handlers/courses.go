// Package handlers contains the HTTP route handler functions for the
// wagering API. Each exported function follows the handler factory pattern:
// it takes its dependencies (usually *gorm.DB) and returns a fiber.Handler,
// so nothing reaches for globals.
//
// This file handles /api/v1/courses — registering and reading course
// reference data. A course's tees and per-hole stroke indexes are the
// ground truth the handicap allocator works from, so they are validated
// strictly on the way in: a stroke index outside 1..18 is rejected here
// rather than corrupting every later settlement.
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-wager/internal/engine"
	"github.com/trentd187/golf-wager/internal/models"
)

// CreateCourseRequest is the JSON body for POST /api/v1/courses.
type CreateCourseRequest struct {
	Name      string       `json:"name"`
	City      string       `json:"city"`
	State     string       `json:"state"`
	HoleCount int          `json:"hole_count"`
	Tees      []TeeRequest `json:"tees"`
}

// TeeRequest is one tee set with its full hole table.
type TeeRequest struct {
	Name   string        `json:"name"`
	Gender string        `json:"gender"` // "mens", "womens", or "unisex"
	Holes  []HoleRequest `json:"holes"`
}

// HoleRequest is one hole's reference data from one tee.
type HoleRequest struct {
	Number      int  `json:"number"`
	Par         int  `json:"par"`
	StrokeIndex int  `json:"stroke_index"`
	Yardage     *int `json:"yardage"`
}

// CourseResponse is the representation sent back to clients.
type CourseResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	City      string        `json:"city"`
	State     string        `json:"state"`
	HoleCount int           `json:"hole_count"`
	Tees      []TeeResponse `json:"tees,omitempty"`
}

type TeeResponse struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Gender string         `json:"gender"`
	Holes  []HoleResponse `json:"holes,omitempty"`
}

type HoleResponse struct {
	Number      int  `json:"number"`
	Par         int  `json:"par"`
	StrokeIndex int  `json:"stroke_index"`
	Yardage     *int `json:"yardage,omitempty"`
}

func (r CreateCourseRequest) validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	holeCount := r.HoleCount
	if holeCount == 0 {
		holeCount = 18
	}
	if holeCount != 9 && holeCount != 18 {
		return fmt.Errorf("hole_count must be 9 or 18")
	}
	if len(r.Tees) == 0 {
		return fmt.Errorf("at least one tee is required")
	}
	for _, tee := range r.Tees {
		if tee.Name == "" {
			return fmt.Errorf("tee name is required")
		}
		switch models.TeeGender(tee.Gender) {
		case models.TeeGenderMens, models.TeeGenderWomens, models.TeeGenderUnisex:
		default:
			return fmt.Errorf("tee %q: gender must be 'mens', 'womens', or 'unisex'", tee.Name)
		}
		if len(tee.Holes) != holeCount {
			return fmt.Errorf("tee %q: expected %d holes, got %d", tee.Name, holeCount, len(tee.Holes))
		}
		seen := make(map[int]bool, len(tee.Holes))
		for _, h := range tee.Holes {
			if h.Number < 1 || h.Number > holeCount {
				return fmt.Errorf("tee %q: hole number %d out of range", tee.Name, h.Number)
			}
			if seen[h.Number] {
				return fmt.Errorf("tee %q: duplicate hole %d", tee.Name, h.Number)
			}
			seen[h.Number] = true
			if h.Par < 3 || h.Par > 6 {
				return fmt.Errorf("tee %q hole %d: par %d out of range", tee.Name, h.Number, h.Par)
			}
			if h.StrokeIndex < engine.MinStrokeIndex || h.StrokeIndex > engine.MaxStrokeIndex {
				return fmt.Errorf("tee %q hole %d: stroke index %d out of range", tee.Name, h.Number, h.StrokeIndex)
			}
		}
	}
	return nil
}

// CreateCourse returns the handler for POST /api/v1/courses. The course and
// all its tees and holes are written in one transaction so a half-loaded
// stroke-index table can never exist.
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := req.validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		holeCount := req.HoleCount
		if holeCount == 0 {
			holeCount = 18
		}

		course := models.Course{
			Name:      req.Name,
			City:      req.City,
			State:     req.State,
			HoleCount: holeCount,
		}
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&course).Error; err != nil {
				return err
			}
			for _, teeReq := range req.Tees {
				tee := models.Tee{
					CourseID: course.ID,
					Name:     teeReq.Name,
					Gender:   models.TeeGender(teeReq.Gender),
				}
				if err := tx.Create(&tee).Error; err != nil {
					return err
				}
				for _, h := range teeReq.Holes {
					hole := models.Hole{
						TeeID:       tee.ID,
						HoleNumber:  h.Number,
						Par:         h.Par,
						StrokeIndex: h.StrokeIndex,
						Yardage:     h.Yardage,
					}
					if err := tx.Create(&hole).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create course"})
		}

		created, err := fetchCourse(db, course.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load course"})
		}
		return c.Status(fiber.StatusCreated).JSON(courseResponse(created, true))
	}
}

// GetCourses returns the handler for GET /api/v1/courses — a flat list
// without hole tables.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		if err := db.Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch courses"})
		}
		response := make([]CourseResponse, 0, len(courses))
		for i := range courses {
			response = append(response, courseResponse(&courses[i], false))
		}
		return c.JSON(response)
	}
}

// GetCourse returns the handler for GET /api/v1/courses/:id with the full
// tee and hole tables.
func GetCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid course ID"})
		}
		course, err := fetchCourse(db, id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "course not found"})
		}
		return c.JSON(courseResponse(course, true))
	}
}

func fetchCourse(db *gorm.DB, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := db.Preload("Tees.Holes").First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func courseResponse(course *models.Course, withTees bool) CourseResponse {
	resp := CourseResponse{
		ID:        course.ID.String(),
		Name:      course.Name,
		City:      course.City,
		State:     course.State,
		HoleCount: course.HoleCount,
	}
	if !withTees {
		return resp
	}
	for _, tee := range course.Tees {
		tr := TeeResponse{
			ID:     tee.ID.String(),
			Name:   tee.Name,
			Gender: string(tee.Gender),
		}
		for _, h := range tee.Holes {
			tr.Holes = append(tr.Holes, HoleResponse{
				Number:      h.HoleNumber,
				Par:         h.Par,
				StrokeIndex: h.StrokeIndex,
				Yardage:     h.Yardage,
			})
		}
		resp.Tees = append(resp.Tees, tr)
	}
	return resp
}
