package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health. Deliberately lightweight — no database
// query — so load balancers and container probes get a fast answer.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
