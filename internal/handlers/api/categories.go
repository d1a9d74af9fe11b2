package api

import (
	"github.com/gofiber/fiber/v3"

	"newsverify/internal/prediction"
)

// Categories lists the truthfulness scale from pants-fire to true with its
// display metadata.
func Categories(c fiber.Ctx) error {
	return jsonSuccess(c, prediction.Scale())
}

// NotFound answers unknown /api paths in JSON instead of the SPA page.
func NotFound(c fiber.Ctx) error {
	return jsonError(c, fiber.StatusNotFound, "not found")
}
