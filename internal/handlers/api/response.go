package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess wraps data as {"status":"ok","data":...}. Predictions skip
// the envelope and are written bare.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError writes {"status":"error","error":message}.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}
