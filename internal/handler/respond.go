package handler

import (
	"go-stock-management/internal/apperr"
	"go-stock-management/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actor pulls the acting user placed by the auth middleware. Nil when a
// route runs without authentication.
func actor(c *fiber.Ctx) *model.ActingUser {
	if a, ok := c.Locals("actor").(*model.ActingUser); ok {
		return a
	}
	return nil
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case apperr.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case apperr.IsInsufficientStock(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
