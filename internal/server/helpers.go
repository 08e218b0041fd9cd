package server

import (
	"github.com/jamiebhpark/MentalHealthApp/internal/middleware"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError answers with the status that matches err's code.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusFor(err), err)
}

// parseBody decodes the request body into dest. On failure it writes a 400 and
// returns false; the handler should then return nil.
func parseBody(c *fiber.Ctx, dest any) bool {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return false
	}
	return true
}

func currentUserID(c *fiber.Ctx) string {
	return middleware.UserID(c)
}
