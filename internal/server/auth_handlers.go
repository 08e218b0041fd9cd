package server

import (
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/middleware"
	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SignInAnonymously handles POST /api/auth/anonymous. Every call mints a new identity;
// clients keep the token to stay the same user.
func (s *Server) SignInAnonymously(c *fiber.Ctx) error {
	userID := uuid.NewString()
	ttl := time.Duration(s.config.TokenTTLHours) * time.Hour

	token, expiresAt, err := middleware.IssueToken(s.config.JWTSecret, userID, ttl)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":      token,
		"user_id":    userID,
		"expires_at": expiresAt.UTC(),
	})
}
