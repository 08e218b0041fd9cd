package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.data.Summary(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddXP handles POST /api/profile/xp
func (s *Server) AddXP(c *fiber.Ctx) error {
	var req struct {
		Amount int `json:"amount"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	ctx := c.UserContext()
	userID := currentUserID(c)
	if err := s.data.UpdateUserXP(ctx, userID, req.Amount); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"xp": s.data.FetchUserXP(ctx, userID)})
}

// AwardBadge handles POST /api/profile/badges
func (s *Server) AwardBadge(c *fiber.Ctx) error {
	var req struct {
		Badge string `json:"badge"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	ctx := c.UserContext()
	userID := currentUserID(c)
	if err := s.data.AwardBadgeToUser(ctx, userID, req.Badge); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"badges": s.data.FetchUserBadges(ctx, userID)})
}

// GetFeatures handles GET /api/profile/features: the flags as they apply to the caller.
func (s *Server) GetFeatures(c *fiber.Ctx) error {
	return c.JSON(s.featureFlags.Snapshot(currentUserID(c)))
}
