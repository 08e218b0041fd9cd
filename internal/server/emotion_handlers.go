package server

import (
	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/gofiber/fiber/v2"
)

type emotionRequest struct {
	Emotion string       `json:"emotion"`
	Color   models.Color `json:"color"`
}

// GetEmotions handles GET /api/emotions: the seven most recent records and the
// recommendation for the latest one.
func (s *Server) GetEmotions(c *fiber.Ctx) error {
	return c.JSON(s.data.Home(c.UserContext(), currentUserID(c)))
}

// GetWeeklyEmotions handles GET /api/emotions/weekly
func (s *Server) GetWeeklyEmotions(c *fiber.Ctx) error {
	return c.JSON(s.data.FetchWeeklyEmotionRecords(c.UserContext(), currentUserID(c)))
}

// SaveEmotion handles POST /api/emotions
func (s *Server) SaveEmotion(c *fiber.Ctx) error {
	var req emotionRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := s.data.SaveEmotionRecord(c.UserContext(), currentUserID(c), req.Emotion, req.Color); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"emotion": req.Emotion,
		"color":   req.Color,
	})
}
