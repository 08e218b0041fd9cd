package server

import (
	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	return c.JSON(s.data.FetchPosts(c.UserContext()))
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Emotion string       `json:"emotion"`
		Message string       `json:"message"`
		Color   models.Color `json:"color"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	post, err := s.data.PublishPost(c.UserContext(), currentUserID(c), req.Emotion, req.Message, req.Color)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	if err := s.data.AddLikeToPost(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CommentOnPost handles POST /api/posts/:id/comments
func (s *Server) CommentOnPost(c *fiber.Ctx) error {
	var req struct {
		Comment string `json:"comment"`
	}
	if !parseBody(c, &req) {
		return nil
	}

	if err := s.data.AddCommentToPost(c.UserContext(), c.Params("id"), req.Comment); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
