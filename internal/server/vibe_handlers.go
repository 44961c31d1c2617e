// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"vibecheck/internal/cache"
	"vibecheck/internal/models"
	"vibecheck/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizRequest represents the request body for a quiz submission.
type SubmitQuizRequest struct {
	Score int `json:"score"`
}

// GetQuizQuestions handles GET /api/quiz/questions
func (s *Server) GetQuizQuestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"questions": s.vibeService.Questions(),
	})
}

// SubmitQuiz handles POST /api/quiz/submit
// Maps the total score onto a vibe band, stores it as the user's current
// vibe and appends it to their history.
func (s *Server) SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	vibe, err := s.vibeService.SubmitScore(c.UserContext(), userID, req.Score)
	if err != nil {
		return respondServiceError(c, err)
	}

	cache.InvalidateCurrentVibe(c.UserContext(), userID)

	return c.JSON(fiber.Map{
		"success": true,
		"vibe":    vibe,
		"score":   req.Score,
	})
}

// GetMyVibe handles GET /api/vibes/me
func (s *Server) GetMyVibe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return s.respondCurrentVibe(c, userID)
}

// GetUserVibe handles GET /api/users/:id/vibe
func (s *Server) GetUserVibe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.respondCurrentVibe(c, id)
}

func (s *Server) respondCurrentVibe(c *fiber.Ctx, userID uint) error {
	var vibe models.CurrentVibe
	err := cache.Aside(c.UserContext(), cache.CurrentVibeKey(userID), &vibe,
		cache.CurrentVibeTTL, func() error {
			current, err := s.vibeService.CurrentVibe(c.UserContext(), userID)
			if err != nil {
				return err
			}
			vibe = *current
			return nil
		})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"vibe":    vibe,
	})
}

// GetMyVibeHistory handles GET /api/vibes/me/history
func (s *Server) GetMyVibeHistory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	return s.respondVibeHistory(c, userID)
}

// GetUserVibeHistory handles GET /api/users/:id/history
func (s *Server) GetUserVibeHistory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.respondVibeHistory(c, id)
}

func (s *Server) respondVibeHistory(c *fiber.Ctx, userID uint) error {
	page := parsePagination(c, repository.DefaultHistoryLimit)

	history, err := s.vibeService.History(c.UserContext(), userID, page.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"history": history,
	})
}
