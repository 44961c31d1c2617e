// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleStar handles POST /api/stars/:userId/toggle
func (s *Server) ToggleStar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	starred, err := s.starService.ToggleStar(c.UserContext(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"starred": starred,
	})
}

// GetStarStatus handles GET /api/stars/:userId/status
func (s *Server) GetStarStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	starred, err := s.starService.IsStarred(c.UserContext(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"starred": starred,
	})
}

// GetStarredUsers handles GET /api/stars
// Each entry joins the starred user's profile with their current vibe; the
// vibe is a zero-or-one element slice and the profile is nil when the
// starred account was deleted.
func (s *Server) GetStarredUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	starred, err := s.starService.StarredUsers(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"starred": starred,
	})
}
