// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"time"

	"vibecheck/internal/cache"
	"vibecheck/internal/models"
	"vibecheck/internal/notifications"
	"vibecheck/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest represents the request body for profile updates.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Summary(),
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   userID,
		Username: req.Username,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	cache.InvalidateUser(c.UserContext(), userID)

	if s.sessions != nil {
		if err := s.sessions.Update(user); err != nil {
			return respondServiceError(c, err)
		}
	}

	s.notifier.PublishFeed(c.UserContext(), notifications.FeedEvent{
		Type:      notifications.EventProfileUpdated,
		UserID:    user.ID,
		Username:  user.Username,
		Timestamp: time.Now(),
	})

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Summary(),
	})
}

// GetMyFlags handles GET /api/users/me/flags
// Percentage rollouts evaluate per user, so each client gets its own view.
func (s *Server) GetMyFlags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	return c.JSON(fiber.Map{
		"success": true,
		"flags":   s.flags.Snapshot(userID),
	})
}

// GetAllUsers handles GET /api/users
// Each entry carries the user's current vibe as a zero-or-one element slice.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"success": false,
				"error":   "Request timeout",
			})
		}
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Summary(),
	})
}

// GetUserCached handles GET /api/users/:id/cached
// Demonstrates the cache-aside path: Redis first, store on miss.
func (s *Server) GetUserCached(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var summary models.UserSummary
	err = cache.Aside(c.UserContext(), cache.UserKey(id), &summary, cache.UserTTL, func() error {
		user, err := s.userService.GetUserByID(c.UserContext(), id)
		if err != nil {
			return err
		}
		summary = user.Summary()
		return nil
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    summary,
	})
}
