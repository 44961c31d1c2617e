// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"vibecheck/internal/models"
	"vibecheck/internal/music"
	"vibecheck/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LovePlaylistRequest represents the request body for loving a playlist.
type LovePlaylistRequest struct {
	PlaylistID   string `json:"playlistId"`
	Name         string `json:"playlistName"`
	Description  string `json:"playlistDescription"`
	ImageURL     string `json:"playlistImage"`
	VibeCategory string `json:"vibeCategory"`
}

// GetVibeCategories handles GET /api/music/vibes
func (s *Server) GetVibeCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"categories": s.musicService.VibeCategories(),
	})
}

// GetPlaylistsForVibe handles GET /api/music/vibes/:vibe/playlists
func (s *Server) GetPlaylistsForVibe(c *fiber.Ctx) error {
	label := c.Params("vibe")
	if label == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Vibe category is required"))
	}

	playlists := s.musicService.PlaylistsForVibe(label)
	if playlists == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Unknown vibe category"))
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"vibe":      label,
		"playlists": playlists,
	})
}

// PickPlaylistForVibe handles GET /api/music/vibes/:vibe/pick
// Returns one playlist from the vibe's pool, flavored by time of day, with
// its Spotify URLs ready for the client.
func (s *Server) PickPlaylistForVibe(c *fiber.Ctx) error {
	label := c.Params("vibe")
	if label == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Vibe category is required"))
	}

	pick, timeContext, moods := s.musicService.PlaylistForVibe(label)
	if pick == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Unknown vibe category"))
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"vibe":          label,
		"time_context":  timeContext,
		"context_moods": moods,
		"playlist":      pick,
		"spotify_url":   music.SpotifyPlaylistURL(pick.ID),
		"embed_url":     music.SpotifyEmbedURL(pick.ID),
	})
}

// TrackInteractionRequest represents the request body for interaction tracking.
type TrackInteractionRequest struct {
	PlaylistID string `json:"playlistId"`
	Vibe       string `json:"vibeName"`
	Action     string `json:"action"`
}

// TrackInteraction handles POST /api/music/interactions
// Records a playlist touch (like, skip, save, share) that biases later picks.
func (s *Server) TrackInteraction(c *fiber.Ctx) error {
	var req TrackInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	interaction, err := s.musicService.TrackInteraction(req.PlaylistID, req.Vibe, req.Action)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"interaction": interaction,
	})
}

// GetLovedPlaylists handles GET /api/music/loved
func (s *Server) GetLovedPlaylists(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	playlists, err := s.musicService.LovedPlaylists(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"playlists": playlists,
	})
}

// LovePlaylist handles POST /api/music/loved
// Loving an already-loved playlist succeeds without creating a duplicate.
func (s *Server) LovePlaylist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req LovePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.musicService.LovePlaylist(c.UserContext(), service.LovePlaylistInput{
		UserID:       userID,
		PlaylistID:   req.PlaylistID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		VibeCategory: req.VibeCategory,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"loved":   true,
	})
}

// ToggleLovePlaylist handles POST /api/music/loved/:playlistId/toggle
func (s *Server) ToggleLovePlaylist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	playlistID := c.Params("playlistId")
	if playlistID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid playlist ID"))
	}

	var req LovePlaylistRequest
	// Body is optional on toggle; metadata is only needed when the toggle
	// results in a love.
	_ = c.BodyParser(&req)

	loved, err := s.musicService.ToggleLove(c.UserContext(), service.LovePlaylistInput{
		UserID:       userID,
		PlaylistID:   playlistID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		VibeCategory: req.VibeCategory,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"loved":   loved,
	})
}

// GetLoveStatus handles GET /api/music/loved/:playlistId/status
func (s *Server) GetLoveStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	playlistID := c.Params("playlistId")
	if playlistID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid playlist ID"))
	}

	loved, err := s.musicService.IsLoved(c.UserContext(), userID, playlistID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"loved":   loved,
	})
}

// UnlovePlaylist handles DELETE /api/music/loved/:playlistId
func (s *Server) UnlovePlaylist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	playlistID := c.Params("playlistId")
	if playlistID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid playlist ID"))
	}

	if err := s.musicService.UnlovePlaylist(c.UserContext(), userID, playlistID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"loved":   false,
	})
}
