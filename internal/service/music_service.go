package service

import (
	"context"
	"time"

	"vibecheck/internal/models"
	"vibecheck/internal/music"
	"vibecheck/internal/notifications"
	"vibecheck/internal/repository"
)

// MusicService pairs the playlist catalog with the loved-playlist store.
// The store behind playlistRepo is chosen at startup: the database when the
// loved_playlists table exists, the local file store otherwise.
type MusicService struct {
	playlistRepo repository.PlaylistRepository
	catalog      *music.Catalog
	prefs        *music.Prefs // nil disables preference tracking
	notifier     *notifications.Notifier
}

func NewMusicService(
	playlistRepo repository.PlaylistRepository,
	catalog *music.Catalog,
	prefs *music.Prefs,
	notifier *notifications.Notifier,
) *MusicService {
	return &MusicService{
		playlistRepo: playlistRepo,
		catalog:      catalog,
		prefs:        prefs,
		notifier:     notifier,
	}
}

// PlaylistsForVibe returns the curated pool for a vibe label.
func (s *MusicService) PlaylistsForVibe(vibe string) []music.Playlist {
	return s.catalog.PlaylistsForVibe(vibe)
}

// PlaylistForVibe picks one playlist for the vibe, flavored by time of day.
// Playlists the user has liked for this vibe win over the general pool, and
// a re-pick avoids serving the same playlist twice in a row when the pool
// allows it. The pick is remembered as last viewed. Alongside the pick it
// returns the time context and the mood names attached to it, which the
// client shows as the pick's framing.
func (s *MusicService) PlaylistForVibe(vibe string) (*music.Playlist, string, []string) {
	pick, timeContext := s.catalog.ContextualPlaylist(vibe, time.Now())
	moods := s.catalog.ContextualNames(timeContext)
	if pick == nil || s.prefs == nil {
		return pick, timeContext, moods
	}

	if preferred, err := s.prefs.PreferredForVibe(vibe); err == nil && len(preferred) > 0 {
		if fav := s.catalog.PlaylistByID(vibe, preferred[len(preferred)-1]); fav != nil {
			pick = fav
		}
	}

	if last, err := s.prefs.LastViewed(vibe); err == nil && last != nil && last.ID == pick.ID {
		if alt := s.catalog.RandomPlaylistForVibe(vibe); alt != nil && alt.ID != last.ID {
			pick = alt
		}
	}

	_ = s.prefs.SetLastViewed(vibe, *pick)
	return pick, timeContext, moods
}

// TrackInteraction appends a playlist touch to the preference log.
func (s *MusicService) TrackInteraction(playlistID, vibe, action string) (*music.Interaction, error) {
	if playlistID == "" {
		return nil, models.NewValidationError("Playlist ID is required")
	}
	switch action {
	case music.ActionLike, music.ActionSkip, music.ActionSave, music.ActionShare:
	default:
		return nil, models.NewValidationError("Unknown interaction action")
	}
	if s.prefs == nil {
		return nil, models.NewValidationError("Preference tracking is not available")
	}

	interaction, err := s.prefs.Track(playlistID, vibe, action)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &interaction, nil
}

// VibeCategories lists every vibe label with a playlist pool.
func (s *MusicService) VibeCategories() []string {
	return s.catalog.VibeCategories()
}

// LovePlaylistInput carries the playlist fields the client knows.
type LovePlaylistInput struct {
	UserID       uint
	PlaylistID   string
	Name         string
	Description  string
	ImageURL     string
	VibeCategory string
}

// LovePlaylist records the love. Loving a playlist twice is a success that
// changes nothing.
func (s *MusicService) LovePlaylist(ctx context.Context, in LovePlaylistInput) error {
	if in.PlaylistID == "" {
		return models.NewValidationError("Playlist ID is required")
	}

	created, err := s.playlistRepo.Love(ctx, &models.LovedPlaylist{
		UserID:              in.UserID,
		PlaylistID:          in.PlaylistID,
		PlaylistName:        in.Name,
		PlaylistDescription: in.Description,
		PlaylistImageURL:    in.ImageURL,
		VibeCategory:        in.VibeCategory,
	})
	if err != nil {
		return err
	}

	if created {
		_ = s.notifier.PublishFeed(ctx, notifications.FeedEvent{
			Type:      notifications.EventPlaylistLoved,
			UserID:    in.UserID,
			Playlist:  in.Name,
			Vibe:      in.VibeCategory,
			Timestamp: time.Now(),
		})
	}
	return nil
}

// UnlovePlaylist removes the love, succeeding even when it was never there.
func (s *MusicService) UnlovePlaylist(ctx context.Context, userID uint, playlistID string) error {
	return s.playlistRepo.Unlove(ctx, userID, playlistID)
}

// ToggleLove flips the love state and reports the resulting state.
func (s *MusicService) ToggleLove(ctx context.Context, in LovePlaylistInput) (bool, error) {
	loved, err := s.playlistRepo.IsLoved(ctx, in.UserID, in.PlaylistID)
	if err != nil {
		return false, err
	}
	if loved {
		return false, s.UnlovePlaylist(ctx, in.UserID, in.PlaylistID)
	}
	return true, s.LovePlaylist(ctx, in)
}

// IsLoved reports whether the user loves the playlist.
func (s *MusicService) IsLoved(ctx context.Context, userID uint, playlistID string) (bool, error) {
	return s.playlistRepo.IsLoved(ctx, userID, playlistID)
}

// LovedPlaylists returns the user's loved playlists, newest first.
func (s *MusicService) LovedPlaylists(ctx context.Context, userID uint) ([]models.LovedPlaylist, error) {
	return s.playlistRepo.ListLoved(ctx, userID)
}
