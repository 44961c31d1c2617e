// Package repository implements the data access layer for the application.
//
// Every operation is a boundary: store errors never leave un-normalized.
// Callers receive either domain values or a *models.AppError.
package repository

import (
	"context"

	"vibecheck/internal/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByUsername returns (nil, nil) on no match, like GetByCredentials;
	// signup uses it to report a taken username before touching the
	// constraint.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByCredentials looks up a user matching both fields exactly.
	// Returns (nil, nil) on no match; the caller owns the generic
	// invalid-credentials message so user enumeration stays impossible.
	GetByCredentials(ctx context.Context, username, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, updates ProfileUpdates) (*models.User, error)
	// ListWithVibes returns all users ordered by created_at descending, each
	// decorated with their current vibe (zero or one entries).
	ListWithVibes(ctx context.Context) ([]models.UserWithVibe, error)
}

// ProfileUpdates carries the optional profile fields; nil means unchanged.
type ProfileUpdates struct {
	Username *string
	Avatar   *string
}

// VibeRepository defines persistence operations for quiz results.
type VibeRepository interface {
	// SubmitResult replaces the user's current vibe and appends a history
	// entry as one atomic unit: either both writes land or neither does.
	SubmitResult(ctx context.Context, userID uint, vibe string, score int) error
	GetCurrent(ctx context.Context, userID uint) (*models.CurrentVibe, error)
	// GetHistory returns the newest entries first; limit <= 0 falls back to
	// DefaultHistoryLimit.
	GetHistory(ctx context.Context, userID uint, limit int) ([]models.VibeHistoryEntry, error)
}

// DefaultHistoryLimit caps history reads when the caller does not ask for a
// specific window.
const DefaultHistoryLimit = 10

// StarRepository defines persistence operations for the star graph.
type StarRepository interface {
	// Toggle flips the edge (userID -> targetID) and reports the resulting
	// state: true when the edge now exists.
	Toggle(ctx context.Context, userID, targetID uint) (bool, error)
	IsStarred(ctx context.Context, userID, targetID uint) (bool, error)
	// ListStarred returns the reconciled starred rows in edge order.
	ListStarred(ctx context.Context, userID uint) ([]models.StarredUser, error)
}

// PlaylistRepository is the PlaylistStore capability: both the row-store and
// the local-store implementations satisfy it, and the serving one is picked
// once at construction time by a table probe.
type PlaylistRepository interface {
	// Love records the playlist; created is false when it was already loved,
	// which is a success, not an error.
	Love(ctx context.Context, p *models.LovedPlaylist) (created bool, err error)
	Unlove(ctx context.Context, userID uint, playlistID string) error
	IsLoved(ctx context.Context, userID uint, playlistID string) (bool, error)
	ListLoved(ctx context.Context, userID uint) ([]models.LovedPlaylist, error)
}
