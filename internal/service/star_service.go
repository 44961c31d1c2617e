package service

import (
	"context"
	"time"

	"vibecheck/internal/models"
	"vibecheck/internal/notifications"
	"vibecheck/internal/observability"
	"vibecheck/internal/repository"
)

// StarService provides the star-graph business logic.
type StarService struct {
	starRepo repository.StarRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

func NewStarService(
	starRepo repository.StarRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *StarService {
	return &StarService{
		starRepo: starRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// ToggleStar flips the star edge toward the target and reports the new
// state. Starring yourself is rejected, and the target must exist.
func (s *StarService) ToggleStar(ctx context.Context, userID, targetID uint) (bool, error) {
	if userID == targetID {
		return false, models.NewValidationError("Cannot star yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	starred, err := s.starRepo.Toggle(ctx, userID, targetID)
	if err != nil {
		return false, err
	}

	outcome := "unstarred"
	eventType := notifications.EventUserUnstarred
	if starred {
		outcome = "starred"
		eventType = notifications.EventUserStarred
	}
	observability.StarToggles.WithLabelValues(outcome).Inc()

	// Only the starred user hears about it; the community feed stays quiet.
	_ = s.notifier.PublishUser(ctx, targetID, notifications.FeedEvent{
		Type:      eventType,
		UserID:    userID,
		TargetID:  targetID,
		Timestamp: time.Now(),
	})

	return starred, nil
}

// IsStarred reports whether the user has starred the target.
func (s *StarService) IsStarred(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.starRepo.IsStarred(ctx, userID, targetID)
}

// StarredUsers returns the user's starred accounts with their current
// vibes, in the order the stars were given.
func (s *StarService) StarredUsers(ctx context.Context, userID uint) ([]models.StarredUser, error) {
	return s.starRepo.ListStarred(ctx, userID)
}
