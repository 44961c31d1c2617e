package service

import (
	"context"
	"time"

	"vibecheck/internal/models"
	"vibecheck/internal/notifications"
	"vibecheck/internal/observability"
	"vibecheck/internal/quiz"
	"vibecheck/internal/repository"
)

// VibeService owns quiz scoring and the vibe records it produces.
type VibeService struct {
	vibeRepo repository.VibeRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

func NewVibeService(
	vibeRepo repository.VibeRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *VibeService {
	return &VibeService{
		vibeRepo: vibeRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Questions returns the quiz content in presentation order.
func (s *VibeService) Questions() []quiz.Question {
	return quiz.Questions
}

// SubmitScore maps a total quiz score to its vibe band, stores it, and
// announces the result on the feed. The stored current vibe and the newest
// history entry always agree; the repository writes them as one unit.
func (s *VibeService) SubmitScore(ctx context.Context, userID uint, totalScore int) (quiz.Vibe, error) {
	vibe := quiz.VibeFromScore(totalScore)

	if err := s.vibeRepo.SubmitResult(ctx, userID, vibe.Vibe, totalScore); err != nil {
		return quiz.Vibe{}, err
	}
	observability.QuizSubmissions.WithLabelValues(vibe.Vibe).Inc()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		score := totalScore
		_ = s.notifier.PublishFeed(ctx, notifications.FeedEvent{
			Type:      notifications.EventVibeUpdated,
			UserID:    userID,
			Username:  user.Username,
			Vibe:      vibe.Vibe,
			Score:     &score,
			Timestamp: time.Now(),
		})
	}

	return vibe, nil
}

// CurrentVibe returns the user's latest quiz result.
func (s *VibeService) CurrentVibe(ctx context.Context, userID uint) (*models.CurrentVibe, error) {
	return s.vibeRepo.GetCurrent(ctx, userID)
}

// History returns the user's past quiz results, newest first.
func (s *VibeService) History(ctx context.Context, userID uint, limit int) ([]models.VibeHistoryEntry, error) {
	return s.vibeRepo.GetHistory(ctx, userID, limit)
}
