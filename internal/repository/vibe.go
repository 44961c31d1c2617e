package repository

import (
	"context"
	"errors"

	"vibecheck/internal/cache"
	"vibecheck/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type vibeRepository struct {
	db *gorm.DB
}

// NewVibeRepository returns a VibeRepository backed by the row store.
func NewVibeRepository(db *gorm.DB) VibeRepository {
	return &vibeRepository{db: db}
}

// SubmitResult upserts current_vibes keyed on user_id and appends to
// vibe_history in a single transaction, so the current vibe can never
// diverge from the newest history entry.
func (r *vibeRepository) SubmitResult(ctx context.Context, userID uint, vibe string, score int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current := models.CurrentVibe{UserID: userID, Vibe: vibe, Score: score}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"vibe", "score", "updated_at"}),
		}).Create(&current).Error; err != nil {
			return err
		}

		entry := models.VibeHistoryEntry{UserID: userID, Vibe: vibe, Score: score}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateCurrentVibe(ctx, userID)
	return nil
}

func (r *vibeRepository) GetCurrent(ctx context.Context, userID uint) (*models.CurrentVibe, error) {
	var vibe models.CurrentVibe
	key := cache.CurrentVibeKey(userID)

	err := cache.Aside(ctx, key, &vibe, cache.CurrentVibeTTL, func() error {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vibe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("No current vibe found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vibe, nil
}

func (r *vibeRepository) GetHistory(ctx context.Context, userID uint, limit int) ([]models.VibeHistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var history []models.VibeHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&history).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return history, nil
}
