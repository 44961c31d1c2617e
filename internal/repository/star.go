package repository

import (
	"context"

	"vibecheck/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type starRepository struct {
	db *gorm.DB
}

// NewStarRepository returns a StarRepository backed by the row store.
func NewStarRepository(db *gorm.DB) StarRepository {
	return &starRepository{db: db}
}

// Toggle is an atomic delete-or-insert keyed on the unique edge pair, not a
// check-then-act: concurrent identical toggles cannot produce duplicate
// edges or phantom deletes.
func (r *starRepository) Toggle(ctx context.Context, userID, targetID uint) (bool, error) {
	starred := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND starred_user_id = ?", userID, targetID).
			Delete(&models.StarEdge{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		edge := models.StarEdge{UserID: userID, StarredUserID: targetID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return err
		}
		starred = true
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return starred, nil
}

func (r *starRepository) IsStarred(ctx context.Context, userID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StarEdge{}).
		Where("user_id = ? AND starred_user_id = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListStarred reconciles edges, users and current vibes client-side. Three
// fetches plus hash-joins keyed on the target id; the result preserves edge
// order and keeps the `users`/`current_vibes` shape views expect.
func (r *starRepository) ListStarred(ctx context.Context, userID uint) ([]models.StarredUser, error) {
	var edges []models.StarEdge
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(edges) == 0 {
		return []models.StarredUser{}, nil
	}

	targetIDs := make([]uint, 0, len(edges))
	for _, e := range edges {
		targetIDs = append(targetIDs, e.StarredUserID)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", targetIDs).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var vibes []models.CurrentVibe
	if err := r.db.WithContext(ctx).Where("user_id IN ?", targetIDs).Find(&vibes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	usersByID := make(map[uint]models.UserSummary, len(users))
	for _, u := range users {
		usersByID[u.ID] = u.Summary()
	}
	vibesByUser := make(map[uint]models.CurrentVibe, len(vibes))
	for _, v := range vibes {
		vibesByUser[v.UserID] = v
	}

	out := make([]models.StarredUser, 0, len(edges))
	for _, e := range edges {
		row := models.StarredUser{
			StarredUserID: e.StarredUserID,
			CurrentVibes:  []models.CurrentVibe{},
		}
		if u, ok := usersByID[e.StarredUserID]; ok {
			row.Users = &u
		}
		if v, ok := vibesByUser[e.StarredUserID]; ok {
			row.CurrentVibes = []models.CurrentVibe{v}
		}
		out = append(out, row)
	}
	return out, nil
}
