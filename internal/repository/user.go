package repository

import (
	"context"
	"errors"

	"vibecheck/internal/cache"
	"vibecheck/internal/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a UserRepository backed by the row store.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, updates ProfileUpdates) (*models.User, error) {
	patch := map[string]any{}
	if updates.Username != nil {
		patch["username"] = *updates.Username
	}
	if updates.Avatar != nil {
		patch["avatar"] = *updates.Avatar
	}

	if len(patch) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(patch)
		if res.Error != nil {
			if isUniqueConstraintError(res.Error) {
				return nil, models.NewConflictError("Username already exists")
			}
			return nil, models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, models.NewNotFoundError("User not found")
		}
		cache.InvalidateUser(ctx, id)
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) ListWithVibes(ctx context.Context) ([]models.UserWithVibe, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var vibes []models.CurrentVibe
	if err := r.db.WithContext(ctx).Find(&vibes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// Hash-join instead of per-user lookups; current_vibes is unique on
	// user_id so a plain map suffices.
	byUser := make(map[uint]models.CurrentVibe, len(vibes))
	for _, v := range vibes {
		byUser[v.UserID] = v
	}

	out := make([]models.UserWithVibe, 0, len(users))
	for _, u := range users {
		entry := models.UserWithVibe{User: u, CurrentVibes: []models.CurrentVibe{}}
		if v, ok := byUser[u.ID]; ok {
			entry.CurrentVibes = []models.CurrentVibe{v}
		}
		out = append(out, entry)
	}
	return out, nil
}
