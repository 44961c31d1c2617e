package repository

import (
	"context"
	"errors"
	"testing"

	"vibecheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "demo_user_1", Password: "password123"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, models.DefaultAvatar, user.Avatar)

	dup := &models.User{Username: "demo_user_1", Password: "other"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "Username already exists", appErr.Message)
}

func TestUserRepositoryGetByCredentials(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "vibe_master")

	got, err := repo.GetByCredentials(ctx, "vibe_master", "password123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "vibe_master", got.Username)

	// Wrong password and unknown user are indistinguishable: both nil, nil.
	got, err = repo.GetByCredentials(ctx, "vibe_master", "wrong")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByCredentials(ctx, "nobody", "password123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepositoryGetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "vibe_master")

	got, err := repo.GetByUsername(ctx, "vibe_master")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "vibe_master", got.Username)

	// Miss contract matches GetByCredentials: nil, nil.
	got, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := mustCreateUser(t, db, "old_name")

	newName := "new_name"
	updated, err := repo.UpdateProfile(ctx, user.ID, ProfileUpdates{Username: &newName})
	require.NoError(t, err)
	assert.Equal(t, "new_name", updated.Username)
	assert.Equal(t, "😄", updated.Avatar, "avatar untouched by partial update")

	avatar := "✨"
	updated, err = repo.UpdateProfile(ctx, user.ID, ProfileUpdates{Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "new_name", updated.Username)
	assert.Equal(t, "✨", updated.Avatar)

	_, err = repo.UpdateProfile(ctx, 9999, ProfileUpdates{Avatar: &avatar})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepositoryUpdateProfileDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "taken")
	user := mustCreateUser(t, db, "renamer")

	taken := "taken"
	_, err := repo.UpdateProfile(ctx, user.ID, ProfileUpdates{Username: &taken})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepositoryListWithVibes(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	vibeRepo := NewVibeRepository(db)
	ctx := context.Background()

	a := mustCreateUser(t, db, "with_vibe")
	mustCreateUser(t, db, "no_vibe")

	require.NoError(t, vibeRepo.SubmitResult(ctx, a.ID, "Pretty Good", 18))

	users, err := userRepo.ListWithVibes(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	withVibes := 0
	for _, u := range users {
		require.LessOrEqual(t, len(u.CurrentVibes), 1, "at most one current vibe per user")
		if len(u.CurrentVibes) == 1 {
			withVibes++
			assert.Equal(t, a.ID, u.ID)
			assert.Equal(t, "Pretty Good", u.CurrentVibes[0].Vibe)
		}
	}
	assert.Equal(t, 1, withVibes)
}
