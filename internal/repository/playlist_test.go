package repository

import (
	"context"
	"testing"

	"vibecheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasLovedPlaylistsTable(t *testing.T) {
	db := newTestDB(t)

	assert.False(t, HasLovedPlaylistsTable(db), "table is not part of the core migration set")

	migrateLovedPlaylists(t, db)
	assert.True(t, HasLovedPlaylistsTable(db))
}

func TestPlaylistRepositoryLoveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	migrateLovedPlaylists(t, db)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	user := mustCreateUser(t, db, "music_fan")

	entry := &models.LovedPlaylist{
		UserID:       user.ID,
		PlaylistID:   "37i9dQZF1DX0XUsuxWHRQd",
		PlaylistName: "RapCaviar",
		VibeCategory: "Super Positive",
	}

	created, err := repo.Love(ctx, entry)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Love(ctx, entry)
	require.NoError(t, err)
	assert.False(t, created, "second love is a no-op")

	var count int64
	require.NoError(t, db.Model(&models.LovedPlaylist{}).
		Where("user_id = ? AND playlist_id = ?", user.ID, entry.PlaylistID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlaylistRepositoryUnloveAndIsLoved(t *testing.T) {
	db := newTestDB(t)
	migrateLovedPlaylists(t, db)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	user := mustCreateUser(t, db, "music_fan")

	_, err := repo.Love(ctx, &models.LovedPlaylist{
		UserID:     user.ID,
		PlaylistID: "pl-1",
	})
	require.NoError(t, err)

	loved, err := repo.IsLoved(ctx, user.ID, "pl-1")
	require.NoError(t, err)
	assert.True(t, loved)

	require.NoError(t, repo.Unlove(ctx, user.ID, "pl-1"))

	loved, err = repo.IsLoved(ctx, user.ID, "pl-1")
	require.NoError(t, err)
	assert.False(t, loved)

	// Unloving something never loved is not an error.
	require.NoError(t, repo.Unlove(ctx, user.ID, "pl-1"))
}

func TestPlaylistRepositoryListLoved(t *testing.T) {
	db := newTestDB(t)
	migrateLovedPlaylists(t, db)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	user := mustCreateUser(t, db, "collector")
	other := mustCreateUser(t, db, "other")

	for _, id := range []string{"pl-a", "pl-b", "pl-c"} {
		_, err := repo.Love(ctx, &models.LovedPlaylist{UserID: user.ID, PlaylistID: id})
		require.NoError(t, err)
	}
	_, err := repo.Love(ctx, &models.LovedPlaylist{UserID: other.ID, PlaylistID: "pl-z"})
	require.NoError(t, err)

	loved, err := repo.ListLoved(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loved, 3)
	assert.Equal(t, "pl-c", loved[0].PlaylistID, "newest first")
}
