package repository

import (
	"testing"

	"vibecheck/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the core schema.
// loved_playlists is intentionally not created here; tests that need it call
// migrateLovedPlaylists, and tests of the fallback probe rely on its absence.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CurrentVibe{},
		&models.VibeHistoryEntry{},
		&models.StarEdge{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func migrateLovedPlaylists(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(&models.LovedPlaylist{}))
}

// mustCreateUser inserts a user directly, bypassing the repository under test.
func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "password123", Avatar: "😄"}
	require.NoError(t, db.Create(user).Error)
	return user
}
