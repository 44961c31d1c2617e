package repository

import (
	"context"

	"vibecheck/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository returns a PlaylistRepository backed by the row store.
// Callers should check HasLovedPlaylistsTable first and fall back to the
// local store when the table is not provisioned.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

// HasLovedPlaylistsTable probes whether the loved_playlists relation exists.
// Some deployments never provision it; the music feature then degrades to
// the local store instead of failing.
func HasLovedPlaylistsTable(db *gorm.DB) bool {
	if db.Migrator().HasTable(&models.LovedPlaylist{}) {
		return true
	}
	// Migrator answers can be driver-dependent; settle it with a real query
	// and look for the undefined-table SQLSTATE.
	var count int64
	err := db.Model(&models.LovedPlaylist{}).Limit(1).Count(&count).Error
	if err == nil {
		return true
	}
	return !isUndefinedTableError(err)
}

func (r *playlistRepository) Love(ctx context.Context, p *models.LovedPlaylist) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "playlist_id"}},
		DoNothing: true,
	}).Create(p)
	if res.Error != nil {
		// Belt and suspenders: some drivers report the conflict instead of
		// honoring DO NOTHING. Already loved is a success either way.
		if isUniqueConstraintError(res.Error) {
			return false, nil
		}
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *playlistRepository) Unlove(ctx context.Context, userID uint, playlistID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND playlist_id = ?", userID, playlistID).
		Delete(&models.LovedPlaylist{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) IsLoved(ctx context.Context, userID uint, playlistID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LovedPlaylist{}).
		Where("user_id = ? AND playlist_id = ?", userID, playlistID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *playlistRepository) ListLoved(ctx context.Context, userID uint) ([]models.LovedPlaylist, error) {
	var playlists []models.LovedPlaylist
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&playlists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlists, nil
}
