package models

import "time"

// LovedPlaylist marks a playlist a user has loved for a given vibe category.
// Loving an already-loved playlist is a no-op success, enforced by the
// unique (user_id, playlist_id) pair.
type LovedPlaylist struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex:idx_loved_pair" json:"user_id"`
	PlaylistID          string    `gorm:"size:64;not null;uniqueIndex:idx_loved_pair" json:"playlist_id"`
	PlaylistName        string    `gorm:"size:120" json:"playlist_name"`
	PlaylistDescription string    `gorm:"type:text" json:"playlist_description"`
	PlaylistImageURL    string    `gorm:"size:512" json:"playlist_image_url"`
	VibeCategory        string    `gorm:"size:40;index" json:"vibe_category"`
	CreatedAt           time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (LovedPlaylist) TableName() string {
	return "loved_playlists"
}
