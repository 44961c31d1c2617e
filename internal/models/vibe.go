package models

import "time"

// CurrentVibe is the single mood record a user holds at any moment.
// It is upserted on every quiz submission, keyed on user_id.
type CurrentVibe struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Vibe      string    `gorm:"size:40;not null" json:"vibe"`
	Score     int       `gorm:"not null" json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (CurrentVibe) TableName() string {
	return "current_vibes"
}

// VibeHistoryEntry is one row of the append-only quiz submission log.
// Entries are never mutated or deleted.
type VibeHistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Vibe      string    `gorm:"size:40;not null" json:"vibe"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (VibeHistoryEntry) TableName() string {
	return "vibe_history"
}
