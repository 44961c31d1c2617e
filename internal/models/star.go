package models

import "time"

// StarEdge is a directed "favorite" relationship between two users.
// The (user_id, starred_user_id) pair is unique; toggling deletes the row.
type StarEdge struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_star_pair" json:"user_id"`
	StarredUserID uint      `gorm:"not null;uniqueIndex:idx_star_pair" json:"starred_user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (StarEdge) TableName() string {
	return "starred_users"
}

// StarredUser is the reconciled row community views consume: the edge target
// plus the target's user record and current vibe. Users can be nil when the
// target account no longer exists; CurrentVibes carries zero or one entries.
type StarredUser struct {
	StarredUserID uint          `json:"starred_user_id"`
	Users         *UserSummary  `json:"users"`
	CurrentVibes  []CurrentVibe `json:"current_vibes"`
}
