// Package models contains data structures for the application's domain models.
package models

import "time"

// DefaultAvatar is assigned when a signup does not pick one.
const DefaultAvatar = "😊"

// User represents an account in the vibecheck application.
//
// Passwords are stored and compared verbatim: login is an exact-equality
// lookup on (username, password), matching the product's legacy contract.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `gorm:"size:16;not null;default:'😊'" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// UserSummary is the trimmed user projection embedded in starred-user rows.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Summary returns the trimmed projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// UserWithVibe is a user decorated with their current vibe, if any.
// CurrentVibes carries zero or one entries, never more; the array shape is
// what the community views render.
type UserWithVibe struct {
	User
	CurrentVibes []CurrentVibe `json:"current_vibes"`
}
