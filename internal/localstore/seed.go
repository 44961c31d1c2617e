package localstore

import (
	"time"

	"vibecheck/internal/middleware"
	"vibecheck/internal/models"
)

// SeedSampleData populates the store with demo accounts so a fresh local
// install has something to show. It only runs when the users table is
// empty; stars and loved playlists start empty either way, so the first
// thing a demo user does is build their own graph.
func SeedSampleData(store *Store) error {
	var users []models.User
	if err := store.Get(KeyUsers, &users); err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	now := time.Now()
	sampleUsers := []models.User{
		{ID: NewID(), Username: "demo_user_1", Password: "password123", Avatar: "😄", CreatedAt: now},
		{ID: NewID(), Username: "demo_user_2", Password: "password123", Avatar: "🤗", CreatedAt: now},
		{ID: NewID(), Username: "vibe_master", Password: "password123", Avatar: "✨", CreatedAt: now},
	}
	sampleVibes := []models.CurrentVibe{
		{ID: NewID(), UserID: sampleUsers[0].ID, Vibe: "Super Positive", Score: 42, UpdatedAt: now},
		{ID: NewID(), UserID: sampleUsers[1].ID, Vibe: "Pretty Good", Score: 35, UpdatedAt: now},
	}
	sampleHistory := []models.VibeHistoryEntry{
		{ID: NewID(), UserID: sampleUsers[0].ID, Vibe: "Super Positive", Score: 42, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: NewID(), UserID: sampleUsers[0].ID, Vibe: "Pretty Good", Score: 35, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: NewID(), UserID: sampleUsers[1].ID, Vibe: "Pretty Good", Score: 35, CreatedAt: now.Add(-24 * time.Hour)},
	}

	if err := store.Set(KeyUsers, sampleUsers); err != nil {
		return err
	}
	if err := store.Set(KeyCurrentVibes, sampleVibes); err != nil {
		return err
	}
	if err := store.Set(KeyVibeHistory, sampleHistory); err != nil {
		return err
	}
	if err := store.Set(KeyStarredUsers, []models.StarEdge{}); err != nil {
		return err
	}

	middleware.Logger.Info("initialized sample data for local storage fallback",
		"users", len(sampleUsers))
	return nil
}
