// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"vibecheck/internal/models"
	"vibecheck/internal/music"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	HistoryPerUser int
	StarsPerUser   int
	ShouldClean    bool
	DryRun         bool
}

// Seed populates the database with generated demo data: users with vibes,
// quiz history, star edges and loved playlists.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users...", opts.NumUsers)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	log.Printf("✓ %d users created", len(users))

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	vibes := 0
	for _, user := range users {
		// Roughly two thirds of seeded users have taken the quiz.
		if r.Float32() < 0.66 {
			if _, err := factory.CreateVibe(user); err != nil {
				return fmt.Errorf("failed to create vibe: %w", err)
			}
			vibes++
			for d := 1; d <= opts.HistoryPerUser; d++ {
				if _, err := factory.CreateHistoryEntry(user, d); err != nil {
					return fmt.Errorf("failed to create history entry: %w", err)
				}
			}
		}
	}
	log.Printf("✓ %d current vibes created", vibes)

	stars := 0
	for _, user := range users {
		for i := 0; i < opts.StarsPerUser && len(users) > 1; i++ {
			target := users[r.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			// Duplicate edges violate the unique pair index; skip quietly.
			if err := factory.CreateStar(user, target); err == nil {
				stars++
			}
		}
	}
	log.Printf("✓ %d star edges created", stars)

	catalog := music.MustLoadCatalog()
	loves := 0
	for _, user := range users {
		if r.Float32() >= 0.4 {
			continue
		}
		categories := catalog.VibeCategories()
		vibe := categories[r.Intn(len(categories))]
		pool := catalog.PlaylistsForVibe(vibe)
		pick := pool[r.Intn(len(pool))]
		if err := factory.CreateLovedPlaylist(user, pick.ID, pick.Name, vibe); err == nil {
			loves++
		}
	}
	log.Printf("✓ %d loved playlists created", loves)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// SeedSampleData inserts the fixed demo accounts when the users table is
// empty. It is the database-mode counterpart of the local store's first-run
// sample data and is safe to call on every startup.
func SeedSampleData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demoUsers := []models.User{
		{Username: "demo_user_1", Password: "password123", Avatar: "😄"},
		{Username: "demo_user_2", Password: "password123", Avatar: "🤗"},
		{Username: "vibe_master", Password: "password123", Avatar: "✨"},
	}
	if err := db.Create(&demoUsers).Error; err != nil {
		return err
	}

	// Labels and scores are carried over from the legacy sample data
	// verbatim, even where a score would map to a different band today.
	vibes := []models.CurrentVibe{
		{UserID: demoUsers[0].ID, Vibe: "Super Positive", Score: 42},
		{UserID: demoUsers[1].ID, Vibe: "Pretty Good", Score: 35},
	}
	if err := db.Create(&vibes).Error; err != nil {
		return err
	}

	history := []models.VibeHistoryEntry{
		{UserID: demoUsers[0].ID, Vibe: "Super Positive", Score: 42, CreatedAt: time.Now().Add(-24 * time.Hour)},
		{UserID: demoUsers[0].ID, Vibe: "Pretty Good", Score: 35, CreatedAt: time.Now().Add(-48 * time.Hour)},
		{UserID: demoUsers[1].ID, Vibe: "Pretty Good", Score: 35, CreatedAt: time.Now().Add(-24 * time.Hour)},
	}
	if err := db.Create(&history).Error; err != nil {
		return err
	}

	log.Println("✓ sample users seeded")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE loved_playlists, starred_users, vibe_history, current_vibes, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
