// Command main runs the database seeder for the vibe checker backend.
package main

import (
	"flag"
	"log"

	"vibecheck/internal/config"
	"vibecheck/internal/database"
	"vibecheck/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	historyPerUser := flag.Int("history", 5, "Backdated quiz results per user with a vibe")
	starsPerUser := flag.Int("stars", 3, "Star edges to attempt per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	sampleOnly := flag.Bool("sample", false, "Only insert the fixed demo accounts (skips generated data)")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Seeded loved playlists need their table; the server itself never
	// creates it so the fallback path stays exercisable.
	if err := database.MigrateLovedPlaylists(db); err != nil {
		log.Fatalf("Failed to create loved_playlists: %v", err)
	}

	if *sampleOnly {
		if err := seed.SeedSampleData(db); err != nil {
			log.Fatalf("❌ Sample seeding failed: %v", err)
		}
		log.Println("✨ Demo accounts ready: demo_user_1, demo_user_2, vibe_master")
		log.Println("📧 All test users have the password: password123")
		return
	}

	err = seed.Seed(db, seed.Options{
		NumUsers:       *numUsers,
		HistoryPerUser: *historyPerUser,
		StarsPerUser:   *starsPerUser,
		ShouldClean:    *shouldClean,
		DryRun:         *dryRun,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
