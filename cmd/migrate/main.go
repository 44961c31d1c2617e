// Command migrate runs schema operations for the backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"vibecheck/internal/config"
	"vibecheck/internal/database"
	"vibecheck/internal/models"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <auto|loved|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "auto":
		// Connect already applies the core schema outside production; this
		// subcommand exists to run it explicitly there.
		if err := database.AutoMigrateCore(db); err != nil {
			return fmt.Errorf("automigrations failed: %w", err)
		}
		log.Println("core schema applied")
	case "loved":
		// Deliberately separate: without this table the playlist subsystem
		// falls back to the local file store.
		if err := database.MigrateLovedPlaylists(db); err != nil {
			return fmt.Errorf("loved_playlists migration failed: %w", err)
		}
		log.Println("loved_playlists created")
	case "status":
		migrator := db.Migrator()
		for _, table := range []any{
			&models.User{},
			&models.CurrentVibe{},
			&models.VibeHistoryEntry{},
			&models.StarEdge{},
			&models.LovedPlaylist{},
		} {
			log.Printf("%-20T present=%t", table, migrator.HasTable(table))
		}
	default:
		return usage()
	}

	return nil
}
