// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"vibecheck/internal/models"
	"vibecheck/internal/quiz"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

var avatarPool = []string{"😄", "🤗", "✨", "😊", "🙂", "😎", "🌈", "🔥", "🎧", "🌻"}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
// Every seeded account uses password123 so developers can log in as anyone.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Password: "password123",
		Avatar:   avatarPool[rand.Intn(len(avatarPool))],
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s %s", user.Username, user.Avatar)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateVibe gives the user a current vibe derived from a random quiz score
// and appends the matching history entry, mirroring what a real submission
// writes.
func (f *Factory) CreateVibe(user *models.User, overrides ...func(*models.CurrentVibe)) (*models.CurrentVibe, error) {
	score := gofakeit.Number(-47, 47)
	band := quiz.VibeFromScore(score)

	vibe := &models.CurrentVibe{
		UserID: user.ID,
		Vibe:   band.Vibe,
		Score:  score,
	}

	for _, override := range overrides {
		override(vibe)
	}

	if f.opts.DryRun {
		f.nextID++
		vibe.ID = f.nextID
		log.Printf("[dry-run] CreateVibe: user=%d vibe=%q score=%d", vibe.UserID, vibe.Vibe, vibe.Score)
		return vibe, nil
	}

	if err := f.db.Create(vibe).Error; err != nil {
		return nil, err
	}

	entry := &models.VibeHistoryEntry{UserID: vibe.UserID, Vibe: vibe.Vibe, Score: vibe.Score}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return vibe, nil
}

// CreateHistoryEntry appends one backdated quiz result to the user's log.
func (f *Factory) CreateHistoryEntry(user *models.User, daysBack int, overrides ...func(*models.VibeHistoryEntry)) (*models.VibeHistoryEntry, error) {
	score := gofakeit.Number(-47, 47)
	band := quiz.VibeFromScore(score)

	entry := &models.VibeHistoryEntry{
		UserID:    user.ID,
		Vibe:      band.Vibe,
		Score:     score,
		CreatedAt: time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour),
	}

	for _, override := range overrides {
		override(entry)
	}

	if f.opts.DryRun {
		f.nextID++
		entry.ID = f.nextID
		log.Printf("[dry-run] CreateHistoryEntry: user=%d vibe=%q", entry.UserID, entry.Vibe)
		return entry, nil
	}

	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateStar persists a directed star edge from one user to another.
func (f *Factory) CreateStar(from, to *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateStar: %d -> %d", from.ID, to.ID)
		return nil
	}
	edge := &models.StarEdge{UserID: from.ID, StarredUserID: to.ID}
	return f.db.Create(edge).Error
}

// CreateLovedPlaylist persists a loved playlist for the user. Callers pass
// real catalog entries so seeded data matches what the UI can render.
func (f *Factory) CreateLovedPlaylist(user *models.User, playlistID, name, vibeCategory string) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateLovedPlaylist: user=%d playlist=%s", user.ID, playlistID)
		return nil
	}
	loved := &models.LovedPlaylist{
		UserID:       user.ID,
		PlaylistID:   playlistID,
		PlaylistName: name,
		VibeCategory: vibeCategory,
	}
	return f.db.Create(loved).Error
}
