package localstore

import (
	"context"
	"sort"
	"time"

	"vibecheck/internal/models"
	"vibecheck/internal/repository"
)

// DB implements the repository interfaces on top of a Store. Every table is
// a full array scan, which is fine at local-fallback scale.
type DB struct {
	store *Store
}

// NewDB wraps a Store in the repository-facing data access layer.
func NewDB(store *Store) *DB {
	return &DB{store: store}
}

// Store exposes the underlying key-value store for the session and music
// subsystems, which keep their own keys next to the tables.
func (d *DB) Store() *Store {
	return d.store
}

var (
	_ repository.UserRepository     = (*DB)(nil)
	_ repository.VibeRepository     = (*DB)(nil)
	_ repository.StarRepository     = (*DB)(nil)
	_ repository.PlaylistRepository = (*DB)(nil)
)

func (d *DB) Create(ctx context.Context, user *models.User) error {
	return Update(d.store, KeyUsers, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Username == user.Username {
				return nil, models.NewConflictError("Username already exists")
			}
		}
		user.ID = NewID()
		user.CreatedAt = time.Now()
		if user.Avatar == "" {
			user.Avatar = models.DefaultAvatar
		}
		return append(users, *user), nil
	})
}

func (d *DB) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var users []models.User
	if err := d.store.Get(KeyUsers, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, models.NewNotFoundError("User not found")
}

func (d *DB) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var users []models.User
	if err := d.store.Get(KeyUsers, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (d *DB) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var users []models.User
	if err := d.store.Get(KeyUsers, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (d *DB) UpdateProfile(ctx context.Context, id uint, updates repository.ProfileUpdates) (*models.User, error) {
	var updated *models.User
	err := Update(d.store, KeyUsers, func(users []models.User) ([]models.User, error) {
		idx := -1
		for i := range users {
			if users[i].ID == id {
				idx = i
				continue
			}
			if updates.Username != nil && users[i].Username == *updates.Username {
				return nil, models.NewConflictError("Username already exists")
			}
		}
		if idx == -1 {
			return nil, models.NewNotFoundError("User not found")
		}
		if updates.Username != nil {
			users[idx].Username = *updates.Username
		}
		if updates.Avatar != nil {
			users[idx].Avatar = *updates.Avatar
		}
		u := users[idx]
		updated = &u
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (d *DB) ListWithVibes(ctx context.Context) ([]models.UserWithVibe, error) {
	var users []models.User
	if err := d.store.Get(KeyUsers, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	var vibes []models.CurrentVibe
	if err := d.store.Get(KeyCurrentVibes, &vibes); err != nil {
		return nil, models.NewInternalError(err)
	}

	byUser := make(map[uint][]models.CurrentVibe, len(vibes))
	for _, v := range vibes {
		byUser[v.UserID] = append(byUser[v.UserID], v)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	result := make([]models.UserWithVibe, 0, len(users))
	for _, u := range users {
		cv := byUser[u.ID]
		if cv == nil {
			cv = []models.CurrentVibe{}
		}
		result = append(result, models.UserWithVibe{User: u, CurrentVibes: cv})
	}
	return result, nil
}

// SubmitResult replaces the user's current vibe row and appends a history
// entry. Both tables live in the same store, so the two writes happen back
// to back under the same process; there is no transaction to lean on here.
func (d *DB) SubmitResult(ctx context.Context, userID uint, vibe string, score int) error {
	err := Update(d.store, KeyCurrentVibes, func(vibes []models.CurrentVibe) ([]models.CurrentVibe, error) {
		entry := models.CurrentVibe{
			ID:        NewID(),
			UserID:    userID,
			Vibe:      vibe,
			Score:     score,
			UpdatedAt: time.Now(),
		}
		for i := range vibes {
			if vibes[i].UserID == userID {
				vibes[i] = entry
				return vibes, nil
			}
		}
		return append(vibes, entry), nil
	})
	if err != nil {
		return normalize(err)
	}

	err = Update(d.store, KeyVibeHistory, func(history []models.VibeHistoryEntry) ([]models.VibeHistoryEntry, error) {
		return append(history, models.VibeHistoryEntry{
			ID:        NewID(),
			UserID:    userID,
			Vibe:      vibe,
			Score:     score,
			CreatedAt: time.Now(),
		}), nil
	})
	return normalize(err)
}

func (d *DB) GetCurrent(ctx context.Context, userID uint) (*models.CurrentVibe, error) {
	var vibes []models.CurrentVibe
	if err := d.store.Get(KeyCurrentVibes, &vibes); err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range vibes {
		if vibes[i].UserID == userID {
			return &vibes[i], nil
		}
	}
	return nil, models.NewNotFoundError("No current vibe found")
}

func (d *DB) GetHistory(ctx context.Context, userID uint, limit int) ([]models.VibeHistoryEntry, error) {
	if limit <= 0 {
		limit = repository.DefaultHistoryLimit
	}
	var history []models.VibeHistoryEntry
	if err := d.store.Get(KeyVibeHistory, &history); err != nil {
		return nil, models.NewInternalError(err)
	}

	mine := make([]models.VibeHistoryEntry, 0, len(history))
	for _, h := range history {
		if h.UserID == userID {
			mine = append(mine, h)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].ID > mine[j].ID
		}
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func (d *DB) Toggle(ctx context.Context, userID, targetID uint) (bool, error) {
	var starred bool
	err := Update(d.store, KeyStarredUsers, func(edges []models.StarEdge) ([]models.StarEdge, error) {
		for i := range edges {
			if edges[i].UserID == userID && edges[i].StarredUserID == targetID {
				starred = false
				return append(edges[:i], edges[i+1:]...), nil
			}
		}
		starred = true
		return append(edges, models.StarEdge{
			ID:            NewID(),
			UserID:        userID,
			StarredUserID: targetID,
			CreatedAt:     time.Now(),
		}), nil
	})
	if err != nil {
		return false, normalize(err)
	}
	return starred, nil
}

func (d *DB) IsStarred(ctx context.Context, userID, targetID uint) (bool, error) {
	var edges []models.StarEdge
	if err := d.store.Get(KeyStarredUsers, &edges); err != nil {
		return false, models.NewInternalError(err)
	}
	for _, e := range edges {
		if e.UserID == userID && e.StarredUserID == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (d *DB) ListStarred(ctx context.Context, userID uint) ([]models.StarredUser, error) {
	var edges []models.StarEdge
	if err := d.store.Get(KeyStarredUsers, &edges); err != nil {
		return nil, models.NewInternalError(err)
	}
	var users []models.User
	if err := d.store.Get(KeyUsers, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	var vibes []models.CurrentVibe
	if err := d.store.Get(KeyCurrentVibes, &vibes); err != nil {
		return nil, models.NewInternalError(err)
	}

	userByID := make(map[uint]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	vibesByUser := make(map[uint][]models.CurrentVibe, len(vibes))
	for _, v := range vibes {
		vibesByUser[v.UserID] = append(vibesByUser[v.UserID], v)
	}

	result := make([]models.StarredUser, 0, len(edges))
	for _, e := range edges {
		if e.UserID != userID {
			continue
		}
		row := models.StarredUser{
			StarredUserID: e.StarredUserID,
			CurrentVibes:  vibesByUser[e.StarredUserID],
		}
		if row.CurrentVibes == nil {
			row.CurrentVibes = []models.CurrentVibe{}
		}
		if u, ok := userByID[e.StarredUserID]; ok {
			summary := u.Summary()
			row.Users = &summary
		}
		result = append(result, row)
	}
	return result, nil
}

func (d *DB) Love(ctx context.Context, p *models.LovedPlaylist) (bool, error) {
	var created bool
	err := Update(d.store, KeyLovedPlaylists, func(loved []models.LovedPlaylist) ([]models.LovedPlaylist, error) {
		for _, l := range loved {
			if l.UserID == p.UserID && l.PlaylistID == p.PlaylistID {
				created = false
				return loved, nil
			}
		}
		p.ID = NewID()
		p.CreatedAt = time.Now()
		created = true
		return append(loved, *p), nil
	})
	if err != nil {
		return false, normalize(err)
	}
	return created, nil
}

func (d *DB) Unlove(ctx context.Context, userID uint, playlistID string) error {
	err := Update(d.store, KeyLovedPlaylists, func(loved []models.LovedPlaylist) ([]models.LovedPlaylist, error) {
		for i := range loved {
			if loved[i].UserID == userID && loved[i].PlaylistID == playlistID {
				return append(loved[:i], loved[i+1:]...), nil
			}
		}
		return loved, nil
	})
	return normalize(err)
}

func (d *DB) IsLoved(ctx context.Context, userID uint, playlistID string) (bool, error) {
	var loved []models.LovedPlaylist
	if err := d.store.Get(KeyLovedPlaylists, &loved); err != nil {
		return false, models.NewInternalError(err)
	}
	for _, l := range loved {
		if l.UserID == userID && l.PlaylistID == playlistID {
			return true, nil
		}
	}
	return false, nil
}

func (d *DB) ListLoved(ctx context.Context, userID uint) ([]models.LovedPlaylist, error) {
	var loved []models.LovedPlaylist
	if err := d.store.Get(KeyLovedPlaylists, &loved); err != nil {
		return nil, models.NewInternalError(err)
	}
	mine := make([]models.LovedPlaylist, 0, len(loved))
	for _, l := range loved {
		if l.UserID == userID {
			mine = append(mine, l)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].ID > mine[j].ID
		}
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

// normalize wraps plain errors so callers always see an AppError; domain
// errors produced inside Update callbacks pass through untouched.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*models.AppError); ok {
		return err
	}
	return models.NewInternalError(err)
}
