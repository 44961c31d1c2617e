// Package session holds the persisted current-user state used in local
// storage mode. It replaces ambient global lookups with one Manager built
// at process start and passed to whoever needs it.
package session

import (
	"sync"

	"vibecheck/internal/localstore"
	"vibecheck/internal/models"
)

// Manager owns the persisted session. All mutations write through to the
// store immediately so a restart picks up the same logged-in user.
type Manager struct {
	mu      sync.RWMutex
	store   *localstore.Store
	current *models.User
}

// NewManager loads any persisted session from the store. A corrupt or
// missing session record simply starts logged out.
func NewManager(store *localstore.Store) (*Manager, error) {
	m := &Manager{store: store}
	var user models.User
	if err := store.Get(localstore.KeySession, &user); err != nil {
		return nil, err
	}
	if user.ID != 0 {
		m.current = &user
	}
	return m, nil
}

// Current returns the logged-in user, or nil when logged out.
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

// Login records user as the active session and persists it.
func (m *Manager) Login(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.current = &u
	return m.store.Set(localstore.KeySession, u)
}

// Logout clears the session in memory and on disk.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return m.store.Remove(localstore.KeySession)
}

// Update refreshes the persisted session after a profile change. Updating
// while logged out is a no-op.
func (m *Manager) Update(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.ID != user.ID {
		return nil
	}
	u := *user
	m.current = &u
	return m.store.Set(localstore.KeySession, u)
}
