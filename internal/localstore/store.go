// Package localstore is the file-backed storage fallback. It keeps each
// table as one JSON array in its own file, named after the browser
// localStorage key it mirrors, and rewrites the whole array on every
// mutation. It trades throughput for zero external dependencies: the server
// runs fully self-contained when no database is reachable.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Storage keys, one per table plus the session and music-preference blobs.
const (
	KeyUsers          = "vibeChecker_users"
	KeyCurrentVibes   = "vibeChecker_current_vibes"
	KeyVibeHistory    = "vibeChecker_history"
	KeyStarredUsers   = "vibeChecker_starred_users"
	KeyLovedPlaylists = "vibeChecker_loved_playlists"
	KeySession        = "vibeChecker_user"
	KeyMusicPrefs     = "musicPreferences"
)

// LastPlaylistKey returns the per-vibe key remembering the playlist last
// shown for that vibe label.
func LastPlaylistKey(vibe string) string {
	return "vibeChecker_lastPlaylist_" + vibe
}

// Store is a small key-value store over a directory of JSON files. All
// access goes through a single mutex; writes are temp-file-and-rename so a
// crash mid-write never leaves a half-written table behind.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open ensures dir exists and returns a Store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get unmarshals the value stored under key into v. A key that was never
// written is not an error; v is left untouched.
func (s *Store) Get(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(key, v)
}

func (s *Store) getLocked(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// Set marshals v and replaces the value under key.
func (s *Store) Set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(key, v)
}

func (s *Store) setLocked(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value under key. Removing a missing key is a no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Update reads the value under key, hands it to fn, and writes back whatever
// fn returns. The whole read-modify-write runs under the store lock, which is
// what makes the array rewrites safe under concurrent handlers.
func Update[T any](s *Store, key string, fn func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cur T
	if err := s.getLocked(key, &cur); err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return s.setLocked(key, next)
}

// NewID produces a client-side row ID: milliseconds since epoch with a
// random sub-millisecond component, so IDs stay roughly time-ordered while
// two writes in the same millisecond still diverge.
func NewID() uint {
	return uint(time.Now().UnixMilli())*1000 + uint(rand.Intn(1000))
}
