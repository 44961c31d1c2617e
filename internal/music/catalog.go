// Package music maps vibe bands to Spotify playlist pools and tracks which
// playlists a user actually reaches for.
package music

import (
	_ "embed"
	"fmt"
	"math/rand"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed playlists.yml
var playlistsYAML []byte

// Playlist is one curated Spotify playlist.
type Playlist struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
}

type pool struct {
	Vibe      string     `yaml:"vibe"`
	Playlists []Playlist `yaml:"playlists"`
}

type catalogFile struct {
	Pools      []pool              `yaml:"pools"`
	Contextual map[string][]string `yaml:"contextual"`
}

// Catalog is the loaded playlist catalog. It is immutable after load and
// safe for concurrent readers.
type Catalog struct {
	order      []string
	pools      map[string][]Playlist
	contextual map[string][]string
}

// LoadCatalog parses the embedded playlist data.
func LoadCatalog() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(playlistsYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing playlist catalog: %w", err)
	}
	c := &Catalog{
		pools:      make(map[string][]Playlist, len(file.Pools)),
		contextual: file.Contextual,
	}
	for _, p := range file.Pools {
		c.order = append(c.order, p.Vibe)
		c.pools[p.Vibe] = p.Playlists
	}
	return c, nil
}

// MustLoadCatalog panics on a malformed embedded catalog, which can only
// happen at build time.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// PlaylistsForVibe returns the pool for a vibe label, empty for unknown
// labels.
func (c *Catalog) PlaylistsForVibe(vibe string) []Playlist {
	return c.pools[vibe]
}

// RandomPlaylistForVibe picks one playlist from the vibe's pool, or nil when
// the label has no pool.
func (c *Catalog) RandomPlaylistForVibe(vibe string) *Playlist {
	pool := c.pools[vibe]
	if len(pool) == 0 {
		return nil
	}
	p := pool[rand.Intn(len(pool))]
	return &p
}

// PlaylistByID finds a playlist in the vibe's pool, or nil when the ID is
// not part of that pool.
func (c *Catalog) PlaylistByID(vibe, id string) *Playlist {
	for _, p := range c.pools[vibe] {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// VibeCategories returns every vibe label with a pool, best to worst.
func (c *Catalog) VibeCategories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// TimeContext buckets an hour of day the way the playlist picker expects.
func TimeContext(now time.Time) string {
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

// ContextualPlaylist picks a playlist for the vibe with the current time of
// day as flavor. The pick itself is still random within the vibe's pool;
// the context names are surfaced alongside it.
func (c *Catalog) ContextualPlaylist(vibe string, now time.Time) (*Playlist, string) {
	return c.RandomPlaylistForVibe(vibe), TimeContext(now)
}

// ContextualNames returns the mood names attached to a time context.
func (c *Catalog) ContextualNames(timeContext string) []string {
	return c.contextual[timeContext]
}

// SpotifyPlaylistURL builds the public playlist link.
func SpotifyPlaylistURL(playlistID string) string {
	return "https://open.spotify.com/playlist/" + playlistID
}

// SpotifyEmbedURL builds the embeddable player link.
func SpotifyEmbedURL(playlistID string) string {
	return "https://open.spotify.com/embed/playlist/" + playlistID + "?utm_source=generator&theme=0"
}
