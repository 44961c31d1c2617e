package music

import (
	"time"

	"vibecheck/internal/localstore"
)

// Interaction actions mirrored from the client.
const (
	ActionLike  = "like"
	ActionSkip  = "skip"
	ActionSave  = "save"
	ActionShare = "share"
)

// Interaction is one recorded playlist touch.
type Interaction struct {
	PlaylistID string    `json:"playlistId"`
	Vibe       string    `json:"vibeName"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

// Prefs records playlist interactions and last-viewed playlists in the
// local store, alongside the table files.
type Prefs struct {
	store *localstore.Store
}

// NewPrefs wraps a store for preference tracking.
func NewPrefs(store *localstore.Store) *Prefs {
	return &Prefs{store: store}
}

// Track appends an interaction to the preference log and returns it.
func (p *Prefs) Track(playlistID, vibe, action string) (Interaction, error) {
	interaction := Interaction{
		PlaylistID: playlistID,
		Vibe:       vibe,
		Action:     action,
		Timestamp:  time.Now(),
	}
	err := localstore.Update(p.store, localstore.KeyMusicPrefs,
		func(log []Interaction) ([]Interaction, error) {
			return append(log, interaction), nil
		})
	return interaction, err
}

// PreferredForVibe returns the playlist IDs the user has liked for a vibe,
// oldest first.
func (p *Prefs) PreferredForVibe(vibe string) ([]string, error) {
	var log []Interaction
	if err := p.store.Get(localstore.KeyMusicPrefs, &log); err != nil {
		return nil, err
	}
	var ids []string
	for _, in := range log {
		if in.Vibe == vibe && in.Action == ActionLike {
			ids = append(ids, in.PlaylistID)
		}
	}
	return ids, nil
}

// SetLastViewed remembers the playlist last shown for a vibe label.
func (p *Prefs) SetLastViewed(vibe string, playlist Playlist) error {
	return p.store.Set(localstore.LastPlaylistKey(vibe), playlist)
}

// LastViewed returns the playlist last shown for a vibe, or nil when none
// was recorded.
func (p *Prefs) LastViewed(vibe string) (*Playlist, error) {
	var playlist Playlist
	if err := p.store.Get(localstore.LastPlaylistKey(vibe), &playlist); err != nil {
		return nil, err
	}
	if playlist.ID == "" {
		return nil, nil
	}
	return &playlist, nil
}
