// Package notifications delivers the live vibe feed: quiz results, star
// toggles, and loved playlists fan out over Redis pub/sub to every
// connected WebSocket client.
package notifications

import (
	"encoding/json"
	"time"
)

// Feed event types.
const (
	EventVibeUpdated    = "vibe_updated"
	EventUserStarred    = "user_starred"
	EventUserUnstarred  = "user_unstarred"
	EventPlaylistLoved  = "playlist_loved"
	EventProfileUpdated = "profile_updated"
)

// FeedEvent is one item on the community feed.
type FeedEvent struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Vibe      string    `json:"vibe,omitempty"`
	Score     *int      `json:"score,omitempty"`
	TargetID  uint      `json:"target_id,omitempty"`
	Playlist  string    `json:"playlist,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Encode marshals the event for the wire. Marshaling a FeedEvent cannot
// fail; the error return exists for symmetry with DecodeFeedEvent.
func (e FeedEvent) Encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeFeedEvent parses a wire payload back into a FeedEvent.
func DecodeFeedEvent(payload string) (FeedEvent, error) {
	var e FeedEvent
	err := json.Unmarshal([]byte(payload), &e)
	return e, err
}
