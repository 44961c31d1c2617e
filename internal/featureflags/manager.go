// Package featureflags evaluates operational flags for gradual rollouts and
// kill switches, configured through a single FEATURE_FLAGS string.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Manager holds the parsed flag list. A flag value is either a boolean
// (on/off) or a rollout percentage; anything else evaluates to disabled.
// Example: "realtime_feed=on,playlist_picks=25%,legacy_quiz=off".
type Manager struct {
	flags map[string]string
}

// NewManager parses a comma-separated key=value list. Malformed pairs are
// skipped rather than rejected so a typo in FEATURE_FLAGS cannot stop the
// server from booting.
func NewManager(raw string) *Manager {
	return &Manager{flags: parseFlags(raw)}
}

func parseFlags(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		value := normalize(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Enabled evaluates a flag for one user. Boolean values (on/true/1,
// off/false/0) apply to everyone; "N%" values enroll a stable N percent of
// users, so the same user sees the same answer across requests and restarts.
// Unknown flags are disabled, which is what makes "feed_disabled"-style kill
// switches safe to leave unset.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return false
		}
		if pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		// Anonymous callers never join a partial rollout.
		if userID == 0 {
			return false
		}
		return rolloutBucket(name, userID) < pct
	}

	return false
}

// Raw returns a copy of the configured values as parsed.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// Snapshot evaluates every flag for one user, the shape the flags endpoint
// returns so clients can gate their own UI.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// rolloutBucket buckets a user 0-99 per flag. Hashing the flag name in with
// the user ID keeps separate rollouts uncorrelated: being in the first 25%
// of one flag says nothing about another.
func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
