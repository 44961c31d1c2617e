package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	_, app := newTestServer(t)
	token, id := signupUser(t, app, "profile_user")

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(id), user["id"])
	assert.Equal(t, "profile_user", user["username"])
}

func TestUpdateMyProfile(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "old_name")
	signupUser(t, app, "taken_name")

	t.Run("rename", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
			"username": "new_name",
			"avatar":   "🚀",
		})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		user := body["user"].(map[string]any)
		assert.Equal(t, "new_name", user["username"])
		assert.Equal(t, "🚀", user["avatar"])
	})

	t.Run("rename to taken username", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
			"username": "taken_name",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("avatar only leaves username alone", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
			"avatar": "🌈",
		})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		user := body["user"].(map[string]any)
		assert.Equal(t, "new_name", user["username"])
		assert.Equal(t, "🌈", user["avatar"])
	})
}

func TestGetAllUsers(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "lister")
	otherToken, _ := signupUser(t, app, "other_user")

	// Give other_user a current vibe so the join shape is visible.
	resp := doJSON(t, app, http.MethodPost, "/api/quiz/submit", otherToken, map[string]int{
		"score": 40,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/users/", token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	users := body["users"].([]any)
	require.Len(t, users, 2)

	withVibe := 0
	for _, raw := range users {
		entry := raw.(map[string]any)
		vibes := entry["current_vibes"].([]any)
		assert.LessOrEqual(t, len(vibes), 1)
		withVibe += len(vibes)
	}
	assert.Equal(t, 1, withVibe)
}

func TestGetUserProfile(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "viewer")
	_, targetID := signupUser(t, app, "target")

	t.Run("found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", targetID), token, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		user := body["user"].(map[string]any)
		assert.Equal(t, "target", user["username"])
	})

	t.Run("not found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/999999", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/abc", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// Without Redis the cached endpoint must still serve from the store.
func TestGetUserCachedFallsThrough(t *testing.T) {
	_, app := newTestServer(t)
	token, id := signupUser(t, app, "cache_user")

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/cached", id), token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	user := body["user"].(map[string]any)
	assert.Equal(t, "cache_user", user["username"])
}

func TestGetMyFlags(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "flag_user")

	resp := doJSON(t, app, http.MethodGet, "/api/users/me/flags", token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	flags := body["flags"].(map[string]any)
	assert.Equal(t, true, flags["starred_feed"])
	// Percentage rollouts evaluate to a boolean either way.
	assert.Contains(t, flags, "playlist_picks")

	unauth := doJSON(t, app, http.MethodGet, "/api/users/me/flags", "", nil)
	defer func() { _ = unauth.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, unauth.StatusCode)
}
