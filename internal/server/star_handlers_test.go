package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleStar(t *testing.T) {
	_, app := newTestServer(t)
	token, myID := signupUser(t, app, "starrer")
	_, targetID := signupUser(t, app, "starred")

	togglePath := fmt.Sprintf("/api/stars/%d/toggle", targetID)

	t.Run("star", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, togglePath, token, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decodeBody(t, resp)["starred"])
	})

	t.Run("unstar", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, togglePath, token, nil)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, decodeBody(t, resp)["starred"])
	})

	t.Run("self star rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/stars/%d/toggle", myID), token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown target", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/stars/999999/toggle", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetStarStatus(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "status_checker")
	_, targetID := signupUser(t, app, "status_target")

	statusPath := fmt.Sprintf("/api/stars/%d/status", targetID)

	resp := doJSON(t, app, http.MethodGet, statusPath, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["starred"])
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/stars/%d/toggle", targetID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, statusPath, token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["starred"])
}

func TestGetStarredUsers(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "collector")
	targetToken, targetID := signupUser(t, app, "collected")

	// Target submits a quiz so their entry carries a current vibe.
	resp := doJSON(t, app, http.MethodPost, "/api/quiz/submit", targetToken, map[string]int{"score": 30})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/stars/%d/toggle", targetID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/stars/", token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	starred := body["starred"].([]any)
	require.Len(t, starred, 1)

	entry := starred[0].(map[string]any)
	assert.Equal(t, float64(targetID), entry["starred_user_id"])

	user := entry["users"].(map[string]any)
	assert.Equal(t, "collected", user["username"])

	vibes := entry["current_vibes"].([]any)
	require.Len(t, vibes, 1)
	assert.Equal(t, "Super Positive", vibes[0].(map[string]any)["vibe"])
}

// Stars are directed: being starred by someone does not star them back.
func TestStarsAreDirected(t *testing.T) {
	_, app := newTestServer(t)
	aToken, _ := signupUser(t, app, "user_a")
	bToken, bID := signupUser(t, app, "user_b")

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/stars/%d/toggle", bID), aToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/stars/", bToken, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody(t, resp)["starred"])
}
