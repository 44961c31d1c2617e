package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vibecheck/internal/config"
	"vibecheck/internal/featureflags"
	"vibecheck/internal/localstore"
	"vibecheck/internal/music"
	"vibecheck/internal/notifications"
	"vibecheck/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server backed by the local file store in a temp
// directory, with routes mounted on a fresh Fiber app. No Redis, no SQL.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	local := localstore.NewDB(store)

	s := &Server{
		config: &config.Config{
			JWTSecret: "test-secret-that-is-long-enough-for-hs256",
			Port:      "0",
		},
		store:        store,
		userRepo:     local,
		vibeRepo:     local,
		starRepo:     local,
		playlistRepo: local,
		notifier:     notifications.NewNotifier(nil),
		flags:        featureflags.NewManager("starred_feed=on,playlist_picks=50%"),
	}

	s.userService = service.NewUserService(s.userRepo)
	s.vibeService = service.NewVibeService(s.vibeRepo, s.userRepo, s.notifier)
	s.starService = service.NewStarService(s.starRepo, s.userRepo, s.notifier)
	s.musicService = service.NewMusicService(s.playlistRepo, music.MustLoadCatalog(),
		music.NewPrefs(store), s.notifier)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

// signupUser registers a user through the API and returns the token and ID.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.NotEmpty(t, body.Token)

	return body.Token, body.User.ID
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodes the response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
