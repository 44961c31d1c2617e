package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate username",
			body: map[string]string{
				"username": "testuser",
				"password": "different",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "Username already exists",
		},
		{
			name: "Missing username",
			body: map[string]string{
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing password",
			body: map[string]string{
				"username": "someone",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedError != "" {
				body := decodeBody(t, resp)
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "login_user")

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "login_user",
				"password": "password123",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong password",
			body: map[string]string{
				"username": "login_user",
				"password": "wrong",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown user",
			body: map[string]string{
				"username": "nobody",
				"password": "password123",
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// Failed logins must not reveal whether the username or the password was
// wrong.
func TestLoginGenericErrorMessage(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "careful_user")

	for _, body := range []map[string]string{
		{"username": "careful_user", "password": "wrong"},
		{"username": "ghost_user", "password": "password123"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", body)
		out := decodeBody(t, resp)
		_ = resp.Body.Close()
		assert.Equal(t, "Invalid username or password", out["error"])
	}
}

func TestAuthRequired(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "auth_user")

	t.Run("valid token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/users/me", "not.a.jwt", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogoutWithoutRedis(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "logout_user")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
}

func TestIssueWSTicketWithoutRedis(t *testing.T) {
	_, app := newTestServer(t)
	token, _ := signupUser(t, app, "ws_user")

	resp := doJSON(t, app, http.MethodPost, "/api/ws/ticket", token, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
