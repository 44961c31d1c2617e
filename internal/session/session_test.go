package session

import (
	"testing"

	"vibecheck/internal/localstore"
	"vibecheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerLoginPersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	store, err := localstore.Open(dir)
	require.NoError(t, err)

	m, err := NewManager(store)
	require.NoError(t, err)
	assert.Nil(t, m.Current())

	user := &models.User{ID: 7, Username: "demo_user_1", Avatar: "😄"}
	require.NoError(t, m.Login(user))
	require.NotNil(t, m.Current())
	assert.Equal(t, "demo_user_1", m.Current().Username)

	// A fresh manager over the same directory resumes the session.
	store2, err := localstore.Open(dir)
	require.NoError(t, err)
	m2, err := NewManager(store2)
	require.NoError(t, err)
	require.NotNil(t, m2.Current())
	assert.Equal(t, uint(7), m2.Current().ID)
}

func TestManagerLogout(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	m, err := NewManager(store)
	require.NoError(t, err)

	require.NoError(t, m.Login(&models.User{ID: 1, Username: "u"}))
	require.NoError(t, m.Logout())
	assert.Nil(t, m.Current())

	m2, err := NewManager(store)
	require.NoError(t, err)
	assert.Nil(t, m2.Current(), "logout clears the persisted record too")
}

func TestManagerUpdate(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	m, err := NewManager(store)
	require.NoError(t, err)

	// Updating while logged out does nothing.
	require.NoError(t, m.Update(&models.User{ID: 1, Username: "x"}))
	assert.Nil(t, m.Current())

	require.NoError(t, m.Login(&models.User{ID: 1, Username: "old"}))
	require.NoError(t, m.Update(&models.User{ID: 1, Username: "new", Avatar: "✨"}))
	assert.Equal(t, "new", m.Current().Username)

	// Updates for a different user are ignored.
	require.NoError(t, m.Update(&models.User{ID: 2, Username: "other"}))
	assert.Equal(t, "new", m.Current().Username)
}
