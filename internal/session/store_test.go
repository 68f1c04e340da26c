package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/client/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	sess, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, "", store.Token())
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	sess := &models.Session{
		ID:        "u1",
		Name:      "Priya",
		Email:     "priya@example.com",
		Role:      models.RoleAgent,
		Token:     "tok-123",
		Favorites: []string{"p1", "p2"},
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)
	assert.Equal(t, "tok-123", store.Token())
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(&models.Session{ID: "u1", Token: "old"}))
	require.NoError(t, store.Save(&models.Session{ID: "u2", Token: "new"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "u2", loaded.ID)
	assert.Equal(t, "new", loaded.Token)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(&models.Session{ID: "u1", Token: "tok"}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing again is a no-op.
	assert.NoError(t, store.Clear())
}

func TestStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	first, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Save(&models.Session{ID: "u1", Token: "tok"}))
	require.NoError(t, first.Close())

	second, err := NewStore(dbPath)
	require.NoError(t, err)
	defer second.Close()

	loaded, err := second.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok", loaded.Token)
}
