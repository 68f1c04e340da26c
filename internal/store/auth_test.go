package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/client/internal/api"
	"estatehub/client/internal/models"
	"estatehub/client/internal/session"
)

func newAuthTestStore(t *testing.T, handler http.Handler) (*AuthStore, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions, err := session.NewStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	client := api.NewClient(server.URL, nil, logrus.New())
	return NewAuthStore(client, sessions, logrus.New()), sessions
}

func TestAuthStore_LoginPersistsSession(t *testing.T) {
	store, sessions := newAuthTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		json.NewEncoder(w).Encode(models.Session{
			ID: "u1", Name: "Priya", Role: models.RoleBuyer, Token: "tok-1",
			Favorites: []string{},
		})
	}))

	err := store.Login(context.Background(), api.LoginRequest{Email: "priya@example.com", Password: "secret1"})
	require.NoError(t, err)

	snap := store.Snapshot()
	require.NotNil(t, snap.UserInfo)
	assert.Equal(t, "tok-1", snap.UserInfo.Token)
	assert.True(t, snap.IsSuccess)

	persisted, err := sessions.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "u1", persisted.ID)
}

func TestAuthStore_LoginRejectedClearsSession(t *testing.T) {
	store, sessions := newAuthTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))

	err := store.Login(context.Background(), api.LoginRequest{Email: "x@example.com", Password: "wrong"})
	require.Error(t, err)

	snap := store.Snapshot()
	assert.Nil(t, snap.UserInfo)
	assert.True(t, snap.IsError)
	assert.Equal(t, "Invalid email or password", snap.Message)

	persisted, err := sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestAuthStore_RestoresPersistedSession(t *testing.T) {
	sessions, err := session.NewStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer sessions.Close()
	require.NoError(t, sessions.Save(&models.Session{ID: "u1", Token: "tok-1"}))

	store := NewAuthStore(api.NewClient("http://unused", nil, nil), sessions, logrus.New())

	snap := store.Snapshot()
	require.NotNil(t, snap.UserInfo)
	assert.Equal(t, "tok-1", snap.UserInfo.Token)
}

func TestAuthStore_LogoutClearsEverything(t *testing.T) {
	store, sessions := newAuthTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Session{ID: "u1", Token: "tok-1"})
	}))
	require.NoError(t, store.Login(context.Background(), api.LoginRequest{Email: "a@b.c", Password: "secret1"}))

	store.Logout()

	assert.Nil(t, store.Snapshot().UserInfo)
	persisted, err := sessions.Load()
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestAuthStore_FavoriteToggleRoundTrip(t *testing.T) {
	favorites := []string{"p1"}
	store, _ := newAuthTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/users/login":
			json.NewEncoder(w).Encode(models.Session{ID: "u1", Token: "tok", Favorites: favorites})
		case r.URL.Path == "/api/users/favorites" && r.Method == http.MethodPost:
			var body struct {
				PropertyID string `json:"propertyId"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			favorites = append(favorites, body.PropertyID)
			json.NewEncoder(w).Encode(models.FavoritesResponse{Favorites: favorites})
		case r.Method == http.MethodDelete:
			id := path.Base(r.URL.Path)
			kept := favorites[:0]
			for _, f := range favorites {
				if f != id {
					kept = append(kept, f)
				}
			}
			favorites = kept
			json.NewEncoder(w).Encode(models.FavoritesResponse{Favorites: favorites})
		}
	}))

	ctx := context.Background()
	require.NoError(t, store.Login(ctx, api.LoginRequest{Email: "a@b.c", Password: "secret1"}))
	original := store.Snapshot().UserInfo.Favorites

	require.NoError(t, store.AddFavorite(ctx, "p2"))
	assert.Equal(t, []string{"p1", "p2"}, store.Snapshot().UserInfo.Favorites)

	require.NoError(t, store.RemoveFavorite(ctx, "p2"))
	assert.Equal(t, original, store.Snapshot().UserInfo.Favorites)
}

func TestAuthStore_GetAgents(t *testing.T) {
	store, _ := newAuthTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/agents", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Agent{{ID: "a1", Name: "Rahul"}})
	}))

	require.NoError(t, store.GetAgents(context.Background()))

	snap := store.Snapshot()
	require.Len(t, snap.Agents, 1)
	assert.Equal(t, "Rahul", snap.Agents[0].Name)
	assert.True(t, snap.IsSuccess)
}

func TestAuthStore_UpdateProfilePersists(t *testing.T) {
	store, sessions := newAuthTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/login":
			json.NewEncoder(w).Encode(models.Session{ID: "u1", Name: "Old Name", Token: "tok"})
		case "/api/users/profile":
			assert.Equal(t, http.MethodPut, r.Method)
			json.NewEncoder(w).Encode(models.Session{ID: "u1", Name: "New Name", Token: "tok"})
		}
	}))

	ctx := context.Background()
	require.NoError(t, store.Login(ctx, api.LoginRequest{Email: "a@b.c", Password: "secret1"}))
	require.NoError(t, store.UpdateProfile(ctx, api.ProfileRequest{Name: "New Name"}))

	assert.Equal(t, "New Name", store.Snapshot().UserInfo.Name)
	persisted, err := sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, "New Name", persisted.Name)
}

func TestAuthStore_LifecycleMonotonicity(t *testing.T) {
	store, _ := newAuthTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "User already exists"})
	}))

	var phases []Lifecycle
	unsubscribe := store.Subscribe(func() {
		phases = append(phases, store.Snapshot().Lifecycle)
	})
	defer unsubscribe()

	_ = store.Register(context.Background(), api.RegisterRequest{
		Name: "A", Email: "a@b.c", Password: "secret1", Phone: "1", Role: models.RoleBuyer,
	})

	require.Len(t, phases, 2)
	assert.True(t, phases[0].IsLoading)
	assert.True(t, phases[1].IsError)
	assert.False(t, phases[1].IsSuccess)
	assert.Equal(t, "User already exists", phases[1].Message)
}
