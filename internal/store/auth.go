package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"estatehub/client/internal/api"
	"estatehub/client/internal/models"
	"estatehub/client/internal/session"
)

// AuthState is the auth domain's data plus lifecycle flags. UserInfo is nil
// when nobody is logged in.
type AuthState struct {
	UserInfo *models.Session
	Agents   []models.Agent
	Lifecycle
}

// AuthStore holds the current session and agent directory, and dispatches
// the account operations.
type AuthStore struct {
	mu        sync.Mutex
	state     AuthState
	api       *api.Client
	sessions  *session.Store
	logger    *logrus.Logger
	listeners *listenerRegistry
}

// NewAuthStore creates the auth store, restoring any session persisted by a
// previous run. A corrupt or unreadable persisted session starts the store
// logged out rather than failing.
func NewAuthStore(client *api.Client, sessions *session.Store, logger *logrus.Logger) *AuthStore {
	if logger == nil {
		logger = logrus.New()
	}

	s := &AuthStore{
		api:       client,
		sessions:  sessions,
		logger:    logger,
		listeners: newListenerRegistry(),
	}

	persisted, err := sessions.Load()
	if err != nil {
		logger.WithError(err).Warn("Failed to restore persisted session")
	}
	s.state.UserInfo = persisted
	return s
}

// Snapshot returns a copy of the current auth state.
func (s *AuthStore) Snapshot() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

// Subscribe registers a callback invoked after every state transition and
// returns an unsubscribe function.
func (s *AuthStore) Subscribe(fn func()) func() {
	return s.listeners.add(fn)
}

// Reset clears the lifecycle flags and message, leaving the session and
// agents untouched. Views call it on entry so a previous operation's flags
// do not leak into theirs.
func (s *AuthStore) Reset() {
	s.mu.Lock()
	s.state.Lifecycle.clear()
	s.mu.Unlock()
	s.listeners.fire()
}

// Register creates an account. On success the returned session is persisted
// and becomes the current session.
func (s *AuthStore) Register(ctx context.Context, req api.RegisterRequest) error {
	s.applyPending()

	sess, err := s.api.Register(ctx, req)
	if err != nil {
		s.rejectAuth(err)
		return err
	}

	s.persist(sess)
	s.mu.Lock()
	s.state.UserInfo = sess
	s.state.Lifecycle.fulfilled()
	s.mu.Unlock()
	s.listeners.fire()
	return nil
}

// Login authenticates. On success the returned session is persisted and
// becomes the current session.
func (s *AuthStore) Login(ctx context.Context, req api.LoginRequest) error {
	s.applyPending()

	sess, err := s.api.Login(ctx, req)
	if err != nil {
		s.rejectAuth(err)
		return err
	}

	s.persist(sess)
	s.mu.Lock()
	s.state.UserInfo = sess
	s.state.Lifecycle.fulfilled()
	s.mu.Unlock()
	s.listeners.fire()
	return nil
}

// Logout drops the current session. The durable entry is cleared
// unconditionally; there is no network call to fail.
func (s *AuthStore) Logout() {
	if err := s.sessions.Clear(); err != nil {
		s.logger.WithError(err).Error("Failed to clear persisted session")
	}

	s.mu.Lock()
	s.state.UserInfo = nil
	s.mu.Unlock()
	s.listeners.fire()
}

// UpdateProfile updates the account profile. On success the refreshed
// session payload is persisted and replaces the current session.
func (s *AuthStore) UpdateProfile(ctx context.Context, req api.ProfileRequest) error {
	s.applyPending()

	sess, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		s.reject(err)
		return err
	}

	s.persist(sess)
	s.mu.Lock()
	s.state.UserInfo = sess
	s.state.Lifecycle.fulfilled()
	s.mu.Unlock()
	s.listeners.fire()
	return nil
}

// AddFavorite adds a property to the session's favorites. Only the
// favorites set is replaced from the response; the lifecycle loading flag is
// not raised, matching the silent toggle behavior of the views.
func (s *AuthStore) AddFavorite(ctx context.Context, propertyID string) error {
	favorites, err := s.api.AddFavorite(ctx, propertyID)
	if err != nil {
		s.reject(err)
		return err
	}

	s.applyFavorites(favorites)
	return nil
}

// RemoveFavorite removes a property from the session's favorites.
func (s *AuthStore) RemoveFavorite(ctx context.Context, propertyID string) error {
	favorites, err := s.api.RemoveFavorite(ctx, propertyID)
	if err != nil {
		s.reject(err)
		return err
	}

	s.applyFavorites(favorites)
	return nil
}

// GetAgents fetches the agent directory.
func (s *AuthStore) GetAgents(ctx context.Context) error {
	s.applyPending()

	agents, err := s.api.GetAgents(ctx)
	if err != nil {
		s.reject(err)
		return err
	}

	s.mu.Lock()
	s.state.Agents = agents
	s.state.Lifecycle.fulfilled()
	s.mu.Unlock()
	s.listeners.fire()
	return nil
}

// SessionExpired is wired to the transport's 401 hook: the durable entry is
// already gone, so drop the in-memory session too.
func (s *AuthStore) SessionExpired() {
	s.mu.Lock()
	s.state.UserInfo = nil
	s.mu.Unlock()
	s.listeners.fire()
}

func (s *AuthStore) applyPending() {
	s.mu.Lock()
	s.state.Lifecycle.pending()
	s.mu.Unlock()
	s.listeners.fire()
}

func (s *AuthStore) applyFavorites(favorites []string) {
	s.mu.Lock()
	if s.state.UserInfo != nil {
		s.state.UserInfo.Favorites = favorites
		if err := s.sessions.Save(s.state.UserInfo); err != nil {
			s.logger.WithError(err).Error("Failed to persist session favorites")
		}
	}
	s.state.IsSuccess = true
	s.mu.Unlock()
	s.listeners.fire()
}

// reject records a failed operation, leaving the session untouched.
func (s *AuthStore) reject(err error) {
	s.mu.Lock()
	s.state.Lifecycle.rejected(err.Error())
	s.mu.Unlock()
	s.listeners.fire()
}

// rejectAuth additionally clears the session; a failed login or register
// never leaves a half-authenticated state behind.
func (s *AuthStore) rejectAuth(err error) {
	s.mu.Lock()
	s.state.Lifecycle.rejected(err.Error())
	s.state.UserInfo = nil
	s.mu.Unlock()
	s.listeners.fire()
}

func (s *AuthStore) persist(sess *models.Session) {
	if err := s.sessions.Save(sess); err != nil {
		s.logger.WithError(err).Error("Failed to persist session")
	}
}

func (s *AuthStore) copyStateLocked() AuthState {
	out := s.state
	if s.state.UserInfo != nil {
		sess := *s.state.UserInfo
		sess.Favorites = append([]string(nil), s.state.UserInfo.Favorites...)
		out.UserInfo = &sess
	}
	out.Agents = append([]models.Agent(nil), s.state.Agents...)
	return out
}
