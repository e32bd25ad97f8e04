// Package session tracks authentication state on top of the API client:
// sign-in, registration, silent restore on startup, and the forced
// sign-out triggered by a 401 anywhere in the system.
package session

import (
	"context"
	"sync"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/credentials"
	"grantsassist-client/internal/models"
)

// State is the session lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// Manager owns the session state machine. All state reads and writes go
// through the mutex; network calls run outside it so the client's
// unauthorized callback can re-enter safely.
type Manager struct {
	client *api.Client
	creds  credentials.Provider
	log    logger.Logger

	mu    sync.Mutex
	state State
	user  *models.User
}

// NewManager wires the manager into the client's 401 handling: any
// unauthorized response demotes the session immediately.
func NewManager(client *api.Client, creds credentials.Provider, log logger.Logger) *Manager {
	m := &Manager{
		client: client,
		creds:  creds,
		log:    log,
		state:  StateUnauthenticated,
	}
	client.SetUnauthorizedHandler(m.handleUnauthorized)
	return m
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the signed-in user, or nil when unauthenticated.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// SignIn exchanges credentials for a token, stores it, and loads the
// user record. On any failure the session ends up Unauthenticated with
// no stored token.
func (m *Manager) SignIn(ctx context.Context, username, password string) (*models.User, error) {
	m.setState(StateAuthenticating, nil)

	var token models.TokenResponse
	if err := m.client.Do(ctx, api.Login(username, password), &token); err != nil {
		m.setState(StateUnauthenticated, nil)
		return nil, err
	}

	return m.completeSignIn(ctx, token.AccessToken)
}

// Register creates an account and then signs in with the same
// credentials, so a successful registration always yields a live
// session.
func (m *Manager) Register(ctx context.Context, email, password string) (*models.User, error) {
	req := models.RegisterRequest{Email: email, Password: password}
	if err := m.client.Do(ctx, api.Register(req), nil); err != nil {
		return nil, err
	}
	return m.SignIn(ctx, email, password)
}

// SignInWithApple exchanges an Apple identity token for a session.
func (m *Manager) SignInWithApple(ctx context.Context, req models.AppleSignInRequest) (*models.User, error) {
	m.setState(StateAuthenticating, nil)

	var token models.TokenResponse
	if err := m.client.Do(ctx, api.AppleSignIn(req), &token); err != nil {
		m.setState(StateUnauthenticated, nil)
		return nil, err
	}

	return m.completeSignIn(ctx, token.AccessToken)
}

func (m *Manager) completeSignIn(ctx context.Context, accessToken string) (*models.User, error) {
	if err := m.creds.Store(ctx, accessToken); err != nil {
		m.setState(StateUnauthenticated, nil)
		return nil, err
	}

	var user models.User
	if err := m.client.Do(ctx, api.CurrentUser(), &user); err != nil {
		if clearErr := m.creds.Clear(ctx); clearErr != nil {
			m.log.Warn("credential clear failed", map[string]interface{}{"error": clearErr.Error()})
		}
		m.setState(StateUnauthenticated, nil)
		return nil, err
	}

	m.setState(StateAuthenticated, &user)
	m.log.Info("signed in", map[string]interface{}{"user_id": user.ID})
	return &user, nil
}

// Restore attempts a silent session restore from a previously stored
// token. It never surfaces an error: a missing or rejected token simply
// leaves the session Unauthenticated, with the stale token cleared.
func (m *Manager) Restore(ctx context.Context) bool {
	token, err := m.creds.Token(ctx)
	if err != nil {
		m.log.Warn("credential read failed", map[string]interface{}{"error": err.Error()})
		m.setState(StateUnauthenticated, nil)
		return false
	}
	if token == "" {
		m.setState(StateUnauthenticated, nil)
		return false
	}

	m.setState(StateAuthenticating, nil)

	var user models.User
	if err := m.client.Do(ctx, api.CurrentUser(), &user); err != nil {
		// A 401 already cleared the token; clear again for other
		// failure kinds so the next startup does not retry a dead token.
		if clearErr := m.creds.Clear(ctx); clearErr != nil {
			m.log.Warn("credential clear failed", map[string]interface{}{"error": clearErr.Error()})
		}
		m.setState(StateUnauthenticated, nil)
		m.log.Debug("session restore failed", map[string]interface{}{"error": err.Error()})
		return false
	}

	m.setState(StateAuthenticated, &user)
	m.log.Info("session restored", map[string]interface{}{"user_id": user.ID})
	return true
}

// SignOut clears stored credentials and resets the session.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.creds.Clear(ctx)
	m.setState(StateUnauthenticated, nil)
	return err
}

func (m *Manager) handleUnauthorized() {
	m.mu.Lock()
	wasAuthenticated := m.state == StateAuthenticated
	m.state = StateUnauthenticated
	m.user = nil
	m.mu.Unlock()

	if wasAuthenticated {
		m.log.Warn("session invalidated by server", nil)
	}
}

func (m *Manager) setState(state State, user *models.User) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.mu.Unlock()
}
