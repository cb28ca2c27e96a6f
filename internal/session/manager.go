package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Varun5711/taskflow/internal/auth"
	"github.com/Varun5711/taskflow/internal/models"
	usermodel "github.com/Varun5711/taskflow/internal/models/user"
)

type Route string

const (
	RouteDashboard Route = "/dashboard"
	RouteLogin     Route = "/auth/login"
)

const (
	msgLoginFailed    = "Login failed. Please try again."
	msgRegisterFailed = "Registration failed. Please try again."
)

var (
	ErrNoAuthAPI   = errors.New("session: auth API is required")
	ErrNoStorage   = errors.New("session: storage is required")
	ErrNoNavigator = errors.New("session: navigator is required")
)

// AuthAPI is the remote auth service as seen by the client.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
}

// ServiceError is an error the auth service reported in its response body.
// Its Message is shown to the user as is.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// AuthError is returned by Login and Register. Message is suitable for
// display; the cause stays available through errors.Unwrap.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

type Navigator interface {
	Navigate(route Route)
}

type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(route Route) { f(route) }

// State is a snapshot of the session.
type State struct {
	User    *usermodel.PublicUser
	Token   string
	Loading bool
}

func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Manager owns the client's session state and its persisted copy. It is safe
// for concurrent use; overlapping Login/Register calls are not ordered and
// the last one to finish wins.
type Manager struct {
	api     AuthAPI
	storage Storage
	nav     Navigator
	now     func() time.Time

	mu    sync.RWMutex
	state State
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(api AuthAPI, storage Storage, nav Navigator, opts ...Option) (*Manager, error) {
	switch {
	case api == nil:
		return nil, ErrNoAuthAPI
	case storage == nil:
		return nil, ErrNoStorage
	case nav == nil:
		return nil, ErrNoNavigator
	}

	m := &Manager{
		api:     api,
		storage: storage,
		nav:     nav,
		now:     time.Now,
		state:   State{Loading: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Init restores a persisted session. The session is restored only when both
// entries exist, the user parses to a record with an id and the token's
// unverified expiry lies in the future; otherwise persisted state is
// cleared. Loading is false on return whatever the outcome, and the returned
// error only reports storage failures.
func (m *Manager) Init(ctx context.Context) error {
	user, token, err := m.restore(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = State{User: user, Token: token}
	return err
}

func (m *Manager) restore(ctx context.Context) (*usermodel.PublicUser, string, error) {
	token, hasToken, err := m.storage.Get(ctx, KeyToken)
	if err != nil {
		return nil, "", err
	}
	userJSON, hasUser, err := m.storage.Get(ctx, KeyUser)
	if err != nil {
		return nil, "", err
	}

	if hasToken && hasUser && auth.ExpiresInFuture(token, m.now()) {
		var user *usermodel.PublicUser
		if json.Unmarshal([]byte(userJSON), &user) == nil && user != nil && user.ID != 0 {
			return user, token, nil
		}
	}

	if hasToken || hasUser {
		if err := m.storage.Delete(ctx, KeyToken, KeyUser); err != nil {
			return nil, "", err
		}
	}
	return nil, "", nil
}

func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return authError(err, msgLoginFailed)
	}
	return m.establish(ctx, resp, msgLoginFailed)
}

func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	resp, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		return authError(err, msgRegisterFailed)
	}
	return m.establish(ctx, resp, msgRegisterFailed)
}

// establish persists a fresh session, adopts it and navigates to the
// dashboard. State is untouched if persisting fails.
func (m *Manager) establish(ctx context.Context, resp *models.AuthResponse, fallback string) error {
	if resp == nil || resp.Token == "" {
		return &AuthError{Message: fallback, Err: errors.New("session: response carried no token")}
	}

	user := resp.User
	userJSON, err := json.Marshal(user)
	if err != nil {
		return &AuthError{Message: fallback, Err: err}
	}

	m.mu.Lock()
	if err := m.persist(ctx, resp.Token, string(userJSON)); err != nil {
		m.mu.Unlock()
		return &AuthError{Message: fallback, Err: err}
	}
	m.state = State{User: &user, Token: resp.Token}
	m.mu.Unlock()

	m.nav.Navigate(RouteDashboard)
	return nil
}

func (m *Manager) persist(ctx context.Context, token, userJSON string) error {
	if err := m.storage.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := m.storage.Set(ctx, KeyUser, userJSON); err != nil {
		// Do not leave a token without its user behind.
		_ = m.storage.Delete(ctx, KeyToken)
		return err
	}
	return nil
}

// Logout clears the session and navigates to the login view. It never fails;
// storage errors are ignored.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	_ = m.storage.Delete(ctx, KeyToken, KeyUser)
	m.state = State{}
	m.mu.Unlock()

	m.nav.Navigate(RouteLogin)
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (m *Manager) User() *usermodel.PublicUser {
	return m.State().User
}

func (m *Manager) Token() string {
	return m.State().Token
}

func (m *Manager) Loading() bool {
	return m.State().Loading
}

func (m *Manager) IsAuthenticated() bool {
	return m.State().IsAuthenticated()
}

func authError(err error, fallback string) error {
	var serr *ServiceError
	if errors.As(err, &serr) && serr.Message != "" {
		return &AuthError{Message: serr.Message, Err: err}
	}
	return &AuthError{Message: fallback, Err: err}
}
