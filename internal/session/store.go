// Package session tracks the signed-in shopper: the user record, its token and
// whether a login or registration call is in flight.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Fashion-Store/Aradaa/internal/logger"
)

// User is the account returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Authenticator performs the remote login and register calls.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (User, string, error)
	Register(ctx context.Context, name, email, password string) (User, string, error)
}

// State is what gets persisted between runs.
type State struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// Persister saves and restores State. Save with a zero State forgets the session.
type Persister interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
}

// Option configures a Store.
type Option func(*Store)

// WithPersister keeps the session across process restarts.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithLogger sets the logger used for persistence and auth failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store holds the current session.
type Store struct {
	auth Authenticator

	mu      sync.RWMutex
	user    *User
	token   string
	loading bool

	persister Persister
	logger    *slog.Logger
}

// New returns a signed-out store.
func New(auth Authenticator, opts ...Option) *Store {
	s := &Store{auth: auth, logger: logger.Discard()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Restore loads a previously saved session. A missing or unreadable session
// leaves the store signed out.
func (s *Store) Restore(ctx context.Context) {
	if s.persister == nil {
		return
	}
	st, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("session restore failed", slog.Any("err", err))
		return
	}
	if st.User == nil || st.Token == "" {
		return
	}

	u := *st.User
	s.mu.Lock()
	s.user, s.token = &u, st.Token
	s.mu.Unlock()
}

// Login signs in with the given credentials and reports success.
// On failure the previous session is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	u, token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", slog.String("email", email), slog.Any("err", err))
		return false
	}
	s.signIn(ctx, u, token)
	return true
}

// Register creates an account and signs in with it.
func (s *Store) Register(ctx context.Context, name, email, password string) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	u, token, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		s.logger.Info("register failed", slog.String("email", email), slog.Any("err", err))
		return false
	}
	s.signIn(ctx, u, token)
	return true
}

// Logout forgets the user and token. There is no server call.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user, s.token = nil, ""
	s.mu.Unlock()

	s.save(ctx, State{})
}

// Loading reports whether a login or register call is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) signIn(ctx context.Context, u User, token string) {
	s.mu.Lock()
	s.user, s.token = &u, token
	s.mu.Unlock()

	uc := u
	s.save(ctx, State{User: &uc, Token: token})
}

func (s *Store) save(ctx context.Context, st State) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(context.WithoutCancel(ctx), st); err != nil {
		s.logger.Warn("session save failed", slog.Any("err", err))
	}
}
