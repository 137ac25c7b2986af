package console

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-errors"
)

// Storage keys shared with the Resource Client's 401 handling.
const (
	StorageKeyToken = "auth_token"
	StorageKeyRole  = "auth_role"
)

const (
	msgInvalidLogin       = "Invalid login"
	msgMissingCredentials = "Email, password and role are required"
	msgPersistFailed      = "Unable to save session"
)

// Session is the auth session store: the current token, role and profile
// plus the loading/error state of the login form.
type Session struct {
	mu      sync.RWMutex
	token   string
	role    Role
	user    *Profile
	loading bool
	err     string

	storage  KeyValueStore
	auth     Authenticator
	nav      Navigator
	logger   Logger
	activity ActivitySink
	now      func() time.Time
}

// SessionOption customizes Session construction.
type SessionOption func(*Session)

// WithSessionNavigator sets the navigator used for post login/logout redirects.
func WithSessionNavigator(nav Navigator) SessionOption {
	return func(s *Session) {
		s.nav = nav
	}
}

func WithSessionLogger(logger Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionActivitySink sets the ActivitySink used to publish login events.
func WithSessionActivitySink(sink ActivitySink) SessionOption {
	return func(s *Session) {
		s.activity = normalizeActivitySink(sink)
	}
}

// WithSessionClock injects a custom clock (useful for tests).
func WithSessionClock(clock func() time.Time) SessionOption {
	return func(s *Session) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewSession returns an empty, unauthenticated session. Call Hydrate to load
// a persisted one.
func NewSession(storage KeyValueStore, auth Authenticator, opts ...SessionOption) *Session {
	s := &Session{
		storage:  storage,
		auth:     auth,
		logger:   defLogger{},
		activity: noopActivitySink{},
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SetNavigator wires the router once it exists, the router itself depends on
// the session.
func (s *Session) SetNavigator(nav Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = nav
}

// Hydrate loads token and role from storage. A role without a token is
// discarded.
func (s *Session) Hydrate(ctx context.Context) error {
	token, hasToken, err := s.storage.Get(ctx, StorageKeyToken)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to read session token")
	}

	var role Role
	if hasToken && token != "" {
		raw, hasRole, err := s.storage.Get(ctx, StorageKeyRole)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to read session role")
		}
		if hasRole {
			if parsed, ok := ParseRole(raw); ok {
				role = parsed
			} else {
				s.logger.Warn("ignoring persisted role %q", raw)
			}
		}
	} else {
		token = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.role = role
	if token == "" {
		s.user = nil
	}
	return nil
}

// Login authenticates and, on success, persists the session and navigates to
// the role's home route. loading is reset on every exit.
func (s *Session) Login(ctx context.Context, email, password string, role Role) error {
	creds := Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     role,
	}

	if creds.Email == "" || creds.Password == "" || !creds.Role.IsValid() {
		s.setError(msgMissingCredentials)
		return annotate(ErrMissingCredentials, nil, map[string]any{
			"email": creds.Email,
			"role":  creds.Role,
		})
	}

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	grant, err := s.authenticate(ctx, creds)
	if err == nil && (grant == nil || grant.Token == "") {
		err = fmt.Errorf("authenticator returned an empty token")
	}
	if err != nil {
		s.logger.Error("login failed for %s: %v", creds.Email, err)
		s.setError(msgInvalidLogin)
		recordActivity(ctx, s.activity, s.logger, s.now, ActivityEvent{
			EventType: ActivityEventLoginFailure,
			Email:     creds.Email,
			Role:      creds.Role,
		})
		return annotate(ErrInvalidLogin, err, map[string]any{"email": creds.Email})
	}

	if err := s.persist(ctx, grant.Token, creds.Role); err != nil {
		s.logger.Error("login persist failed for %s: %v", creds.Email, err)
		s.setError(msgPersistFailed)
		return err
	}

	user := &Profile{Email: creds.Email}
	if grant.User != nil {
		*user = *grant.User
	}
	user.Role = creds.Role

	s.mu.Lock()
	s.token = grant.Token
	s.role = creds.Role
	s.user = user
	nav := s.nav
	s.mu.Unlock()

	recordActivity(ctx, s.activity, s.logger, s.now, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		Email:     creds.Email,
		Role:      creds.Role,
	})

	if home, ok := creds.Role.HomeRoute(); ok && nav != nil {
		if _, err := nav.Navigate(ctx, home); err != nil {
			s.logger.Warn("post login navigation to %s failed: %v", home, err)
		}
	}

	return nil
}

// Logout clears the session everywhere and navigates to the login route.
// Calling it while logged out only navigates.
func (s *Session) Logout(ctx context.Context) error {
	return s.clear(ctx, ActivityEventLogout)
}

// Expire is the forced logout used when the API rejects the token.
func (s *Session) Expire(ctx context.Context) error {
	return s.clear(ctx, ActivityEventSessionExpired)
}

func (s *Session) clear(ctx context.Context, event ActivityEventType) error {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	email, role := "", s.role
	if s.user != nil {
		email = s.user.Email
	}
	s.token = ""
	s.role = RoleNone
	s.user = nil
	nav := s.nav
	s.mu.Unlock()

	err := s.storage.Delete(ctx, StorageKeyToken, StorageKeyRole)
	if err != nil {
		s.logger.Error("failed to clear persisted session: %v", err)
		err = errors.Wrap(err, errors.CategoryInternal, "failed to clear persisted session")
	}

	if wasAuthenticated {
		recordActivity(ctx, s.activity, s.logger, s.now, ActivityEvent{
			EventType: event,
			Email:     email,
			Role:      role,
		})
	}

	if nav != nil {
		if _, navErr := nav.Navigate(ctx, RouteLogin); navErr != nil {
			s.logger.Warn("navigation to login failed: %v", navErr)
		}
	}

	return err
}

func (s *Session) persist(ctx context.Context, token string, role Role) error {
	if err := s.storage.Set(ctx, StorageKeyToken, token); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist session token")
	}
	if err := s.storage.Set(ctx, StorageKeyRole, string(role)); err != nil {
		_ = s.storage.Delete(ctx, StorageKeyToken)
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist session role")
	}
	return nil
}

// authenticate turns an authenticator panic into a login failure.
func (s *Session) authenticate(ctx context.Context, creds Credentials) (grant *Grant, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("authenticator panic: %v", r)
		}
	}()
	return s.auth.Authenticate(ctx, creds)
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// Token implements client.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) User() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) IsAdmin() bool {
	return s.Role() == RoleAdmin
}

func (s *Session) IsFinance() bool {
	return s.Role() == RoleFinanceManager
}

func (s *Session) IsCustomer() bool {
	return s.Role() == RoleCustomer
}
