package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"jobtrack-client-go/internal/api"
	"jobtrack-client-go/internal/models"
	"jobtrack-client-go/internal/session"
)

// AuthStore owns the current user identity and the session token lifecycle.
// Per-session state machine: anonymous -> loading -> authenticated |
// anonymous(error).
//
// Invariant: a non-nil user implies the token has been set on the HTTP
// wrapper. Concurrent operations are not de-duplicated; both race and the
// last write wins.
type AuthStore struct {
	api      *api.Client
	sessions session.Store
	logger   *zap.Logger

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	loading       bool
	lastErr       string
	bootstrapped  bool
}

// NewAuthStore creates an AuthStore over the given API client and session
// storage.
func NewAuthStore(client *api.Client, sessions session.Store, logger *zap.Logger) *AuthStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthStore{
		api:      client,
		sessions: sessions,
		logger:   logger,
	}
}

// Bootstrap restores a persisted session at process start: if a token
// exists and is not obviously expired, it is set on the HTTP wrapper and the
// current user is fetched. Any failure clears the session and leaves the
// store anonymous without surfacing an error. Runs once; later calls are
// no-ops.
func (s *AuthStore) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return nil
	}
	s.bootstrapped = true
	s.loading = true
	s.mu.Unlock()
	defer s.setLoading(false)

	sess, err := s.sessions.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			s.logger.Warn("Failed to load persisted session", zap.Error(err))
		}
		return nil
	}

	// A token whose exp claim already passed cannot possibly authenticate;
	// clear it locally without a round trip. Opaque tokens skip the check
	// and let the server decide.
	if tokenExpired(sess.Token) {
		s.logger.Info("Persisted session token is expired, clearing")
		s.clearSession()
		return nil
	}

	s.api.SetAuthToken(sess.Token)

	env, err := s.api.Get(ctx, "/auth/me")
	if err != nil {
		s.logger.Info("Persisted session rejected by server, clearing", zap.Error(err))
		s.api.SetAuthToken("")
		s.clearSession()
		return nil
	}

	var user models.User
	if err := env.Decode("user", &user); err != nil {
		s.api.SetAuthToken("")
		s.clearSession()
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// Register creates a new account and adopts the returned session.
func (s *AuthStore) Register(ctx context.Context, req models.RegisterRequest) error {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.Post(ctx, "/auth/register", req)
	if err != nil {
		s.recordErr(err)
		return err
	}
	return s.adoptSession(env)
}

// Login authenticates with email and password and adopts the returned
// session.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		s.recordErr(err)
		return err
	}
	return s.adoptSession(env)
}

// Logout notifies the server best-effort, then unconditionally clears local
// state. Logout must never leave the client looking authenticated, even when
// the network call fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	if _, err := s.api.Post(ctx, "/auth/logout", nil); err != nil {
		s.logger.Warn("Server-side logout failed, clearing local session anyway", zap.Error(err))
	}

	s.api.SetAuthToken("")
	s.clearSession()

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// ForgotPassword requests a password-reset email.
func (s *AuthStore) ForgotPassword(ctx context.Context, email string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if _, err := s.api.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}); err != nil {
		s.recordErr(err)
		return err
	}
	return nil
}

// CheckResetToken asks the server whether a reset token is still valid.
func (s *AuthStore) CheckResetToken(ctx context.Context, token string) (bool, error) {
	env, err := s.api.Get(ctx, "/auth/reset-password/"+token)
	if err != nil {
		s.recordErr(err)
		return false, err
	}
	return env.Get("valid").Bool(), nil
}

// ResetPassword sets a new password using a reset token. When the server
// issues a fresh session token alongside the reset, it is adopted and the
// store flips to authenticated.
func (s *AuthStore) ResetPassword(ctx context.Context, token, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.Post(ctx, "/auth/reset-password/"+token, map[string]string{"password": password})
	if err != nil {
		s.recordErr(err)
		return err
	}
	if env.Str("token") == "" {
		return nil
	}
	return s.adoptSession(env)
}

// UpdateProfile updates profile fields and replaces the local user with the
// server's copy.
func (s *AuthStore) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) error {
	env, err := s.api.Patch(ctx, "/auth/profile", req)
	if err != nil {
		s.recordErr(err)
		return err
	}

	var user models.User
	if err := env.Decode("user", &user); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// UpdatePassword changes the password of the authenticated user.
func (s *AuthStore) UpdatePassword(ctx context.Context, current, next string) error {
	if _, err := s.api.Patch(ctx, "/auth/password", map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}); err != nil {
		s.recordErr(err)
		return err
	}
	return nil
}

// HandleSessionExpired clears local state after the server reported an
// invalid credential. No server call is made; the credential is already
// dead. Wired once at process start to the API client's session-expired
// signal.
func (s *AuthStore) HandleSessionExpired() {
	s.logger.Info("Session expired, clearing local state")
	s.api.SetAuthToken("")
	s.clearSession()

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.lastErr = "your session has expired, please log in again"
	s.mu.Unlock()
}

// CurrentUser returns the authenticated user, or nil.
func (s *AuthStore) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a valid session is active.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// IsLoading reports whether an auth operation is in flight.
func (s *AuthStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last auth error message, or "".
func (s *AuthStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// adoptSession persists the token(s) in env, applies them to the HTTP
// wrapper, and replaces the local user.
func (s *AuthStore) adoptSession(env api.Envelope) error {
	token := env.Str("token")
	if token == "" {
		err := fmt.Errorf("auth: server response carried no session token")
		s.recordErr(err)
		return err
	}

	var user models.User
	if err := env.Decode("user", &user); err != nil {
		s.recordErr(err)
		return err
	}

	sess := &models.Session{
		Token:        token,
		RefreshToken: env.Str("refreshToken"),
	}
	if err := s.sessions.Save(sess); err != nil {
		// The in-memory session still works for this process; persistence
		// failure only costs the next start a login.
		s.logger.Warn("Failed to persist session", zap.Error(err))
	}

	s.api.SetAuthToken(token)

	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *AuthStore) clearSession() {
	if err := s.sessions.Clear(); err != nil {
		s.logger.Warn("Failed to clear persisted session", zap.Error(err))
	}
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *AuthStore) recordErr(err error) {
	s.mu.Lock()
	s.lastErr = errMessage(err)
	s.mu.Unlock()
}

// tokenExpired reports whether raw is a JWT whose exp claim has passed.
// Tokens that do not parse as JWTs are never reported expired; the server
// remains the authority.
func tokenExpired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
