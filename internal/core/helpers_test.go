package core

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobtrack-client-go/internal/api"
	"jobtrack-client-go/internal/models"
	"jobtrack-client-go/internal/session"
)

// stubAuth satisfies Authenticator with a fixed answer.
type stubAuth struct{ authed bool }

func (s *stubAuth) IsAuthenticated() bool { return s.authed }

// memSessions is an in-memory session.Store for auth-store tests.
type memSessions struct {
	mu   sync.Mutex
	sess *models.Session
}

func (m *memSessions) Load() (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, session.ErrNotFound
	}
	copied := *m.sess
	return &copied, nil
}

func (m *memSessions) Save(s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.sess = &copied
	return nil
}

func (m *memSessions) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}

func (m *memSessions) current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// newTestAPI spins up a server and an api.Client pointed at it, counting
// every request that arrives.
func newTestAPI(t *testing.T, handler http.HandlerFunc) (*api.Client, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL, Logger: zap.NewNop()})
	require.NoError(t, err)
	return client, &requests
}

// newTestData builds a DataStore over a test server with an authenticated
// stub gate.
func newTestData(t *testing.T, handler http.HandlerFunc) (*DataStore, *atomic.Int64) {
	t.Helper()
	client, requests := newTestAPI(t, handler)
	return NewDataStore(client, &stubAuth{authed: true}, zap.NewNop()), requests
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// newTestAuth builds an AuthStore over a test server with in-memory session
// persistence.
func newTestAuth(t *testing.T, handler http.HandlerFunc) (*AuthStore, *api.Client, *memSessions, *atomic.Int64) {
	t.Helper()
	client, requests := newTestAPI(t, handler)
	sessions := &memSessions{}
	return NewAuthStore(client, sessions, zap.NewNop()), client, sessions, requests
}
