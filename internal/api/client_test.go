package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "empty", baseURL: ""},
		{name: "relative", baseURL: "/api/v1"},
		{name: "no scheme", baseURL: "api.example.com"},
		{name: "wrong scheme", baseURL: "ftp://api.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{BaseURL: tt.baseURL})
			assert.Error(t, err)
		})
	}
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth atomic.Value
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	})

	// No token set: the header stays absent.
	_, err := client.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth.Load())

	client.SetAuthToken("tok-123")
	_, err = client.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth.Load())

	// Setting the same token again changes nothing on the wire.
	client.SetAuthToken("tok-123")
	_, err = client.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth.Load())

	// Clearing the token removes the header.
	client.SetAuthToken("")
	_, err = client.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth.Load())
}

func TestClient_ErrorMessageFromBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"please provide all values"}`))
	})

	_, err := client.Post(context.Background(), "/jobs", map[string]string{})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "please provide all values", apiErr.Message)
}

func TestClient_ErrorFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Get(context.Background(), "/jobs")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "something went wrong, please try again", apiErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = client.Get(context.Background(), "/jobs")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.Equal(t, "network error, please try again", apiErr.Message)
	assert.Error(t, apiErr.Unwrap())
}

func TestClient_SessionExpiredSignal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"authentication invalid"}`))
	})

	expired := make(chan struct{}, 1)
	client.OnSessionExpired(func() { expired <- struct{}{} })

	_, err := client.Get(context.Background(), "/jobs")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "authentication invalid", apiErr.Message)

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("session-expired callback was never invoked")
	}
}

func TestClient_NoSessionExpiredSignalOnOtherErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	var fired atomic.Bool
	client.OnSessionExpired(func() { fired.Store(true) })

	_, err := client.Get(context.Background(), "/jobs")
	require.Error(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestClient_JSONBodyAndHeaders(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	})

	_, err := client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"email":"a@b.co"}`, string(gotBody))
}

func TestEnvelope_Decode(t *testing.T) {
	env := Envelope{body: []byte(`{"job":{"id":"j1","company":"Acme"},"currentPage":2}`)}

	var job struct {
		ID      string `json:"id"`
		Company string `json:"company"`
	}
	require.NoError(t, env.Decode("job", &job))
	assert.Equal(t, "j1", job.ID)
	assert.Equal(t, "Acme", job.Company)

	assert.Equal(t, 2, env.Int("currentPage"))
	assert.True(t, env.Has("job"))
	assert.False(t, env.Has("task"))

	err := env.Decode("task", &job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"task"`)
}

func TestEnvelope_DecodeRoot(t *testing.T) {
	env := Envelope{body: []byte(`{"nextStep":"payment","planId":"p2"}`)}

	var upgrade struct {
		NextStep string `json:"nextStep"`
		PlanID   string `json:"planId"`
	}
	require.NoError(t, env.Decode("", &upgrade))
	assert.Equal(t, "payment", upgrade.NextStep)
	assert.Equal(t, "p2", upgrade.PlanID)
}
