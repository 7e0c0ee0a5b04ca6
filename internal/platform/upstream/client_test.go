package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

func identityContext(token string) context.Context {
	sess := &shared.Session{}
	sess.SetIdentity(shared.Identity{UserID: 1, Username: "test", Token: token})
	return shared.ContextWithSession(context.Background(), sess)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	var out map[string]bool
	err := client.Get(identityContext("session-jwt"), "/rooms/", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer session-jwt", gotAuth)
	assert.True(t, out["ok"])
}

func TestClientFallsBackToServiceToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, ServiceToken: "svc-token"})
	err := client.Get(context.Background(), "/reports/monthly", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer svc-token", gotAuth)
}

func TestClientDecodesBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"Müşteri bulunamadı"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.Get(context.Background(), "/customers/99", nil, nil)
	require.Error(t, err)

	assert.True(t, errors.Is(err, httpx.ErrNotFound))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus())
	assert.Equal(t, "Müşteri bulunamadı", apiErr.Detail())
}

func TestClientConflictAndValidationMapping(t *testing.T) {
	status := http.StatusConflict
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"conflict"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.Post(context.Background(), "/reservations/", map[string]any{}, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict))

	status = http.StatusUnprocessableEntity
	err = client.Post(context.Background(), "/reservations/", map[string]any{}, nil)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestClientUnreachableBackend(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	err := client.Get(context.Background(), "/rooms/", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.True(t, errors.Is(err, httpx.ErrUnavailable))
}

func TestClientBreakerOpensAfterServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	for i := 0; i < 3; i++ {
		err := client.Get(context.Background(), "/rooms/", nil, nil)
		require.Error(t, err)
	}

	err := client.Get(context.Background(), "/rooms/", nil, nil)
	assert.True(t, IsUnreachable(err), "open breaker should read as unreachable, got %v", err)
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.Get(ctx, "/rooms/", nil, nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
