package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marina-hms/marina/internal/auth"
	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
	_ "github.com/marina-hms/marina/testing"
)

type stubBackend struct {
	token string
	user  auth.StaffUser
	err   error
}

func (s stubBackend) Login(ctx context.Context, username, password string) (string, auth.StaffUser, error) {
	if s.err != nil {
		return "", auth.StaffUser{}, s.err
	}
	return s.token, s.user, nil
}

type noopRepo struct{}

func (noopRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return nil
}

func (noopRepo) DeleteSession(ctx context.Context, id string) error { return nil }

func (noopRepo) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "5",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func newRouter(t *testing.T, backend auth.Authenticator) (chi.Router, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(client, "test_session", time.Hour, false)
	service := auth.NewService(backend, noopRepo{}, nil, time.Hour)
	handler := auth.NewHandler(slog.New(slog.DiscardHandler), service, sessions)

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r, sessions
}

func loginRequest(t *testing.T, sessions *shared.SessionManager, body string) (*http.Request, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sessions.Load(req.Context(), req)
	require.NoError(t, err)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func TestLoginSuccess(t *testing.T) {
	backend := stubBackend{
		token: testToken(t),
		user:  auth.StaffUser{ID: 5, Username: "zeynep", Name: "Zeynep Kaya", JobTitle: "Yönetici"},
	}
	router, sessions := newRouter(t, backend)

	req, sess := loginRequest(t, sessions, `{"kullanici_adi":"zeynep","sifre":"parola"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Role   string `json:"role"`
		Routes []struct {
			Path string `json:"path"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ADMIN", result.Role)
	assert.NotEmpty(t, result.Routes)
	assert.True(t, sess.Authenticated())
}

func TestLoginInvalidCredentials(t *testing.T) {
	backend := stubBackend{err: fmt.Errorf("%w: kullanıcı adı veya şifre hatalı", httpx.ErrUnauthorized)}
	router, sessions := newRouter(t, backend)

	req, sess := loginRequest(t, sessions, `{"kullanici_adi":"zeynep","sifre":"yanlis"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, sess.Authenticated())
}

func TestLoginValidation(t *testing.T) {
	router, sessions := newRouter(t, stubBackend{})

	req, _ := loginRequest(t, sessions, `{"kullanici_adi":"zeynep"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, _ = loginRequest(t, sessions, `bozuk gövde`)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	backend := stubBackend{
		token: testToken(t),
		user:  auth.StaffUser{ID: 5, Username: "zeynep", JobTitle: "Yönetici"},
	}
	router, sessions := newRouter(t, backend)

	req, sess := loginRequest(t, sessions, `{"kullanici_adi":"zeynep","sifre":"parola"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, sess.Authenticated())

	out := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	out = out.WithContext(shared.ContextWithSession(out.Context(), sess))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, out)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sess.Authenticated())

	// logging out again is a no-op, not an error
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, out)
	assert.Equal(t, http.StatusOK, rec.Code)
}
