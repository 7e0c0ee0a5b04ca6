package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/marina-hms/marina/internal/platform/httpx"
)

type stubBackend struct {
	token string
	user  StaffUser
	err   error
}

func (s stubBackend) Login(ctx context.Context, username, password string) (string, StaffUser, error) {
	if s.err != nil {
		return "", StaffUser{}, s.err
	}
	return s.token, s.user, nil
}

type stubSessionRepo struct {
	created int
	deleted int
}

func (s *stubSessionRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	s.created++
	return nil
}

func (s *stubSessionRepo) DeleteSession(ctx context.Context, id string) error {
	s.deleted++
	return nil
}

func (s *stubSessionRepo) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type stubBreakGlass struct {
	account BreakGlassAccount
	err     error
}

func (s stubBreakGlass) LookupBreakGlass(ctx context.Context, username string) (BreakGlassAccount, error) {
	if s.err != nil {
		return BreakGlassAccount{}, s.err
	}
	return s.account, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

func TestAuthenticateNormalizesRole(t *testing.T) {
	backend := stubBackend{
		token: signedToken(t, time.Now().Add(24*time.Hour)),
		user:  StaffUser{ID: 5, Username: "zeynep", Name: "Zeynep Kaya", JobTitle: "Resepsiyonist"},
	}
	svc := NewService(backend, &stubSessionRepo{}, nil, time.Hour)

	result, err := svc.Authenticate(context.Background(), "zeynep", "parola")
	require.NoError(t, err)
	assert.Equal(t, "RECEPTION", result.Role)
	assert.NotEmpty(t, result.Token)
}

func TestAuthenticateClampsToTokenExpiry(t *testing.T) {
	tokenExp := time.Now().Add(10 * time.Minute)
	backend := stubBackend{
		token: signedToken(t, tokenExp),
		user:  StaffUser{ID: 5, Username: "zeynep", JobTitle: "Yönetici"},
	}
	svc := NewService(backend, &stubSessionRepo{}, nil, 12*time.Hour)

	result, err := svc.Authenticate(context.Background(), "zeynep", "parola")
	require.NoError(t, err)
	assert.WithinDuration(t, tokenExp, result.ExpiresAt, 2*time.Second)
}

func TestAuthenticatePassesBackendRejection(t *testing.T) {
	backend := stubBackend{err: fmt.Errorf("%w: kullanıcı adı veya şifre hatalı", httpx.ErrUnauthorized)}
	svc := NewService(backend, &stubSessionRepo{}, nil, time.Hour)

	_, err := svc.Authenticate(context.Background(), "zeynep", "yanlis")
	assert.True(t, errors.Is(err, httpx.ErrUnauthorized))
}

func TestAuthenticateBreakGlassWhenBackendDown(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("acil-parola"), bcrypt.MinCost)
	require.NoError(t, err)

	backend := stubBackend{err: fmt.Errorf("%w: connection refused", httpx.ErrUnavailable)}
	breakGlass := stubBreakGlass{account: BreakGlassAccount{
		ID:           1,
		Username:     "acildurum",
		Name:         "Acil Durum Yöneticisi",
		PasswordHash: string(hash),
	}}
	svc := NewService(backend, &stubSessionRepo{}, breakGlass, time.Hour)

	result, err := svc.Authenticate(context.Background(), "acildurum", "acil-parola")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", result.Role)
	assert.Empty(t, result.Token)

	// wrong password still surfaces the outage
	_, err = svc.Authenticate(context.Background(), "acildurum", "yanlis")
	assert.True(t, errors.Is(err, httpx.ErrUnavailable))
}

func TestAuthenticateBreakGlassIgnoredWhenBackendUp(t *testing.T) {
	backend := stubBackend{err: fmt.Errorf("%w: kullanıcı adı veya şifre hatalı", httpx.ErrUnauthorized)}
	breakGlass := stubBreakGlass{account: BreakGlassAccount{ID: 1, Username: "acildurum"}}
	svc := NewService(backend, &stubSessionRepo{}, breakGlass, time.Hour)

	_, err := svc.Authenticate(context.Background(), "acildurum", "her-neyse")
	assert.True(t, errors.Is(err, httpx.ErrUnauthorized))
}
