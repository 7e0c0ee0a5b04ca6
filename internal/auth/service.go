package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/marina-hms/marina/internal/platform/upstream"
	"github.com/marina-hms/marina/internal/rbac"
)

// Authenticator exchanges credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, StaffUser, error)
}

// BreakGlassStore looks up local emergency accounts. These only come into
// play when the hotel backend is down.
type BreakGlassStore interface {
	LookupBreakGlass(ctx context.Context, username string) (BreakGlassAccount, error)
}

// Service wraps authentication business rules.
type Service struct {
	backend    Authenticator
	repo       Repository
	breakGlass BreakGlassStore
	ttl        time.Duration
}

// NewService constructs a new Service. breakGlass may be nil to disable the
// emergency login path.
func NewService(backend Authenticator, repo Repository, breakGlass BreakGlassStore, sessionTTL time.Duration) *Service {
	return &Service{backend: backend, repo: repo, breakGlass: breakGlass, ttl: sessionTTL}
}

// Authenticate validates credentials against the hotel backend and normalises
// the returned identity. Password verification stays upstream; the gateway
// only ever sees the issued token. When the backend cannot be reached the
// break-glass accounts are consulted so an admin can still read the locally
// stored report snapshots.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	token, user, err := s.backend.Login(ctx, username, password)
	if err != nil {
		if upstream.IsUnreachable(err) && s.breakGlass != nil {
			if result, ok := s.authenticateBreakGlass(ctx, username, password); ok {
				return result, nil
			}
		}
		return nil, err
	}

	expiresAt := time.Now().Add(s.ttl)
	// The backend token is a JWT. Clamp the session to the token's own expiry
	// so the gateway never holds a credential longer than it is valid. The
	// token stays opaque otherwise: claims are read unverified, never trusted
	// for authorization.
	if exp, ok := tokenExpiry(token); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}

	return &LoginResult{
		Token:     token,
		User:      user,
		Role:      rbac.NormalizeRole(user.JobTitle).String(),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) authenticateBreakGlass(ctx context.Context, username, password string) (*LoginResult, bool) {
	account, err := s.breakGlass.LookupBreakGlass(ctx, username)
	if err != nil {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return &LoginResult{
		User: StaffUser{
			ID:       account.ID,
			Username: account.Username,
			Name:     account.Name,
			JobTitle: "Yönetici",
		},
		Role:      rbac.RoleAdmin.String(),
		ExpiresAt: time.Now().Add(s.ttl),
	}, true
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
