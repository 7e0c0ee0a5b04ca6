package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marina-hms/marina/internal/platform/upstream"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// PGRepository keeps a session registry in PostgreSQL for auditing. The
// authoritative session state lives in Redis; these rows exist so an operator
// can see who was logged in and from where.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CreateSession persists a new login session.
func (r *PGRepository) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at, ip, ua)
		 VALUES ($1, $2, NOW(), $3, NULLIF($4, ''), NULLIF($5, ''))
		 ON CONFLICT (id) DO UPDATE SET user_id = EXCLUDED.user_id, expires_at = EXCLUDED.expires_at`,
		id, userID, expiresAt.UTC(), ip, ua)
	return err
}

// DeleteSession removes a session record.
func (r *PGRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteExpiredSessions prunes rows whose expiry passed before the cutoff.
func (r *PGRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, before.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// LookupBreakGlass fetches an emergency admin account by username.
func (r *PGRepository) LookupBreakGlass(ctx context.Context, username string) (BreakGlassAccount, error) {
	var account BreakGlassAccount
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, name, password_hash FROM break_glass_accounts WHERE username = $1`,
		username).Scan(&account.ID, &account.Username, &account.Name, &account.PasswordHash)
	if err != nil {
		return BreakGlassAccount{}, err
	}
	return account, nil
}

var (
	_ Repository      = (*PGRepository)(nil)
	_ BreakGlassStore = (*PGRepository)(nil)
)

// BackendAuthenticator is the upstream wrapper for the login endpoint.
type BackendAuthenticator struct {
	api *upstream.Client
}

// NewBackendAuthenticator constructs the wrapper.
func NewBackendAuthenticator(api *upstream.Client) *BackendAuthenticator {
	return &BackendAuthenticator{api: api}
}

type loginRequest struct {
	Username string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    StaffUser `json:"user"`
}

// Login exchanges credentials for a bearer token at the hotel backend. The
// backend names the username field "email" even though it holds kullanici_adi.
func (a *BackendAuthenticator) Login(ctx context.Context, username, password string) (string, StaffUser, error) {
	var resp loginResponse
	if err := a.api.Post(ctx, "/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", StaffUser{}, err
	}
	return resp.Token, resp.User, nil
}
