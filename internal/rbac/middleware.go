package rbac

import (
	"log/slog"
	"net/http"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

// Middleware wires the authentication and authorization guards for HTTP
// handlers. The two checks are stacked: RequireSession answers 401 before any
// role evaluation, RequirePermission answers 403. Access is binary, there is
// no degraded read-only rendering.
type Middleware struct {
	Logger *slog.Logger
}

// RequireSession ensures the request carries an authenticated session.
func (m Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if !sess.Authenticated() {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "oturum açmanız gerekiyor")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission ensures the session role holds the permission tag.
// Unknown roles fail closed.
func (m Middleware) RequirePermission(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := m.currentRole(r)
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "oturum açmanız gerekiyor")
				return
			}
			if !HasPermission(role, perm) {
				if m.Logger != nil {
					m.Logger.Info("permission denied",
						slog.String("role", role.String()),
						slog.String("permission", string(perm)),
						slog.String("path", r.URL.Path))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "bu işlem için yetkiniz yok")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole ensures the session role is one of the allowed roles.
func (m Middleware) RequireRole(allowed ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := m.currentRole(r)
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "oturum açmanız gerekiyor")
				return
			}
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "bu sayfaya erişim yetkiniz yok")
		})
	}
}

func (m Middleware) currentRole(r *http.Request) (Role, bool) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil || id.UserID == 0 {
		return RoleUnknown, false
	}
	return ParseRole(id.Role), true
}
