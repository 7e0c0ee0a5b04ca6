package rbac_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marina-hms/marina/internal/rbac"
	"github.com/marina-hms/marina/internal/shared"
)

func requestAs(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/personel/", nil)
	sess := &shared.Session{}
	if role != "" {
		sess.SetIdentity(shared.Identity{UserID: 1, Username: "test", Role: role, Token: "jwt"})
	}
	return req.WithContext(shared.ContextWithSession(context.Background(), sess))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession(t *testing.T) {
	guard := rbac.Middleware{}
	handler := guard.RequireSession(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("ADMIN"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	guard := rbac.Middleware{}
	handler := guard.RequirePermission(rbac.PermStaffRead)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("ADMIN"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("RECEPTION"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("GARIP_ROL"))
	assert.Equal(t, http.StatusForbidden, rec.Code, "unknown roles fail closed")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	guard := rbac.Middleware{}
	handler := guard.RequireRole(rbac.RoleAdmin)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("ADMIN"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs("OPERATIONS"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
