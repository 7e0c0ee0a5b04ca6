package rbac

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/shared"
)

// Handler serves the navigation contract: which pages and permission tags the
// current session's role gets.
type Handler struct {
	guard Middleware
}

// NewHandler builds the nav handler.
func NewHandler(guard Middleware) *Handler {
	return &Handler{guard: guard}
}

// MountRoutes registers nav routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireSession)
		r.Get("/", h.listNav)
	})
}

type navResponse struct {
	Role        string       `json:"role"`
	Routes      []NavRoute   `json:"routes"`
	Permissions []Permission `json:"permissions"`
}

func (h *Handler) listNav(w http.ResponseWriter, r *http.Request) {
	role := ParseRole(shared.IdentityFromContext(r.Context()).Role)
	httpx.JSON(w, http.StatusOK, navResponse{
		Role:        role.String(),
		Routes:      NavRoutesFor(role),
		Permissions: PermissionsFor(role),
	})
}
