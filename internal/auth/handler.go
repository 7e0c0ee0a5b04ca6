package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/rbac"
	"github.com/marina-hms/marina/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	sessionManager *shared.SessionManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		sessionManager: sessions,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

type loginPayload struct {
	Username string `json:"kullanici_adi" validate:"required"`
	Password string `json:"sifre" validate:"required,min=4"`
}

type loginResult struct {
	User        StaffUser         `json:"user"`
	Role        string            `json:"role"`
	Routes      []rbac.NavRoute   `json:"routes"`
	Permissions []rbac.Permission `json:"permissions"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "kullanıcı adı ve şifre gereklidir")
		return
	}

	result, err := h.service.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		h.logger.Info("login failed", slog.String("username", payload.Username), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	sess.SetIdentity(shared.Identity{
		UserID:   result.User.ID,
		Username: result.User.Username,
		Name:     result.User.Name,
		Role:     result.Role,
		Token:    result.Token,
	})
	if err := h.service.RegisterSession(r.Context(), sess.ID, result.User.ID, result.ExpiresAt, r.RemoteAddr, r.UserAgent()); err != nil {
		h.logger.Warn("register session", slog.Any("error", err))
	}

	role := rbac.ParseRole(result.Role)
	httpx.JSON(w, http.StatusOK, loginResult{
		User:        result.User,
		Role:        result.Role,
		Routes:      rbac.NavRoutesFor(role),
		Permissions: rbac.PermissionsFor(role),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if err := h.service.RemoveSession(r.Context(), sess.ID); err != nil {
			h.logger.Warn("remove session", slog.Any("error", err))
		}
		h.sessionManager.Destroy(sess)
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "çıkış yapıldı"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "oturum açmanız gerekiyor")
		return
	}
	role := rbac.ParseRole(id.Role)
	httpx.JSON(w, http.StatusOK, loginResult{
		User:        StaffUser{ID: id.UserID, Username: id.Username, Name: id.Name},
		Role:        role.String(),
		Routes:      rbac.NavRoutesFor(role),
		Permissions: rbac.PermissionsFor(role),
	})
}
