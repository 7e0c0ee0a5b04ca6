package customers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/rbac"
	"github.com/marina-hms/marina/internal/shared"
)

// Handler wires HTTP endpoints for customer management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     rbac.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers customer routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermCustomersRead))
		r.Get("/", h.handleList)
		r.Get("/{customerID}", h.handleGet)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermExpensesRead))
		r.Get("/{customerID}/harcamalar", h.handleExpenses)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermReviewsRead))
		r.Get("/{customerID}/degerlendirme", h.handleReviews)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermCustomersWrite))
		r.Post("/", h.handleCreate)
		r.Put("/{customerID}", h.handleUpdate)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermCustomersDelete))
		r.Delete("/{customerID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Search: r.URL.Query().Get("search"),
		Gender: r.URL.Query().Get("cinsiyet"),
	}
	customers, err := h.service.ListCustomers(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	customer, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input CustomerInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "ad, soyad, 11 haneli TC kimlik no ve telefon gereklidir")
		return
	}
	customer, err := h.service.CreateCustomer(r.Context(), input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	var input CustomerInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "ad, soyad, 11 haneli TC kimlik no ve telefon gereklidir")
		return
	}
	customer, err := h.service.UpdateCustomer(r.Context(), id, input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCustomer(r.Context(), id, actorID(r)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "müşteri silindi"})
}

func (h *Handler) handleExpenses(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	summary, err := h.service.CustomerExpenses(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}
	summary, err := h.service.CustomerReviews(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func customerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz müşteri kimliği")
		return 0, false
	}
	return id, true
}

func actorID(r *http.Request) int64 {
	if id := shared.IdentityFromContext(r.Context()); id != nil {
		return id.UserID
	}
	return 0
}
