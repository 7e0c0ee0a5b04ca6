package payments

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

// Handler wires HTTP endpoints for payment management.
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

// MountRoutes registers payment routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermPaymentsRead))
		r.Get("/", h.handleList)
		r.Get("/customer/{customerID}", h.handleByCustomer)
		r.Get("/reservation/{reservationID}", h.handleByReservation)
		r.Get("/{paymentID}", h.handleGet)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermPaymentsWrite))
		r.Post("/", h.handleCreate)
		r.Put("/{paymentID}", h.handleUpdate)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermPaymentsDelete))
		r.Delete("/{paymentID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Method: r.URL.Query().Get("odeme_turu")}
	filter.ReservationID, _ = strconv.ParseInt(r.URL.Query().Get("rezervasyon_id"), 10, 64)
	payments, err := h.service.ListPayments(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "paymentID", "geçersiz ödeme kimliği")
	if !ok {
		return
	}
	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payment)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input PaymentInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "rezervasyon, pozitif tutar ve ödeme türü gereklidir")
		return
	}
	payment, err := h.service.CreatePayment(r.Context(), input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payment)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "paymentID", "geçersiz ödeme kimliği")
	if !ok {
		return
	}
	var input PaymentInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "rezervasyon, pozitif tutar ve ödeme türü gereklidir")
		return
	}
	payment, err := h.service.UpdatePayment(r.Context(), id, input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payment)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "paymentID", "geçersiz ödeme kimliği")
	if !ok {
		return
	}
	if err := h.service.DeletePayment(r.Context(), id, actorID(r)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "ödeme silindi"})
}

func (h *Handler) handleByCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "customerID", "geçersiz müşteri kimliği")
	if !ok {
		return
	}
	payments, err := h.service.PaymentsByCustomer(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func (h *Handler) handleByReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "reservationID", "geçersiz rezervasyon kimliği")
	if !ok {
		return
	}
	payments, err := h.service.PaymentsByReservation(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func pathID(w http.ResponseWriter, r *http.Request, param, detail string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", detail)
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
