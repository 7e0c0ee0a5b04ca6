package reservations

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

// Handler wires HTTP endpoints for reservation management.
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

// MountRoutes registers reservation routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermReservationsRead))
		r.Get("/", h.handleList)
		r.Get("/options", h.handleOptions)
		r.Get("/check-availability", h.handleCheckAvailability)
		r.Get("/quote", h.handleQuote)
		r.Get("/{reservationID}", h.handleGet)
		r.Get("/{reservationID}/degerlendirme", h.handleGetReview)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermReservationsWrite))
		r.Post("/", h.handleCreate)
		r.Put("/{reservationID}", h.handleUpdate)
		r.Post("/{reservationID}/degerlendirme", h.handleCreateReview)
		r.Put("/{reservationID}/degerlendirme", h.handleUpdateReview)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermReservationsDelete))
		r.Delete("/{reservationID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := ListFilter{Status: query.Get("durum")}
	filter.RoomID, _ = strconv.ParseInt(query.Get("oda_id"), 10, 64)
	filter.CustomerID, _ = strconv.ParseInt(query.Get("musteri_id"), 10, 64)
	reservations, err := h.service.ListReservations(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reservations)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := reservationID(w, r)
	if !ok {
		return
	}
	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reservation)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input ReservationInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "müşteri, oda ve tarih alanları gereklidir")
		return
	}
	reservation, err := h.service.CreateReservation(r.Context(), input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, reservation)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := reservationID(w, r)
	if !ok {
		return
	}
	var input ReservationInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "müşteri, oda ve tarih alanları gereklidir")
		return
	}
	reservation, err := h.service.UpdateReservation(r.Context(), id, input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reservation)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := reservationID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteReservation(r.Context(), id, actorID(r)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "rezervasyon silindi"})
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.GetOptions(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, opts)
}

func (h *Handler) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	roomID, _ := strconv.ParseInt(query.Get("oda_id"), 10, 64)
	excludeID, _ := strconv.ParseInt(query.Get("exclude_id"), 10, 64)
	availability, err := h.service.CheckAvailability(r.Context(), roomID, query.Get("giris_tarihi"), query.Get("cikis_tarihi"), excludeID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, availability)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	roomID, _ := strconv.ParseInt(query.Get("oda_id"), 10, 64)
	quote, err := h.service.Quote(r.Context(), roomID, query.Get("giris_tarihi"), query.Get("cikis_tarihi"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := reservationID(w, r)
	if !ok {
		return
	}
	review, err := h.service.ReservationReview(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, review)
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := reservationID(w, r)
	if !ok {
		return
	}
	var input ReviewInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "puan 1 ile 5 arasında olmalıdır")
		return
	}
	review, err := h.service.CreateReview(r.Context(), id, input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, review)
}

func (h *Handler) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := reservationID(w, r)
	if !ok {
		return
	}
	var input ReviewInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz istek gövdesi")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "puan 1 ile 5 arasında olmalıdır")
		return
	}
	review, err := h.service.UpdateReview(r.Context(), id, input, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, review)
}

func reservationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reservationID"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "geçersiz rezervasyon kimliği")
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
