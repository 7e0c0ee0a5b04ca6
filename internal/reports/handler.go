package reports

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marina-hms/marina/internal/platform/httpx"
	"github.com/marina-hms/marina/internal/rbac"
)

// SnapshotEnqueuer submits snapshot work to the background queue.
type SnapshotEnqueuer interface {
	EnqueueReportSnapshot(ctx context.Context, reason string) error
}

// Handler wires HTTP endpoints for reporting.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   rbac.Middleware
	queue   SnapshotEnqueuer
}

// NewHandler constructs a Handler instance. queue may be nil, in which case
// snapshot capture runs inline on the request.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware, queue SnapshotEnqueuer) *Handler {
	return &Handler{logger: logger, service: service, guard: guard, queue: queue}
}

// MountRoutes registers report routes on provided router. Snapshot capture
// is admin-only; reading reports needs the reports permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(rbac.PermReportsRead))
		r.Get("/monthly", h.handleMonthly)
		r.Get("/reservations", h.handleReservations)
		r.Get("/snapshots/{kind}", h.handleSnapshotHistory)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireRole(rbac.RoleAdmin))
		r.Post("/snapshots", h.handleTakeSnapshots)
	})
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.MonthlyReport(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []MonthlyRow{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleReservations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ReservationReport(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if rows == nil {
		rows = []ReservationRow{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleSnapshotHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	since := 30 * 24 * time.Hour
	if raw := query.Get("since"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "since süresi 72h gibi bir değer olmalıdır")
			return
		}
		since = parsed
	}
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))

	result, err := h.service.SnapshotHistory(r.Context(), chi.URLParam(r, "kind"), since, page, perPage)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleTakeSnapshots(w http.ResponseWriter, r *http.Request) {
	if h.queue != nil {
		if err := h.queue.EnqueueReportSnapshot(r.Context(), "manual"); err != nil {
			h.logger.Warn("enqueue snapshot", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusAccepted, map[string]string{"message": "rapor anlık görüntüsü kuyruğa alındı"})
		return
	}
	if err := h.service.TakeSnapshots(r.Context()); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "rapor anlık görüntüleri kaydedildi"})
}
