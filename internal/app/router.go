package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marina-hms/marina/internal/auth"
	"github.com/marina-hms/marina/internal/customers"
	"github.com/marina-hms/marina/internal/dashboard"
	"github.com/marina-hms/marina/internal/observability"
	"github.com/marina-hms/marina/internal/payments"
	"github.com/marina-hms/marina/internal/rbac"
	"github.com/marina-hms/marina/internal/reports"
	"github.com/marina-hms/marina/internal/reservations"
	"github.com/marina-hms/marina/internal/rooms"
	"github.com/marina-hms/marina/internal/services"
	"github.com/marina-hms/marina/internal/shared"
	"github.com/marina-hms/marina/internal/staff"
	"github.com/marina-hms/marina/internal/stock"
	"github.com/marina-hms/marina/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	RBACMiddleware rbac.Middleware

	AuthHandler        *auth.Handler
	NavHandler         *rbac.Handler
	RoomsHandler       *rooms.Handler
	CustomersHandler   *customers.Handler
	ReservationHandler *reservations.Handler
	StaffHandler       *staff.Handler
	StockHandler       *stock.Handler
	ServicesHandler    *services.Handler
	PaymentsHandler    *payments.Handler
	ReportsHandler     *reports.Handler
	DashboardHandler   *dashboard.Handler
	JobHandler         *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Marina defaults. Auth endpoints
// sit outside the session guard; every resource group installs its own
// permission guard on top of RequireSession.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	guard := params.RBACMiddleware
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireSession)
		r.Route("/nav", params.NavHandler.MountRoutes)
		r.Route("/rooms", params.RoomsHandler.MountRoutes)
		r.Route("/customers", params.CustomersHandler.MountRoutes)
		r.Route("/reservations", params.ReservationHandler.MountRoutes)
		r.Route("/personel", params.StaffHandler.MountRoutes)
		r.Route("/stock", params.StockHandler.MountRoutes)
		r.Route("/hizmet", params.ServicesHandler.MountRoutes)
		r.Route("/odeme", params.PaymentsHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
