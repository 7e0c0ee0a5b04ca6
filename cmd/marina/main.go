package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/marina-hms/marina/internal/app"
	"github.com/marina-hms/marina/internal/auth"
	"github.com/marina-hms/marina/internal/customers"
	"github.com/marina-hms/marina/internal/dashboard"
	"github.com/marina-hms/marina/internal/observability"
	"github.com/marina-hms/marina/internal/payments"
	"github.com/marina-hms/marina/internal/platform/cache"
	"github.com/marina-hms/marina/internal/platform/db"
	"github.com/marina-hms/marina/internal/platform/upstream"
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

// snapshotQueue adapts the asynq client to the reports handler, which only
// cares whether the enqueue succeeded.
type snapshotQueue struct {
	client *jobs.Client
}

func (q snapshotQueue) EnqueueReportSnapshot(ctx context.Context, reason string) error {
	_, err := q.client.EnqueueReportSnapshot(ctx, reason)
	return err
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	backend := upstream.NewClient(upstream.Config{
		BaseURL:      cfg.UpstreamBaseURL,
		Timeout:      cfg.UpstreamTimeout,
		ServiceToken: cfg.UpstreamServiceToken,
		Logger:       logger,
	})

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(auth.NewBackendAuthenticator(backend), authRepo, authRepo, cfg.SessionTTL)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	auditLogger := shared.NewAuditLogger(dbpool)
	optionsCache := cache.NewJSONCache(redisClient, 10*time.Minute)
	summaryCache := cache.NewJSONCache(redisClient, 30*time.Second)

	rbacMiddleware := rbac.Middleware{Logger: logger}
	navHandler := rbac.NewHandler(rbacMiddleware)

	roomsService := rooms.NewService(rooms.NewRepository(backend), optionsCache, auditLogger)
	roomsHandler := rooms.NewHandler(logger, roomsService, rbacMiddleware)

	customersService := customers.NewService(customers.NewRepository(backend), auditLogger)
	customersHandler := customers.NewHandler(logger, customersService, rbacMiddleware)

	reservationService := reservations.NewService(reservations.NewRepository(backend), roomsService, optionsCache, auditLogger)
	reservationHandler := reservations.NewHandler(logger, reservationService, rbacMiddleware)

	staffService := staff.NewService(staff.NewRepository(backend), auditLogger)
	staffHandler := staff.NewHandler(logger, staffService, rbacMiddleware)

	stockService := stock.NewService(stock.NewRepository(backend), auditLogger)
	stockHandler := stock.NewHandler(logger, stockService, rbacMiddleware)

	catalog := services.NewCatalog(services.NewRepository(backend), auditLogger)
	servicesHandler := services.NewHandler(logger, catalog, rbacMiddleware)

	paymentsService := payments.NewService(payments.NewRepository(backend), auditLogger)
	paymentsHandler := payments.NewHandler(logger, paymentsService, rbacMiddleware)

	snapshotStore := reports.NewSnapshotStore(dbpool)
	reportsService := reports.NewService(logger, reports.NewRepository(backend), snapshotStore)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("asynq client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()
	reportsHandler := reports.NewHandler(logger, reportsService, rbacMiddleware, snapshotQueue{client: jobClient})

	dashboardService := dashboard.NewService(dashboard.NewRepository(backend), summaryCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, rbacMiddleware)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		RBACMiddleware:     rbacMiddleware,
		AuthHandler:        authHandler,
		NavHandler:         navHandler,
		RoomsHandler:       roomsHandler,
		CustomersHandler:   customersHandler,
		ReservationHandler: reservationHandler,
		StaffHandler:       staffHandler,
		StockHandler:       stockHandler,
		ServicesHandler:    servicesHandler,
		PaymentsHandler:    paymentsHandler,
		ReportsHandler:     reportsHandler,
		DashboardHandler:   dashboardHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
