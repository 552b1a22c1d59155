package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cargodesk/cargodesk/internal/app"
	"github.com/cargodesk/cargodesk/internal/exchangerate"
	"github.com/cargodesk/cargodesk/internal/freight/billing"
	"github.com/cargodesk/cargodesk/internal/freight/billoflading"
	"github.com/cargodesk/cargodesk/internal/freight/booking"
	"github.com/cargodesk/cargodesk/internal/freight/customs"
	"github.com/cargodesk/cargodesk/internal/freight/quote"
	"github.com/cargodesk/cargodesk/internal/freight/schedule"
	"github.com/cargodesk/cargodesk/internal/freight/tracking"
	"github.com/cargodesk/cargodesk/internal/listview"
	listviewhttp "github.com/cargodesk/cargodesk/internal/listview/http"
	"github.com/cargodesk/cargodesk/internal/observability"
	"github.com/cargodesk/cargodesk/internal/platform/cache"
	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/screens"
	"github.com/cargodesk/cargodesk/internal/shared"
	"github.com/cargodesk/cargodesk/jobs"
)

func runServe(ctx context.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return err
	}
	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		return err
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	catalog, err := screens.Load()
	if err != nil {
		logger.Error("load screens", slog.Any("error", err))
		return err
	}

	metrics := observability.NewMetrics()
	sessionManager := shared.NewSessionManager(redisClient, "cargodesk_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	routes, err := buildRoutes(wiring{
		logger:   logger,
		cfg:      cfg,
		pool:     pool,
		redis:    redisClient,
		catalog:  catalog,
		registry: metrics,
	})
	if err != nil {
		logger.Error("wire handlers", slog.Any("error", err))
		return err
	}
	routes = append(routes, app.Route{Path: "/jobs", Handler: jobs.NewHandler(inspector, jobClient, logger)})

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		Metrics:        metrics,
		Routes:         routes,
		Screens:        catalog.Names(),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server", slog.Any("error", err))
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		return err
	}
	return nil
}

type wiring struct {
	logger   *slog.Logger
	cfg      *app.Config
	pool     *pgxpool.Pool
	redis    *redis.Client
	catalog  *screens.Catalog
	registry *observability.Metrics
}

func buildRoutes(w wiring) ([]app.Route, error) {
	loc := w.cfg.Location()
	audit := shared.NewAuditLogger(w.pool)
	listMetrics := listviewhttp.NewMetrics(w.registry.Registerer())
	options := listview.Options{Location: loc}

	list := func(name string, source listviewhttp.Source) (*listviewhttp.Handler, error) {
		h, err := listviewhttp.NewHandler(w.logger, w.catalog.MustGet(name), source, options, listMetrics)
		if err != nil {
			return nil, fmt.Errorf("screen %s: %w", name, err)
		}
		return h, nil
	}

	fxClient := exchangerate.NewClient(w.cfg.FXAPIURL, w.cfg.FXAPIKey, w.logger)
	fx := exchangerate.NewService(fxClient, w.redis, w.cfg.FXBaseCurrency, w.cfg.FXCacheTTL, w.logger)

	bookings := booking.NewService(booking.NewRepository(w.pool), audit, w.logger)
	quotes := quote.NewService(quote.NewRepository(w.pool), audit, w.logger, loc)
	schedules := schedule.NewService(schedule.NewRepository(w.pool), audit, w.logger)
	bills := billoflading.NewService(billoflading.NewRepository(w.pool), audit, w.logger, loc)
	declarations := customs.NewService(customs.NewRepository(w.pool), audit, w.logger)
	invoices := billing.NewService(billing.NewRepository(w.pool), fx, audit, w.logger, loc)
	shipments := tracking.NewService(tracking.NewRepository(w.pool), audit, w.logger, loc)

	type entry struct {
		screen string
		source listviewhttp.Source
		mount  func(*listviewhttp.Handler) app.Mounter
	}
	entries := []entry{
		{screens.Bookings, bookings, func(l *listviewhttp.Handler) app.Mounter { return booking.NewHandler(w.logger, bookings, l) }},
		{screens.Quotes, quotes, func(l *listviewhttp.Handler) app.Mounter { return quote.NewHandler(w.logger, quotes, l) }},
		{screens.Schedules, schedules, func(l *listviewhttp.Handler) app.Mounter { return schedule.NewHandler(w.logger, schedules, l) }},
		{screens.BillsOfLading, bills, func(l *listviewhttp.Handler) app.Mounter { return billoflading.NewHandler(w.logger, bills, l) }},
		{screens.CustomsDeclarations, declarations, func(l *listviewhttp.Handler) app.Mounter { return customs.NewHandler(w.logger, declarations, l) }},
		{screens.Invoices, invoices, func(l *listviewhttp.Handler) app.Mounter { return billing.NewHandler(w.logger, invoices, l) }},
		{screens.Shipments, shipments, func(l *listviewhttp.Handler) app.Mounter { return tracking.NewHandler(w.logger, shipments, l) }},
	}

	routes := make([]app.Route, 0, len(entries)+1)
	for _, e := range entries {
		l, err := list(e.screen, e.source)
		if err != nil {
			return nil, err
		}
		routes = append(routes, app.Route{Path: "/" + e.screen, Handler: e.mount(l)})
	}
	routes = append(routes, app.Route{Path: "/exchange-rates", Handler: exchangerate.NewHandler(w.logger, fx)})
	return routes, nil
}
