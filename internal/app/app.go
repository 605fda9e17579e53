package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/csytan/triplecrownforheart/internal/config"
	envconfig "github.com/csytan/triplecrownforheart/internal/config/env"
	"github.com/csytan/triplecrownforheart/internal/metrics"
	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/internal/transport/http/health"
	reqid "github.com/csytan/triplecrownforheart/internal/transport/http/middleware"
	"github.com/csytan/triplecrownforheart/platform/closer"
	"github.com/csytan/triplecrownforheart/platform/logger"
	"github.com/csytan/triplecrownforheart/platform/telemetry"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// Run serves HTTP and runs the reconcile job until ctx is done.
func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

// RunReconcileOnce runs a single reconcile cycle and shuts down.
func (a *app) RunReconcileOnce(ctx context.Context) (model.CycleReport, error) {
	defer gracefulShutdown()

	return a.di.ReconcileService(ctx).RunOnce(ctx)
}

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initTelemetry,
		a.initDI,
		a.initTables,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initTelemetry(_ context.Context) error {
	cfg := config.C().Sentry
	if err := telemetry.Init(cfg.DSN(), cfg.Environment(), cfg.Release()); err != nil {
		return err
	}
	closer.AddNamed("Sentry", func(context.Context) error {
		telemetry.Flush()
		return nil
	})
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initTables(ctx context.Context) error {
	if config.C().Ledger.Backend() != envconfig.BackendPostgres {
		return nil
	}

	if err := a.di.Migrator(ctx).Up(ctx); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.RequestID,
		reqid.RequestID,
		telemetry.Recoverer,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)

	a.di.IPNHandler(ctx).Routes(r)
	a.di.LedgerHandler(ctx).Routes(r)

	r.HandleFunc("/health", health.HealthCheck)
	r.Handle("/metrics", metrics.Handler())

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return a.di.ReconcileService(egCtx).Run(egCtx, config.C().Reconcile.Interval())
	})

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 triplecrown server listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(egCtx), config.C().Server.ShutdownTimeout())
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Stopped")
		return
	}
	logger.Info(ctx, "✅ Stopped")
}
