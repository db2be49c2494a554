package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpapi "github.com/heymumma/heymumma/internal/account/http"
	"github.com/heymumma/heymumma/internal/account/metrics"
	"github.com/heymumma/heymumma/internal/account/service"
	"github.com/heymumma/heymumma/internal/account/store"
	"github.com/heymumma/heymumma/internal/account/store/drivers/sqlite"
	"github.com/heymumma/heymumma/internal/predict"
	"github.com/heymumma/heymumma/pkg/cryptox"
	"github.com/heymumma/heymumma/pkg/jwtx"
	"github.com/heymumma/heymumma/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the account service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	maternal   *predict.Model
	fetal      *predict.Model

	// Services
	accountService      *service.AccountService
	sessionService      *service.SessionService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "heymumma",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
	})
}

// OpenStore makes the database ready for use. An ErrStoreUnavailable from
// here means the service cannot start.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (*sqlite.Store, error) {
	cryptox.SetPepperPath(cfg.PepperFile)

	st := sqlite.NewStore(cfg.DatabaseFile, sqlite.Options{
		RecreateAttempts: cfg.StoreRecreateAttempts,
		RecreatePause:    cfg.StoreRecreatePause,
		Logger:           logger,
	})
	if err := st.EnsureReady(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("account store %s: %w", cfg.DatabaseFile, err)
	}

	logger.Info("account store ready", "file", cfg.DatabaseFile, "schema_mode", st.Mode())
	return st, nil
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	db, err := OpenStore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initModels(); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.initMetrics()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until ctx is done or a shutdown
// signal arrives.
func (app *Application) Run(ctx context.Context) error {
	app.housekeepingService.Start()

	app.logger.Info("heymumma starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down heymumma...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("heymumma stopped")
	return nil
}

func (app *Application) initModels() error {
	maternal, fetal, err := predict.LoadModels(app.cfg.MaternalModel, app.cfg.FetalModel)
	if err != nil {
		return fmt.Errorf("failed to load prediction models: %w", err)
	}
	app.maternal, app.fetal = maternal, fetal

	app.logger.Info("prediction models",
		"maternal", maternal != nil,
		"fetal", fetal != nil,
	)
	return nil
}

func (app *Application) initMetrics() {
	reg := metrics.NewRegistry()
	app.registry = reg
	app.metrics = metrics.New(reg)
	app.metrics.SetSchemaMode(string(app.db.Mode()))
}

func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:   app.db,
		Metrics: app.metrics,
	}
	app.sessionService = &service.SessionService{
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		TTL:        jwtx.DefaultAccessTokenTTL,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.metrics,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.MaternalModel = app.maternal
	router.FetalModel = app.fetal
	router.Metrics = app.metrics
	router.Gatherer = app.registry
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
