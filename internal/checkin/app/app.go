package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/yokohama-dev/tsukuba/internal/checkin/http"
	"github.com/yokohama-dev/tsukuba/internal/checkin/service"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store/drivers/sqlite"
	"github.com/yokohama-dev/tsukuba/pkg/jwtx"
	"github.com/yokohama-dev/tsukuba/pkg/netx"
	"github.com/yokohama-dev/tsukuba/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the check-in service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer *jwtx.EdDSASigner

	// Services
	checkinService *service.CheckinService
	userService    *service.UserService
	sessionService *service.SessionService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "checkin-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("checkin service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down checkin service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("checkin service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSigner loads or generates the Ed25519 session signing key
func (app *Application) initSigner() error {
	key, err := jwtx.LoadOrGenerateKey(app.cfg.SessionKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load session key: %w", err)
	}

	signer, err := jwtx.NewEdDSASigner(key, app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.signer = signer

	if app.cfg.SessionKeyFile == "" {
		app.logger.Warn("using ephemeral session key, sessions will not survive restarts")
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	classifier, err := netx.NewClassifier(app.cfg.InternalNetworks)
	if err != nil {
		return fmt.Errorf("invalid internal networks: %w", err)
	}

	bucketer, err := service.NewBucketer(app.cfg.Timezone, classifier, app.cfg.InternalLocationID)
	if err != nil {
		return fmt.Errorf("failed to initialize bucketer: %w", err)
	}

	app.checkinService = &service.CheckinService{
		Store:     app.db,
		Bucketer:  bucketer,
		RateLimit: app.cfg.CheckinRateLimit,
	}
	app.userService = &service.UserService{Store: app.db}
	app.sessionService = &service.SessionService{
		Store:      app.db,
		Signer:     app.signer,
		SessionTTL: jwtx.DefaultSessionTTL,
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.CheckinService = app.checkinService
	router.UserService = app.userService
	router.SessionService = app.sessionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
