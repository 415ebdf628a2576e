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

	httpapi "github.com/aussiebroadwan/pilotba/internal/auth/http"
	"github.com/aussiebroadwan/pilotba/internal/auth/service"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/pilotba/pkg/cryptox"
	"github.com/aussiebroadwan/pilotba/pkg/httpx"
	"github.com/aussiebroadwan/pilotba/pkg/jwtx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	keyring *jwtx.Keyring

	// Services
	tokenService        *service.TokenService
	userService         *service.UserService
	teamService         *service.TeamService
	permissionService   *service.PermissionService
	auditService        *service.AuditService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyring, err := InitAuthKeys(app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.keyring = keyring

	app.initServices()

	// Seed or promote the configured admin account before serving traffic,
	// so a fresh deployment is administrable from the first request.
	if err := app.seedAdmin(context.Background()); err != nil {
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
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

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Keyring:    app.keyring,
		Store:      app.db,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}

	app.userService = &service.UserService{Store: app.db}
	app.teamService = &service.TeamService{Store: app.db}
	app.permissionService = &service.PermissionService{Store: app.db}
	app.auditService = &service.AuditService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// seedAdmin ensures the configured admin account exists. A generated
// password is logged exactly once and never stored in the clear.
func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.AdminEmail == "" {
		return nil
	}

	ctx = slogx.WithContext(ctx, app.logger)
	generated, err := app.userService.EnsureAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminName, app.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	if generated != "" {
		app.logger.Warn("generated admin password, shown this once only",
			"email", app.cfg.AdminEmail,
			"password", generated,
		)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	// Register prometheus collectors before the first scrape
	httpx.InitMetrics()
	service.InitMetrics()

	router := httpapi.NewRouter(
		app.keyring.Verifier(jwtx.PurposeAccess),
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.TeamService = app.teamService
	router.PermissionService = app.permissionService
	router.AuditService = app.auditService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
