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

	"github.com/lanternsec/fusionkit/internal/stubidp/domain"
	httpapi "github.com/lanternsec/fusionkit/internal/stubidp/http"
	"github.com/lanternsec/fusionkit/internal/stubidp/service"
	"github.com/lanternsec/fusionkit/internal/stubidp/store"
	"github.com/lanternsec/fusionkit/internal/stubidp/store/drivers/sqlite"
	"github.com/lanternsec/fusionkit/pkg/cryptox"
	"github.com/lanternsec/fusionkit/pkg/jwtx"
	"github.com/lanternsec/fusionkit/pkg/slogx"

	"github.com/google/uuid"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the stub identity provider with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Provider identifiers, resolved from config > kickstart > generated.
	apiKey        string
	tenantID      string
	applicationID string
	jwtSecret     string

	// Core dependencies
	db        store.Store
	kickstart *domain.Kickstart

	// Services
	tokenService        *service.TokenService
	loginService        *service.LoginService
	registrationService *service.RegistrationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "stubidp",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Pepper must be installed before the first password hash, which can
	// happen as early as the kickstart seed.
	cryptox.SetPepper(cfg.Pepper)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Kickstart is read before identifier resolution because it may pin the
	// API key, tenant and application ids.
	if err := app.loadKickstart(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.resolveIdentifiers()

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	// Seed users can only be created once the services exist.
	if app.kickstart != nil {
		seed := &service.SeedService{Store: app.db}
		ctx := slogx.WithContext(context.Background(), app.logger)
		if err := seed.Apply(ctx, app.kickstart); err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to apply kickstart: %w", err)
		}
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("stub identity provider starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"issuer", app.cfg.Issuer,
	)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down stub identity provider...")

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

	app.logger.Info("stub identity provider stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
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

// loadKickstart parses the kickstart document when one is configured.
func (app *Application) loadKickstart() error {
	if app.cfg.KickstartFile == "" {
		return nil
	}

	ks, err := service.LoadKickstart(app.cfg.KickstartFile)
	if err != nil {
		return fmt.Errorf("failed to load kickstart: %w", err)
	}
	app.kickstart = ks

	app.logger.Info("kickstart loaded", "file", app.cfg.KickstartFile, "users", len(ks.Users))
	return nil
}

// resolveIdentifiers settles the provider identifiers callers must present.
// Environment beats kickstart beats generation. Generated values are logged
// raw at WARN: an unconfigured instance is a dev instance, and its callers
// need the values to connect at all. Configured values are never logged.
func (app *Application) resolveIdentifiers() {
	var ks domain.Kickstart
	if app.kickstart != nil {
		ks = *app.kickstart
	}

	app.apiKey = firstNonEmpty(app.cfg.APIKey, ks.APIKey)
	if app.apiKey == "" {
		app.apiKey = uuid.NewString()
		app.logger.Warn("no API key configured, generated one for this run", "api_key", app.apiKey)
	}

	app.tenantID = firstNonEmpty(app.cfg.TenantID, ks.TenantID)
	if app.tenantID == "" {
		app.tenantID = uuid.NewString()
		app.logger.Warn("no tenant id configured, generated one for this run", "tenant_id", app.tenantID)
	}

	app.applicationID = firstNonEmpty(app.cfg.ApplicationID, ks.ApplicationID)
	if app.applicationID == "" {
		app.applicationID = uuid.NewString()
		app.logger.Warn("no application id configured, generated one for this run", "application_id", app.applicationID)
	}

	// The signing secret is the one identifier never pinned by kickstart.
	// Generating a fresh one each run invalidates tokens across restarts,
	// which is acceptable for a dev instance and exactly why configuring it
	// matters for anything longer-lived.
	app.jwtSecret = app.cfg.JWTSecret
	if app.jwtSecret == "" {
		app.jwtSecret = cryptox.MustGenerateToken(cryptox.TokenSize256)
		app.logger.Warn("no JWT secret configured, generated one for this run; tokens will not survive a restart")
	}
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.jwtSecret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(app.jwtSecret), 30*time.Second, app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.tokenService = &service.TokenService{
		Store:         app.db,
		Signer:        signer,
		Verifier:      verifier,
		Issuer:        app.cfg.Issuer,
		ApplicationID: app.applicationID,
		TenantID:      app.tenantID,
		AccessTTL:     app.cfg.AccessTokenTTL,
		RefreshTTL:    app.cfg.RefreshTokenTTL,
	}

	app.loginService = &service.LoginService{
		Store:             app.db,
		Tokens:            app.tokenService,
		MaxFailedAttempts: app.cfg.MaxFailedAttempts,
		LockoutDuration:   app.cfg.LockoutDuration,
	}

	app.registrationService = &service.RegistrationService{
		Store:             app.db,
		Tokens:            app.tokenService,
		MinPasswordLength: app.cfg.MinPasswordLength,
		DefaultRoles:      []string{"user"},
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.apiKey,
		app.tenantID,
		app.applicationID,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.LoginService = app.loginService
	router.RegistrationService = app.registrationService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
