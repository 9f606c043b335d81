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

	httpapi "github.com/aussiebroadwan/roster/internal/roster/http"
	"github.com/aussiebroadwan/roster/internal/roster/notify"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/otelx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the roster service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db           store.Store
	keyManager   *jwtx.KeyManager
	dispatcher   *notify.Dispatcher
	otelShutdown func(context.Context) error
	invitePolicy service.InvitePolicy
	identities   *service.LocalIdentityProvider
	memberships  *service.MembershipService
	invitations  *service.InvitationService
	housekeeping *service.HousekeepingService
	server       *http.Server
	router       *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "roster",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	policy, err := service.ParseInvitePolicy(cfg.InvitePolicy)
	if err != nil {
		return nil, err
	}
	app.invitePolicy = policy

	// Set pepper path for password hashing and token derivation
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initKeys(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}

	shutdown, err := otelx.Setup(context.Background(), otelx.Config{
		ServiceName:    "roster",
		ServiceVersion: BuildVersion,
		Endpoint:       cfg.OtelEndpoint,
		Enabled:        cfg.OtelEnabled,
	})
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.otelShutdown = shutdown

	app.initNotify()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.dispatcher.Start()
	app.housekeeping.Start()

	app.logger.Info("roster service starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("invite_policy", string(app.invitePolicy)),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains HTTP traffic, then stops background workers and closes
// the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down roster service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeeping.Stop()

	// Pending emails get whatever is left of the grace period.
	if err := app.dispatcher.Stop(ctx); err != nil {
		app.logger.Warn("notification queue not drained", slog.Any("error", err))
	}

	if err := app.otelShutdown(ctx); err != nil {
		app.logger.Warn("tracing shutdown failed", slog.Any("error", err))
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("roster service stopped")
	return nil
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully",
		slog.String("file", app.cfg.DatabaseFile))
	return nil
}

// initKeys loads the session signing keys from the database, generating and
// storing one when none can sign. The master key file seals them at rest.
func (app *Application) initKeys(ctx context.Context) error {
	cryptox.SetMasterKeyPath(app.cfg.MasterKeyFile)

	keyManager, err := jwtx.NewPersistentKeyManager(ctx, jwtx.PersistentKeyManagerOptions{
		Store:       store.NewKeyStoreAdapter(app.db),
		Issuer:      app.cfg.Issuer,
		KeyTTL:      app.cfg.SigningKeyTTL,
		GracePeriod: app.cfg.SigningKeyGrace,
	})
	if err != nil {
		return err
	}
	app.keyManager = keyManager

	app.logger.Info("signing keys loaded",
		slog.String("kid", keyManager.Signer.KID()),
		slog.Int("verification_keys", len(keyManager.KeySet.PublicJWKS().Keys)))
	return nil
}

// initNotify picks the mail transport. Without an SMTP host, invitation
// emails are written to the log.
func (app *Application) initNotify() {
	var sender notify.Sender = notify.LogSender{Logger: app.logger}
	if app.cfg.SMTP.Host != "" {
		sender = notify.NewSMTPSender(app.cfg.SMTP)
		app.logger.Info("smtp delivery enabled",
			slog.String("host", app.cfg.SMTP.Host),
			slog.Int("port", app.cfg.SMTP.Port))
	} else {
		app.logger.Warn("ROSTER_SMTP_HOST not set, invitation emails will only be logged")
	}

	app.dispatcher = notify.NewDispatcher(sender, app.logger, app.cfg.Notify)
}

func (app *Application) initServices() {
	app.identities = &service.LocalIdentityProvider{
		Store:                 app.db,
		Signer:                app.keyManager.Signer,
		Issuer:                app.cfg.Issuer,
		RequireConfirmedEmail: app.cfg.RequireConfirmedEmail,
	}
	app.memberships = &service.MembershipService{Store: app.db}
	app.invitations = &service.InvitationService{
		Store:       app.db,
		Memberships: app.memberships,
		Identities:  app.identities,
		Notifier:    app.dispatcher,
		BaseURL:     app.cfg.BaseURL,
		TTL:         app.cfg.InvitationTTL,
		Policy:      app.invitePolicy,
	}

	app.housekeeping = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.InvitationRetention,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.RateLimits,
	)

	router.Identities = app.identities
	router.Memberships = app.memberships
	router.Invitations = app.invitations
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
