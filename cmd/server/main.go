package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/henry215/partyrsvp/internal/config"
	"github.com/henry215/partyrsvp/internal/database"
	"github.com/henry215/partyrsvp/internal/handlers"
	"github.com/henry215/partyrsvp/internal/logging"
	"github.com/henry215/partyrsvp/internal/middleware"
	"github.com/henry215/partyrsvp/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("Starting Party RSVP server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	guestService := services.NewGuestService(dbAdapter)
	settingsService := services.NewSettingsService(dbAdapter, redisAdapter)
	notificationService := services.NewNotificationService(&cfg.Email, cfg.Party.BaseURL)
	rsvpService := services.NewRSVPService(guestService, settingsService, notificationService,
		cfg.Party.AdminEmail, cfg.Party.SecondaryEmail)
	adminAuthService := services.NewAdminAuthService(redisAdapter, cfg.Admin.PasswordHash)

	if cfg.Admin.PasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set; admin login is disabled")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(adminAuthService, cfg.Server.Secure)
	rsvpHandler := handlers.NewRSVPHandler(rsvpService, guestService, settingsService)
	guestHandler := handlers.NewGuestHandler(guestService, cfg.Party.BaseURL)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	pageHandler, err := handlers.NewPageHandler("web/templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(adminAuthService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)
	rsvpLimiter := middleware.NewRSVPRateLimiter(redisDB.Client)
	loginLimiter := middleware.NewLoginRateLimiter(redisDB.Client)

	requireAdmin := authMiddleware.RequireAdmin

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Guest-facing API
	mux.HandleFunc("GET /api/invitation/{id}", rsvpHandler.Invitation)
	mux.Handle("POST /api/rsvp", rsvpLimiter.Limit(http.HandlerFunc(rsvpHandler.SubmitRSVP)))
	mux.Handle("POST /api/rsvp/contact", rsvpLimiter.Limit(http.HandlerFunc(rsvpHandler.SubmitContact)))
	mux.Handle("POST /api/rsvp/skip-contact", rsvpLimiter.Limit(http.HandlerFunc(rsvpHandler.SkipContact)))
	mux.Handle("POST /api/send-rsvp-notification", rsvpLimiter.Limit(http.HandlerFunc(rsvpHandler.SendNotification)))

	// Admin auth
	mux.Handle("POST /api/admin/login", loginLimiter.Limit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/admin/me", authHandler.Me)

	// Admin guest management
	mux.Handle("GET /api/admin/guests", requireAdmin(http.HandlerFunc(guestHandler.List)))
	mux.Handle("POST /api/admin/guests", requireAdmin(http.HandlerFunc(guestHandler.Create)))
	mux.Handle("DELETE /api/admin/guests", requireAdmin(http.HandlerFunc(guestHandler.BulkDelete)))
	mux.Handle("GET /api/admin/guests/{id}", requireAdmin(http.HandlerFunc(guestHandler.Get)))
	mux.Handle("PUT /api/admin/guests/{id}", requireAdmin(http.HandlerFunc(guestHandler.Update)))
	mux.Handle("DELETE /api/admin/guests/{id}", requireAdmin(http.HandlerFunc(guestHandler.Delete)))
	mux.Handle("GET /api/admin/guests/{id}/qr", requireAdmin(http.HandlerFunc(guestHandler.QRCode)))

	// Admin settings
	mux.Handle("GET /api/admin/settings", requireAdmin(http.HandlerFunc(settingsHandler.Get)))
	mux.Handle("PUT /api/admin/settings", requireAdmin(http.HandlerFunc(settingsHandler.Update)))
	mux.Handle("POST /api/admin/settings/refresh", requireAdmin(http.HandlerFunc(settingsHandler.Refresh)))
	mux.Handle("POST /api/admin/email/test", requireAdmin(http.HandlerFunc(notificationHandler.TestEmail)))

	// Static files
	fs := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))

	// Pages
	mux.HandleFunc("GET /admin/dashboard", pageHandler.AdminDashboard)
	mux.HandleFunc("GET /admin/guest/{id}", pageHandler.AdminGuest)
	mux.HandleFunc("GET /{id}", pageHandler.Invitation)
	mux.HandleFunc("GET /{$}", pageHandler.NotFound)

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
