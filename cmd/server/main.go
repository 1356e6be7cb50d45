package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/geoip"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records are also persisted to system_logs
	dbLogHandler := logging.NewDBHandler(database.DB)
	logging.Setup(cfg.LogLevel, dbLogHandler)

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("media storage init failed", "backend", cfg.MediaBackend, "error", err)
		os.Exit(1)
	}

	mailer := mail.New(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	geo := geoip.NewClient(geoip.Config{
		BaseURL:  cfg.GeoIPURL,
		Timeout:  cfg.GeoIPTimeout,
		CacheTTL: cfg.GeoIPCacheTTL,
	})

	// Services
	registry := services.NewContentRegistry()
	mediaService := services.NewMediaService(database.DB, registry)
	uploadService := services.NewUploadService(store, cfg.MediaMaxDimension)
	trustService := services.NewTrustService(database.DB, geo)
	suspendCommand := services.NewSuspendAccountCommand(database.DB, mailer)
	authService := services.NewAuthService(database.DB, cfg, trustService, mediaService)
	moderationService := services.NewModerationService(database.DB, registry)
	notificationService := services.NewNotificationService(database.DB)
	contactService := services.NewContactService(database.DB)
	pagesService := services.NewPagesService(database.DB, mediaService, cfg.PagesCacheTTL)

	// Handlers
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, uploadService),
		Health:       handlers.NewHealthHandler(database.DB),
		Moderation:   handlers.NewModerationHandler(moderationService, cfg.DefaultRedirect),
		Media:        handlers.NewMediaHandler(mediaService, uploadService, authService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Trust:        handlers.NewTrustHandler(trustService, suspendCommand),
		Contact:      handlers.NewContactHandler(contactService),
		Pages:        handlers.NewPagesHandler(pagesService, uploadService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
		ProxyHeader:  cfg.ProxyHeader,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	if cfg.MediaBackend != "s3" {
		app.Static(cfg.MediaURL, cfg.MediaDir)
	}

	// Routes
	routes.Setup(app, cfg, database.DB, trustService, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := database.Close(database.DB); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.MediaBackend == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			PublicURL: cfg.S3PublicURL,
			UseSSL:    cfg.S3UseSSL,
		})
	}
	return storage.NewLocalStore(cfg.MediaDir, cfg.MediaURL), nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
