package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Moderation   *handlers.ModerationHandler
	Media        *handlers.MediaHandler
	Notification *handlers.NotificationHandler
	Trust        *handlers.TrustHandler
	Contact      *handlers.ContactHandler
	Pages        *handlers.PagesHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	recorder middleware.ActivityRecorder,
	h Handlers,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Pages (public)
	api.Get("/pages/terms", h.Pages.Terms)
	api.Get("/pages/privacy", h.Pages.Privacy)
	api.Get("/pages/faqs", h.Pages.FAQs)
	api.Get("/pages/social-links", h.Pages.SocialLinks)

	api.Post("/contact", h.Contact.Submit)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Get("/username/:username", h.Auth.CheckUsername)

	// Protected routes: JWT, active account and activity tracking, applied
	// per route so public routes sharing a prefix stay public.
	jwt := middleware.JWTProtected(cfg)
	active := middleware.ActiveUser(db)
	track := middleware.TrackActivity(recorder)

	api.Post("/auth/logout", jwt, active, track, h.Auth.Logout)
	api.Get("/me", jwt, active, track, h.Auth.Me)
	api.Put("/me/avatar", jwt, active, track, h.Media.UploadAvatar)

	api.Post("/reports/:kind/:id", jwt, active, track, h.Moderation.CreateReport)
	api.Post("/comments/:kind/:id", jwt, active, track, h.Moderation.CreateComment)
	api.Get("/comments/:kind/:id", h.Moderation.ListComments)
	api.Get("/media/:kind/:id", h.Media.List)

	api.Get("/notifications", jwt, active, track, h.Notification.List)
	api.Get("/notifications/unread", jwt, active, track, h.Notification.Unread)
	api.Get("/notifications/:id/redirect", jwt, active, track, h.Notification.Redirect)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", jwt, active, track, middleware.AdminRequired(db, cfg))
	admin.Get("/reports", h.Moderation.ListReports)
	admin.Get("/comments", h.Moderation.ListAllComments)
	admin.Get("/content/:kind/:id", h.Moderation.ShowContent)
	admin.Get("/media", h.Media.Search)

	admin.Post("/notifications", h.Notification.Create)

	admin.Post("/users/:id/suspend", h.Trust.SuspendUser)
	admin.Get("/users/:id/ips", h.Trust.UserIPs)
	admin.Get("/users/:id/devices", h.Trust.UserDevices)
	admin.Get("/ips", h.Trust.ListIPs)
	admin.Post("/ips/:ip/block", h.Trust.BlockIP)
	admin.Post("/ips/:ip/suspicious", h.Trust.FlagIP)

	admin.Get("/contacts", h.Contact.List)
	admin.Put("/contacts/:id/status", h.Contact.SetStatus)
	admin.Put("/contacts/:id/notes", h.Contact.UpdateNotes)

	admin.Post("/pages/terms", h.Pages.PublishTerms)
	admin.Post("/pages/privacy", h.Pages.PublishPrivacy)
	admin.Post("/pages/faqs", h.Pages.CreateFAQ)
	admin.Post("/pages/social-links", h.Pages.CreateSocialLink)
}
