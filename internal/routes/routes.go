package routes

import (
	"time"

	"github.com/filipinasabroad/abroad-backend/internal/config"
	"github.com/filipinasabroad/abroad-backend/internal/handlers"
	"github.com/filipinasabroad/abroad-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	swipeHandler *handlers.SwipeHandler,
	applicationHandler *handlers.ApplicationHandler,
	catalogHandler *handlers.CatalogHandler,
	assistantHandler *handlers.AssistantHandler,
	adminHandler *handlers.AdminHandler,
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

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Discovery — public so guests can browse and swipe before signing up.
	// Guests are identified by the X-Device-ID header.
	api.Get("/programs", catalogHandler.ListPrograms)
	api.Get("/accommodations", catalogHandler.ListAccommodations)
	api.Get("/visa", catalogHandler.ListVisaRequirements)
	api.Post("/swipes", swipeHandler.Record)

	// Everything below requires a signed-in user.
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Get("/profile", profileHandler.Get)
	protected.Put("/profile", profileHandler.Update)

	protected.Get("/applications", applicationHandler.List)
	protected.Post("/applications", applicationHandler.Save)
	protected.Patch("/applications", applicationHandler.Update)
	protected.Delete("/applications/:id", applicationHandler.Delete)
	protected.Get("/applications/:id/download", applicationHandler.Download)
	protected.Post("/applications/access-check", applicationHandler.CheckAccess)

	protected.Post("/referrals", catalogHandler.CreateReferral)
	protected.Get("/referrals", catalogHandler.ListReferrals)

	// Assistant rate limit: 20 req/min per IP, upstream calls are not free
	aiLimiter := limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	protected.Post("/assistant/chat", aiLimiter, assistantHandler.Chat)
	protected.Post("/cv/rewrite", aiLimiter, assistantHandler.RewriteCV)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/applications", adminHandler.ListApplications)
	admin.Patch("/applications", adminHandler.UpdateApplication)
	admin.Get("/applications/:id/download", adminHandler.DownloadApplication)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Patch("/users", adminHandler.UpdateUser)
}
