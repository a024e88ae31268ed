package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/handlers"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/metrics"
	"github.com/veinsight/portal-backend/internal/middleware"
	"github.com/veinsight/portal-backend/internal/portal"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	sessionHandler *handlers.SessionHandler,
	healthHandler *handlers.HealthHandler,
	roles identity.RoleDirectory,
	collector *metrics.Collector,
	modules []portal.Module,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
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

	// Protected auth routes; middleware applied per route so the public
	// auth routes above stay public.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Session surface: any authenticated user, role not required. A roleless
	// account still resolves here (role null), it just can't enter any area.
	api.Get("/session", middleware.JWTProtected(cfg), sessionHandler.Get)
	api.Get("/session/stream", middleware.JWTProtected(cfg), sessionHandler.Stream)
	api.Get("/navigation", middleware.JWTProtected(cfg), sessionHandler.Navigation)

	// Portal areas. Role-gated areas get JWT plus the role guard; public
	// areas (the disease library) mount without either.
	for _, m := range modules {
		allowed := m.AllowedRoles()
		var group fiber.Router
		if len(allowed) == 0 {
			group = api.Group("/" + m.ID())
		} else {
			group = api.Group("/"+m.ID(),
				middleware.JWTProtected(cfg),
				middleware.RoleRequired(roles, collector, allowed...),
			)
		}
		m.RegisterRoutes(group, db, cfg)
	}
}
