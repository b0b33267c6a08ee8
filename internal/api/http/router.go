package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-directory/internal/api/http/handlers"
	"github.com/spec-kit/shop-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Shops          *handlers.ShopsHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	loginChain := []fiber.Handler{cfg.Shops.Login}
	if cfg.LoginLimiter != nil {
		loginChain = append([]fiber.Handler{cfg.LoginLimiter}, loginChain...)
	}

	shops := app.Group("/api/shops")
	shops.Post("/register", cfg.Shops.BindRegister, cfg.Shops.ResolveCoordinates, cfg.Shops.Register)
	shops.Post("/login", loginChain...)
	shops.Get("/search/:shopName", cfg.Shops.Search)
	shops.Get("/allshops", cfg.Shops.AllShops)

	shops.Get("/nearme", cfg.AuthMiddleware.Handle, cfg.Shops.NearMe)
	shops.Put("/update", cfg.AuthMiddleware.Handle, cfg.Shops.Update)
	shops.Delete("/delete", cfg.AuthMiddleware.Handle, cfg.Shops.Delete)
}
