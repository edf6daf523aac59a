package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/drinks-service/internal/api/http/handlers"
	"github.com/spec-kit/drinks-service/internal/auth"
)

// Route permissions. Each mutation endpoint declares exactly one required
// permission; the gate runs before the handler body.
const (
	PermGetDrinksDetail = "get:drinks-detail"
	PermPostDrinks      = "post:drinks"
	PermPatchDrinks     = "patch:drinks"
	PermDeleteDrinks    = "delete:drinks"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Drinks     *handlers.DrinksHandler
	Authorizer *auth.Authorizer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	gate := cfg.Authorizer

	app.Get("/drinks", cfg.Drinks.List)
	app.Get("/drinks-detail", gate.RequirePermission(PermGetDrinksDetail), cfg.Drinks.ListDetail)
	app.Post("/drinks", gate.RequirePermission(PermPostDrinks), cfg.Drinks.Create)
	app.Patch("/drinks/:id", gate.RequirePermission(PermPatchDrinks), cfg.Drinks.Update)
	app.Delete("/drinks/:id", gate.RequirePermission(PermDeleteDrinks), cfg.Drinks.Delete)
}
