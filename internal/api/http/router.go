package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Tickets *handlers.TicketsHandler
	Users   *handlers.UsersHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard") })
	app.Get(auth.LoginPath, cfg.Auth.LoginPage)
	app.Post(auth.LoginPath, cfg.Auth.Login)

	requireAuth := auth.RequireAuthenticated()
	app.Get("/logout", requireAuth, cfg.Auth.Logout)
	app.Get("/dashboard", requireAuth, cfg.Tickets.Dashboard)
	app.Get("/settings", requireAuth, cfg.Users.Settings)

	tickets := app.Group("/ticket", requireAuth)
	tickets.Get("/create", cfg.Tickets.CreatePage)
	tickets.Post("/create", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.View)
	tickets.Post("/:id/:action", cfg.Tickets.Action)

	users := app.Group("/user", requireAuth)
	users.Post("/create", cfg.Users.Create)
	users.Post("/delete", cfg.Users.Delete)
	users.Post("/update", cfg.Users.SelfUpdate)

	admin := app.Group("/admin", requireAuth, auth.RequireAdmin())
	admin.Get("/createUser", cfg.Users.CreatePage)
	admin.Post("/createUser", cfg.Users.Create)
	admin.Get("/deleteUser", cfg.Users.DeletePage)
	admin.Post("/deleteUser", cfg.Users.Delete)
	admin.Get("/updateUser", cfg.Users.UpdatePage)
	admin.Post("/updateUser", cfg.Users.Update)
	admin.Get("/listUsers", cfg.Users.List)
}
