package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pekay23/raymond-gray-platform/internal/api/http/handlers"
	"github.com/pekay23/raymond-gray-platform/internal/auth"
	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Inquiries      *handlers.InquiriesHandler
	Jobs           *handlers.JobsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
	SignupLimiter  ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", ratelimit.Middleware(cfg.SignupLimiter), cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.ChangePassword)

	// Public contact intake.
	app.Post("/inquiries", cfg.Inquiries.Submit)

	admin := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.UserRoleAdmin))
	admin.Post("/users", cfg.Users.CreateUser)
	admin.Get("/inquiries", cfg.Inquiries.List)
	admin.Get("/inquiries/:id", cfg.Inquiries.Get)
	admin.Patch("/inquiries/:id/assign", cfg.Inquiries.Assign)
	admin.Post("/reports", cfg.Reports.Create)
	admin.Get("/reports", cfg.Reports.List)
	admin.Get("/reports/:id", cfg.Reports.Get)
	admin.Put("/reports/:id", cfg.Reports.Update)
	admin.Delete("/reports/:id", cfg.Reports.Delete)

	jobs := app.Group("/jobs", cfg.AuthMiddleware.Handle)
	jobs.Post("/arrival", auth.RequireAuthenticated(), cfg.Jobs.ConfirmArrival)

	tech := jobs.Group("", auth.RequireRole(domain.UserRoleTechnician))
	tech.Get("/", cfg.Jobs.List)
	tech.Post("/:id/start", cfg.Jobs.Start)
	tech.Post("/:id/complete", cfg.Jobs.Complete)
}
