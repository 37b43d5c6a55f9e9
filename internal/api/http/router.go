package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/corazor/contact-service/internal/api/http/handlers"
	"github.com/corazor/contact-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Contact         *handlers.ContactHandler
	Admin           *handlers.AdminHandler
	AdminMiddleware *auth.AdminMiddleware
	// ContactLimiter guards the contact endpoint; nil disables rate limiting.
	ContactLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)

	contact := []fiber.Handler{cfg.Contact.Submit}
	if cfg.ContactLimiter != nil {
		contact = append([]fiber.Handler{cfg.ContactLimiter}, contact...)
	}
	api.Post("/contact", contact...)

	if !cfg.Admin.Enabled() || cfg.AdminMiddleware == nil {
		return
	}
	api.Post("/admin/login", cfg.Admin.Login)
	admin := api.Group("/admin", cfg.AdminMiddleware.Handle)
	admin.Get("/submissions", cfg.Admin.ListSubmissions)
	admin.Get("/submissions/:id", cfg.Admin.GetSubmission)
	admin.Get("/metrics", cfg.Admin.Metrics)
}
