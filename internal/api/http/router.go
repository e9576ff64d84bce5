package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sea-catering/storefront/internal/api/http/handlers"
	"github.com/sea-catering/storefront/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Subscriptions  *handlers.SubscriptionsHandler
	Payments       *handlers.PaymentsHandler
	Testimonials   *handlers.TestimonialsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)
	api.Get("/testimonials", cfg.Testimonials.List)
	// authenticated by signature, not by bearer token
	api.Post("/payments/notification", cfg.Payments.Notification)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Auth.Me)
	protected.Post("/subscribe", cfg.Subscriptions.Subscribe)
	protected.Get("/subscriptions", cfg.Subscriptions.List)
	protected.Put("/subscriptions/:id/status", cfg.Subscriptions.UpdateStatus)
	protected.Post("/subscriptions/:id/create-payment", cfg.Subscriptions.CreatePayment)
	protected.Post("/subscriptions/:id/ai-recommendation", cfg.Subscriptions.Recommend)
	protected.Post("/testimonials", cfg.Testimonials.Create)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/dashboard-stats", cfg.Admin.DashboardStats)
}
