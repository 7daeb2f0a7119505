package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/queue-service/internal/api/http/handlers"
	"github.com/spec-kit/queue-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Queue          *handlers.QueueHandler
	Feedback       *handlers.FeedbackHandler
	Stats          *handlers.StatsHandler
	Auth           *handlers.AuthHandler
	WS             *handlers.WSHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use("/ws", cfg.WS.Upgrade)
	app.Get("/ws", cfg.WS.Serve())

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/check", cfg.AuthMiddleware.Handle, cfg.Auth.Check)

	queue := api.Group("/queue")
	queue.Post("/join", cfg.Queue.Join)
	queue.Get("/current", cfg.Queue.Current)
	queue.Post("/call-next", cfg.AuthMiddleware.Handle, cfg.Queue.CallNext)
	queue.Post("/complete", cfg.AuthMiddleware.Handle, cfg.Queue.Complete)
	queue.Post("/cancel", cfg.AuthMiddleware.Handle, cfg.Queue.Cancel)

	api.Get("/student/status/:queueNumber", cfg.Queue.Status)

	feedback := api.Group("/feedback")
	feedback.Post("/submit", cfg.Feedback.Submit)
	feedback.Post("/skip", cfg.Feedback.Skip)
	feedback.Get("/all", cfg.AuthMiddleware.Handle, cfg.Feedback.ListAll)

	api.Get("/transactions", cfg.AuthMiddleware.Handle, cfg.Stats.Transactions)
	api.Get("/stats", cfg.Stats.Overview)
}
