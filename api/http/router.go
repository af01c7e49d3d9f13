package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/rirekisho/api/http/handlers"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	Chat   *handlers.ChatHandler
	Resume *handlers.ResumeHandler
}

// Register wires all HTTP routes onto given Fiber app.
// requireAuth guards every route that acts on behalf of a user.
func Register(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	chat := v1.Group("/chat", requireAuth)
	chat.Post("/start", h.Chat.Start)
	chat.Post("/restart", h.Chat.Restart)
	chat.Get("/sessions", h.Chat.ListSessions)
	chat.Post("/sessions", h.Chat.CreateSession)
	chat.Get("/sessions/:id", h.Chat.GetSession)
	chat.Put("/sessions/:id", h.Chat.UpdateSession)
	chat.Delete("/sessions/:id", h.Chat.DeleteSession)
	chat.Post("/sessions/:id/messages", h.Chat.AppendMessage)
	chat.Post("/sessions/:id/turns", h.Chat.Turn)

	rg := v1.Group("/resume", requireAuth)
	rg.Get("/", h.Resume.Get)
	rg.Post("/import", h.Resume.Import)
}
