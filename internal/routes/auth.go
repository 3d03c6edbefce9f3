package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/auth"
)

// RegisterAuthRoutes wires registration and session endpoints. Logout needs a
// valid access token since it invalidates the caller's own sessions.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter, jwtmw fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/refresh", h.Refresh)
	group.Post("/logout", jwtmw, h.Logout)
}
