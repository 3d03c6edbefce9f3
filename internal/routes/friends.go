package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/friend"
)

// RegisterFriendRoutes wires friend list endpoints.
func RegisterFriendRoutes(r fiber.Router, h *friend.Handler) {
	r.Post("/friends", h.Add)
	r.Get("/friends", h.List)
	r.Get("/friends/:friendId/balance", h.Balance)
	r.Delete("/friends/:friendId", h.Remove)
}
