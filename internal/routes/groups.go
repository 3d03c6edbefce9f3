package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/group"
)

// RegisterGroupRoutes wires group and group settlement endpoints.
func RegisterGroupRoutes(r fiber.Router, h *group.Handler) {
	r.Post("/groups", h.Create)
	r.Get("/groups", h.List)
	r.Get("/groups/:groupId", h.Get)
	r.Post("/groups/:groupId/members", h.AddMembers)
	r.Get("/groups/:groupId/expenses", h.Expenses)
	r.Get("/groups/:groupId/balances", h.Balances)
	r.Get("/groups/:groupId/settlements/plan", h.Plan)
	r.Post("/groups/:groupId/settlements", h.Settle)
}
