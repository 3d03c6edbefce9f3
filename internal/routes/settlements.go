package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/settlement"
)

// RegisterSettlementRoutes wires settlement record endpoints. Settlements are
// created through their group; these routes inspect and complete them.
func RegisterSettlementRoutes(r fiber.Router, h *settlement.Handler) {
	r.Get("/settlements/:settlementId", h.Get)
	r.Post("/settlements/:settlementId/complete", h.Complete)
}
