package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/currency"
)

// RegisterCurrencyRoutes exposes the supported currency catalog.
func RegisterCurrencyRoutes(r fiber.Router) {
	r.Get("/currencies", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"currencies": currency.Supported()})
	})
}
