package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/friend"
	"github.com/monez-app/monez/internal/upi"
)

// RegisterUPIRoutes wires UPI payment link generation. Links can target an
// arbitrary UPI id or a stored friend's.
func RegisterUPIRoutes(r fiber.Router, friends *friend.Service) {
	group := r.Group("/upi")

	group.Get("/link", func(c *fiber.Ctx) error {
		amount := c.QueryFloat("amount")
		link, err := upi.PaymentLink(c.Query("upi_id"), c.Query("name"), amount, c.Query("note"))
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"link":   link,
			"qr_url": upi.QRImageURL(link, c.QueryInt("size")),
		})
	})

	group.Get("/friends/:friendId/link", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)

		f, err := friends.Get(c.UserContext(), uid, c.Params("friendId"))
		if err != nil {
			return fiber.NewError(http.StatusNotFound, "friend not found")
		}
		if f.UPIID == "" {
			return fiber.NewError(http.StatusUnprocessableEntity, "friend has no UPI id")
		}

		amount := c.QueryFloat("amount")
		link, err := upi.PaymentLink(f.UPIID, f.Name, amount, c.Query("note"))
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"link":   link,
			"qr_url": upi.QRImageURL(link, c.QueryInt("size")),
		})
	})
}
