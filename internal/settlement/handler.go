package settlement

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes settlement record endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a settlement handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get fetches one settlement record the caller is allowed to see.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	record, err := h.service.Get(c.UserContext(), uid, c.Params("settlementId"))
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return fiber.NewError(http.StatusNotFound, "settlement not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(record)
}

// Complete confirms payment for a pending settlement.
func (h *Handler) Complete(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	record, err := h.service.Complete(c.UserContext(), uid, c.Params("settlementId"))
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return fiber.NewError(http.StatusNotFound, "settlement not found or already completed")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"settlement_id": record.ID,
		"status":        record.Status,
		"settled_at":    record.SettledAt,
	})
}
