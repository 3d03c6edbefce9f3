package friend

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes friend endpoints.
type Handler struct {
	service      *Service
	baseCurrency string
}

// NewHandler constructs a friend handler.
func NewHandler(service *Service, baseCurrency string) *Handler {
	return &Handler{service: service, baseCurrency: baseCurrency}
}

type addRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	UPIID string `json:"upi_id"`
}

// Add appends a friend to the authenticated user's list.
func (h *Handler) Add(c *fiber.Ctx) error {
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	f, err := h.service.Add(c.UserContext(), AddInput{
		OwnerID: uid,
		Name:    req.Name,
		Email:   req.Email,
		UPIID:   req.UPIID,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"friend_id":  f.ID,
		"name":       f.Name,
		"created_at": f.CreatedAt,
	})
}

// List returns the authenticated user's friends.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	friends, err := h.service.List(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// Balance reports the net position between the user and one friend.
func (h *Handler) Balance(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	base := c.Query("currency", h.baseCurrency)
	balance, err := h.service.Balance(c.UserContext(), uid, c.Params("friendId"), base)
	if err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			return fiber.NewError(http.StatusNotFound, "friend not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"friend_id": c.Params("friendId"), "balance": balance, "currency": base})
}

// Remove deletes a friend entry.
func (h *Handler) Remove(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	if err := h.service.Remove(c.UserContext(), uid, c.Params("friendId")); err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			return fiber.NewError(http.StatusNotFound, "friend not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
