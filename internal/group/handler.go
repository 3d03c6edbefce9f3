package group

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/settlement"
)

// Handler exposes group endpoints.
type Handler struct {
	service      *Service
	baseCurrency string
}

// NewHandler constructs a group handler.
func NewHandler(service *Service, baseCurrency string) *Handler {
	return &Handler{service: service, baseCurrency: baseCurrency}
}

func statusFor(err error) *fiber.Error {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return fiber.NewError(http.StatusNotFound, "group not found")
	case errors.Is(err, ErrNotMember):
		return fiber.NewError(http.StatusForbidden, "not a group member")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

type createRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Create opens a new group owned by the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	g, err := h.service.Create(c.UserContext(), CreateInput{
		Name:      req.Name,
		Members:   req.Members,
		CreatedBy: uid,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"group_id":   g.ID,
		"name":       g.Name,
		"members":    g.Members,
		"created_at": g.CreatedAt,
	})
}

// List returns the groups the authenticated user belongs to.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	groups, err := h.service.List(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// Get returns one group if the caller is a member.
func (h *Handler) Get(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	g, err := h.service.Get(c.UserContext(), uid, c.Params("groupId"))
	if err != nil {
		return statusFor(err)
	}
	return c.JSON(g)
}

type addMembersRequest struct {
	Members []string `json:"members"`
}

// AddMembers appends users to a group's member list.
func (h *Handler) AddMembers(c *fiber.Ctx) error {
	var req addMembersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	g, err := h.service.AddMembers(c.UserContext(), uid, c.Params("groupId"), req.Members)
	if err != nil {
		return statusFor(err)
	}
	return c.JSON(fiber.Map{"group_id": g.ID, "members": g.Members})
}

// Expenses lists the group's expenses.
func (h *Handler) Expenses(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	expenses, err := h.service.Expenses(c.UserContext(), uid, c.Params("groupId"))
	if err != nil {
		return statusFor(err)
	}
	return c.JSON(fiber.Map{"expenses": expenses})
}

// Balances reports each member's net position in the requested currency.
func (h *Handler) Balances(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	base := c.Query("currency", h.baseCurrency)

	balances, err := h.service.Balances(c.UserContext(), uid, c.Params("groupId"), base)
	if err != nil {
		if errors.Is(err, settlement.ErrConversionFailed) {
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		}
		return statusFor(err)
	}
	return c.JSON(fiber.Map{"balances": balances, "currency": base})
}

// Plan returns the simplified settlement plan for the group.
func (h *Handler) Plan(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	base := c.Query("currency", h.baseCurrency)

	plan, summary, err := h.service.Plan(c.UserContext(), uid, c.Params("groupId"), base)
	if err != nil {
		if errors.Is(err, settlement.ErrConversionFailed) {
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		}
		return statusFor(err)
	}
	return c.JSON(fiber.Map{"settlements": plan, "summary": summary, "currency": base})
}

type settleRequest struct {
	FromUserID string  `json:"from_user_id"`
	ToUserID   string  `json:"to_user_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Note       string  `json:"note"`
}

// Settle records a pending settlement between two members.
func (h *Handler) Settle(c *fiber.Ctx) error {
	var req settleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	rec, err := h.service.Settle(c.UserContext(), uid, c.Params("groupId"), SettleInput{
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Note:       req.Note,
	})
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) || errors.Is(err, ErrNotMember) {
			return statusFor(err)
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"settlement_id": rec.ID,
		"status":        rec.Status,
		"created_at":    rec.CreatedAt,
	})
}
