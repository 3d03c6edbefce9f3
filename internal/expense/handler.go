package expense

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes expense endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an expense handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	GroupID      string   `json:"group_id"`
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency"`
	Category     string   `json:"category"`
	PayerID      string   `json:"payer_id"`
	Participants []string `json:"participants"`
	Shares       []Share  `json:"shares"`
}

// Create records a new shared expense.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	payer := req.PayerID
	if payer == "" {
		payer = uid
	}

	exp, err := h.service.Create(c.UserContext(), CreateInput{
		GroupID:      req.GroupID,
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Category:     req.Category,
		PayerID:      payer,
		Participants: req.Participants,
		Shares:       req.Shares,
		CreatedBy:    uid,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"expense_id": exp.ID,
		"category":   exp.Category,
		"shares":     exp.Shares,
		"created_at": exp.CreatedAt,
	})
}

// List returns the expenses visible to the authenticated user.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	expenses, err := h.service.ListByUser(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"expenses": toResponses(expenses)})
}

// Get fetches one expense.
func (h *Handler) Get(c *fiber.Ctx) error {
	exp, err := h.service.Get(c.UserContext(), c.Params("expenseId"))
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			return fiber.NewError(http.StatusNotFound, "expense not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(toResponse(exp))
}

type response struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"group_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	PayerID     string  `json:"payer_id"`
	Shares      []Share `json:"shares"`
	CreatedAt   int64   `json:"created_at"`
}

func toResponse(e Expense) response {
	return response{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    e.Category,
		PayerID:     e.PayerID,
		Shares:      e.Shares,
		CreatedAt:   e.CreatedAt.Unix(),
	}
}

func toResponses(expenses []Expense) []response {
	out := make([]response, len(expenses))
	for i, e := range expenses {
		out[i] = toResponse(e)
	}
	return out
}
