package routes

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/expense"
)

// RegisterExpenseRoutes wires expense and recurring expense endpoints.
func RegisterExpenseRoutes(r fiber.Router, h *expense.Handler, recurring *expense.RecurringService) {
	r.Post("/expenses", h.Create)
	r.Get("/expenses", h.List)
	r.Get("/expenses/:expenseId", h.Get)

	r.Post("/expenses/recurring", func(c *fiber.Ctx) error {
		var req struct {
			GroupID      string          `json:"group_id"`
			Description  string          `json:"description"`
			Amount       float64         `json:"amount"`
			Currency     string          `json:"currency"`
			Category     string          `json:"category"`
			PayerID      string          `json:"payer_id"`
			Participants []string        `json:"participants"`
			Shares       []expense.Share `json:"shares"`
			Frequency    string          `json:"frequency"`
			NextDue      int64           `json:"next_due"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		uid, _ := c.Locals("user_id").(string)

		tmpl := expense.RecurringExpense{
			GroupID:      req.GroupID,
			Description:  req.Description,
			Amount:       req.Amount,
			Currency:     req.Currency,
			Category:     req.Category,
			PayerID:      req.PayerID,
			Participants: req.Participants,
			Shares:       req.Shares,
			Frequency:    req.Frequency,
			CreatedBy:    uid,
		}
		if tmpl.PayerID == "" {
			tmpl.PayerID = uid
		}
		if req.NextDue > 0 {
			tmpl.NextDue = time.Unix(req.NextDue, 0).UTC()
		}

		created, err := recurring.CreateTemplate(c.UserContext(), tmpl)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"template_id": created.ID,
			"frequency":   created.Frequency,
			"next_due":    created.NextDue,
		})
	})

	// Materializes every due template. Intended for a scheduler, exposed for
	// manual runs as well.
	r.Post("/expenses/recurring/process", func(c *fiber.Ctx) error {
		count, err := recurring.ProcessDue(c.UserContext(), time.Now().UTC())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"created": count})
	})
}
