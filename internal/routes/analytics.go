package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/monez-app/monez/internal/analytics"
)

// RegisterAnalyticsRoutes wires reporting endpoints.
func RegisterAnalyticsRoutes(r fiber.Router, svc *analytics.Service) {
	group := r.Group("/analytics")

	group.Get("/settlements", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		start, end, err := periodQuery(c)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		report, err := svc.SettlementSummary(c.UserContext(), uid, start, end)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})

	group.Get("/categories", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		start, end, err := periodQuery(c)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		limit := c.QueryInt("limit", 5)

		stats, err := svc.TopCategories(c.UserContext(), uid, limit, start, end)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"categories": stats})
	})
}

// periodQuery parses optional start/end query params given as Unix seconds.
// Zero values fall back to the service's default reporting window.
func periodQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	var start, end time.Time
	if v := c.Query("start"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = time.Unix(sec, 0).UTC()
	}
	if v := c.Query("end"); v != "" {
		sec, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = time.Unix(sec, 0).UTC()
	}
	return start, end, nil
}
