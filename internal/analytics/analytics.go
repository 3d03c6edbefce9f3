// Package analytics aggregates settlement completion and spending statistics
// over a reporting period.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/monez-app/monez/internal/expense"
	"github.com/monez-app/monez/internal/settlement"
)

// defaultWindow is the reporting period used when the caller gives no range.
const defaultWindow = 30 * 24 * time.Hour

// Period is the half-open reporting window of a report.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DirectionStats counts settlements on one side of a user.
type DirectionStats struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// SettlementReport summarizes settlement activity in a period.
type SettlementReport struct {
	Period          Period         `json:"period"`
	Total           int            `json:"total"`
	Completed       int            `json:"completed"`
	Pending         int            `json:"pending"`
	TotalAmount     float64        `json:"total_amount"`
	CompletedAmount float64        `json:"completed_amount"`
	PendingAmount   float64        `json:"pending_amount"`
	CompletionRate  float64        `json:"completion_rate"`
	Owed            DirectionStats `json:"owed"`
	Owes            DirectionStats `json:"owes"`
}

// CategoryStat describes spending in one expense category.
type CategoryStat struct {
	Category      string  `json:"category"`
	TotalAmount   float64 `json:"total_amount"`
	Count         int     `json:"count"`
	AverageAmount float64 `json:"average_amount"`
	Percentage    float64 `json:"percentage"`
}

// Service computes reports from the settlement and expense stores.
type Service struct {
	settlements settlement.Repository
	expenses    expense.Repository
}

// NewService builds an analytics service.
func NewService(settlements settlement.Repository, expenses expense.Repository) *Service {
	return &Service{settlements: settlements, expenses: expenses}
}

func normalizePeriod(start, end time.Time) (time.Time, time.Time) {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	if start.IsZero() {
		start = end.Add(-defaultWindow)
	}
	return start, end
}

// SettlementSummary reports totals, completion rate and the owed/owes split
// for the user's own settlements in the period.
func (s *Service) SettlementSummary(ctx context.Context, userID string, start, end time.Time) (SettlementReport, error) {
	start, end = normalizePeriod(start, end)

	records, err := s.settlements.ListByPeriod(ctx, userID, start, end)
	if err != nil {
		return SettlementReport{}, err
	}

	report := SettlementReport{Period: Period{Start: start, End: end}}
	for _, rec := range records {
		report.Total++
		report.TotalAmount += rec.Amount

		switch rec.Status {
		case settlement.StatusCompleted:
			report.Completed++
			report.CompletedAmount += rec.Amount
		case settlement.StatusPending:
			report.Pending++
			report.PendingAmount += rec.Amount
		}

		if rec.ToUserID == userID {
			report.Owed.Count++
			report.Owed.Amount += rec.Amount
		}
		if rec.FromUserID == userID {
			report.Owes.Count++
			report.Owes.Amount += rec.Amount
		}
	}

	if report.Total > 0 {
		report.CompletionRate = float64(report.Completed) / float64(report.Total) * 100
	}
	return report, nil
}

// TopCategories returns the user's biggest expense categories in the period,
// with each category's share of their total spending.
func (s *Service) TopCategories(ctx context.Context, userID string, limit int, start, end time.Time) ([]CategoryStat, error) {
	start, end = normalizePeriod(start, end)
	if limit <= 0 {
		limit = 10
	}

	expenses, err := s.expenses.ListByPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*CategoryStat)
	var totalSpend float64
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = "Uncategorized"
		}
		stat, ok := totals[category]
		if !ok {
			stat = &CategoryStat{Category: category}
			totals[category] = stat
		}
		stat.TotalAmount += e.Amount
		stat.Count++
		totalSpend += e.Amount
	}

	stats := make([]CategoryStat, 0, len(totals))
	for _, stat := range totals {
		if stat.Count > 0 {
			stat.AverageAmount = stat.TotalAmount / float64(stat.Count)
		}
		if totalSpend > 0 {
			stat.Percentage = stat.TotalAmount / totalSpend * 100
		}
		stats = append(stats, *stat)
	}

	// Category name breaks amount ties; the stats come from map iteration.
	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].TotalAmount != stats[b].TotalAmount {
			return stats[a].TotalAmount > stats[b].TotalAmount
		}
		return stats[a].Category < stats[b].Category
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}
