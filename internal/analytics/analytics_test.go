package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/monez-app/monez/internal/expense"
	"github.com/monez-app/monez/internal/settlement"
)

func TestSettlementSummary(t *testing.T) {
	ctx := context.Background()
	settlements := settlement.NewMemoryRepository()
	svc := NewService(settlements, expense.NewMemoryRepository())

	now := time.Now().UTC()
	records := []settlement.Record{
		{ID: "s1", GroupID: "g1", FromUserID: "bob", ToUserID: "alice", Amount: 100, Currency: "USD", Status: settlement.StatusCompleted, CreatedAt: now.Add(-time.Hour)},
		{ID: "s2", GroupID: "g1", FromUserID: "alice", ToUserID: "carol", Amount: 40, Currency: "USD", Status: settlement.StatusPending, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "s3", GroupID: "g1", FromUserID: "carol", ToUserID: "alice", Amount: 25, Currency: "USD", Status: settlement.StatusPending, CreatedAt: now.Add(-3 * time.Hour)},
		// Settlement between two other users; must never leak into alice's report.
		{ID: "s4", GroupID: "g2", FromUserID: "bob", ToUserID: "carol", Amount: 500, Currency: "USD", Status: settlement.StatusPending, CreatedAt: now.Add(-time.Hour)},
	}
	for _, rec := range records {
		if err := settlements.Create(ctx, rec); err != nil {
			t.Fatalf("seed settlement: %v", err)
		}
	}

	report, err := svc.SettlementSummary(ctx, "alice", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if report.Total != 3 || report.Completed != 1 || report.Pending != 2 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.TotalAmount != 165 || report.CompletedAmount != 100 || report.PendingAmount != 65 {
		t.Fatalf("unexpected amounts: %+v", report)
	}
	if math.Abs(report.CompletionRate-100.0/3) > 1e-9 {
		t.Fatalf("unexpected completion rate: %v", report.CompletionRate)
	}
	if report.Owed.Count != 2 || report.Owed.Amount != 125 {
		t.Fatalf("unexpected owed stats: %+v", report.Owed)
	}
	if report.Owes.Count != 1 || report.Owes.Amount != 40 {
		t.Fatalf("unexpected owes stats: %+v", report.Owes)
	}
}

func TestSettlementSummaryRespectsPeriod(t *testing.T) {
	ctx := context.Background()
	settlements := settlement.NewMemoryRepository()
	svc := NewService(settlements, expense.NewMemoryRepository())

	now := time.Now().UTC()
	old := settlement.Record{ID: "s1", FromUserID: "bob", ToUserID: "alice", Amount: 100, Currency: "USD", Status: settlement.StatusCompleted, CreatedAt: now.AddDate(0, -2, 0)}
	if err := settlements.Create(ctx, old); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := svc.SettlementSummary(ctx, "alice", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if report.Total != 0 {
		t.Fatalf("settlement outside window counted: %+v", report)
	}
}

func TestTopCategories(t *testing.T) {
	ctx := context.Background()
	expenses := expense.NewMemoryRepository()
	svc := NewService(settlement.NewMemoryRepository(), expenses)

	now := time.Now().UTC()
	seed := []expense.Expense{
		{ID: "e1", Category: "Food", Amount: 60, Currency: "USD", PayerID: "alice", CreatedAt: now.Add(-time.Hour)},
		{ID: "e2", Category: "Food", Amount: 40, Currency: "USD", PayerID: "bob", Shares: []expense.Share{{UserID: "alice", Amount: 40}}, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "e3", Category: "Travel", Amount: 300, Currency: "USD", PayerID: "alice", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "e4", Category: "", Amount: 100, Currency: "USD", PayerID: "alice", CreatedAt: now.Add(-4 * time.Hour)},
		// Another user's spending; must never leak into alice's report.
		{ID: "e5", Category: "Food", Amount: 999, Currency: "USD", PayerID: "mallory", CreatedAt: now.Add(-time.Hour)},
	}
	for _, e := range seed {
		if err := expenses.Create(ctx, e); err != nil {
			t.Fatalf("seed expense: %v", err)
		}
	}

	stats, err := svc.TopCategories(ctx, "alice", 2, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("top categories: %v", err)
	}

	if len(stats) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(stats))
	}
	if stats[0].Category != "Travel" || stats[0].TotalAmount != 300 {
		t.Fatalf("unexpected top category: %+v", stats[0])
	}
	if stats[1].Category != "Food" || stats[1].TotalAmount != 100 || stats[1].Count != 2 || stats[1].AverageAmount != 50 {
		t.Fatalf("unexpected second category: %+v", stats[1])
	}
	if math.Abs(stats[0].Percentage-60) > 1e-9 {
		t.Fatalf("unexpected percentage: %v", stats[0].Percentage)
	}
}

func TestTopCategoriesTieOrder(t *testing.T) {
	ctx := context.Background()
	expenses := expense.NewMemoryRepository()
	svc := NewService(settlement.NewMemoryRepository(), expenses)

	now := time.Now().UTC()
	seed := []expense.Expense{
		{ID: "e1", Category: "Travel", Amount: 50, Currency: "USD", PayerID: "alice", CreatedAt: now.Add(-time.Hour)},
		{ID: "e2", Category: "Food", Amount: 50, Currency: "USD", PayerID: "alice", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "e3", Category: "Rent", Amount: 50, Currency: "USD", PayerID: "alice", CreatedAt: now.Add(-3 * time.Hour)},
	}
	for _, e := range seed {
		if err := expenses.Create(ctx, e); err != nil {
			t.Fatalf("seed expense: %v", err)
		}
	}

	// Equal totals sort by category name so the order is stable across runs.
	for i := 0; i < 5; i++ {
		stats, err := svc.TopCategories(ctx, "alice", 3, time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("top categories: %v", err)
		}
		if len(stats) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(stats))
		}
		if stats[0].Category != "Food" || stats[1].Category != "Rent" || stats[2].Category != "Travel" {
			t.Fatalf("unexpected order: %q, %q, %q", stats[0].Category, stats[1].Category, stats[2].Category)
		}
	}
}
