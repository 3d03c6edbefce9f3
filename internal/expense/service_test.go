package expense

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/monez-app/monez/internal/settlement"
)

func TestCreateEqualSplit(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	exp, err := svc.Create(context.Background(), CreateInput{
		Description:  "Dinner",
		Amount:       90,
		Currency:     "INR",
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
		CreatedBy:    "alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(exp.Shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(exp.Shares))
	}
	for _, share := range exp.Shares {
		if share.Amount != 30 {
			t.Fatalf("expected equal share of 30, got %v", share.Amount)
		}
	}
	if exp.Category != "Uncategorized" {
		t.Fatalf("expected default category, got %q", exp.Category)
	}
}

func TestCreateCustomSharesMustSumToTotal(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Description: "Groceries",
		Amount:      100,
		Currency:    "USD",
		PayerID:     "alice",
		Shares: []Share{
			{UserID: "alice", Amount: 40},
			{UserID: "bob", Amount: 40},
		},
		CreatedBy: "alice",
	})
	if err == nil {
		t.Fatal("expected error for shares not summing to total")
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Amount:       0,
		Currency:     "USD",
		PayerID:      "alice",
		Participants: []string{"alice"},
	})
	if err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestTransactionsSkipPayerShare(t *testing.T) {
	expenses := []Expense{{
		ID:       "e1",
		PayerID:  "alice",
		Currency: "USD",
		Amount:   90,
		Shares: []Share{
			{UserID: "alice", Amount: 30},
			{UserID: "bob", Amount: 30},
			{UserID: "carol", Amount: 30},
		},
	}}

	txs := Transactions(expenses)
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	for _, tx := range txs {
		if tx.From == "alice" {
			t.Fatalf("payer share became a debt: %+v", tx)
		}
		if tx.To != "alice" || tx.Amount != 30 {
			t.Fatalf("unexpected transaction: %+v", tx)
		}
	}
}

func TestSettlementTransactionsOnlyCompleted(t *testing.T) {
	records := []settlement.Record{
		{ID: "s1", FromUserID: "bob", ToUserID: "alice", Amount: 30, Currency: "USD", Status: settlement.StatusCompleted},
		{ID: "s2", FromUserID: "carol", ToUserID: "alice", Amount: 30, Currency: "USD", Status: settlement.StatusPending},
	}

	txs := SettlementTransactions(records)
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	// A completed payment reverses the original debt direction.
	if txs[0].From != "alice" || txs[0].To != "bob" || txs[0].Amount != 30 {
		t.Fatalf("unexpected transaction: %+v", txs[0])
	}
}

func TestThreeWaySplitSharesSumToTotal(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	exp, err := svc.Create(context.Background(), CreateInput{
		Description:  "Cab",
		Amount:       100,
		Currency:     "USD",
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
		CreatedBy:    "alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var total float64
	for _, share := range exp.Shares {
		total += share.Amount
	}
	if math.Abs(total-100) > 1e-9 {
		t.Fatalf("shares sum to %v, want 100", total)
	}
}

func TestRecurringProcessDue(t *testing.T) {
	repo := NewMemoryRepository()
	expenses := NewService(repo, nil)
	recurring := NewRecurringService(NewMemoryRecurringRepository(), expenses)

	ctx := context.Background()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tmpl, err := recurring.CreateTemplate(ctx, RecurringExpense{
		Description: "Rent",
		Amount:      1200,
		Currency:    "USD",
		Category:    "Housing",
		PayerID:     "alice",
		Shares: []Share{
			{UserID: "alice", Amount: 600},
			{UserID: "bob", Amount: 600},
		},
		Frequency: FrequencyMonthly,
		NextDue:   start,
		CreatedBy: "alice",
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	created, err := recurring.ProcessDue(ctx, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("process due: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 expense created, got %d", created)
	}

	// Not due again until next month.
	created, err = recurring.ProcessDue(ctx, start.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("process due again: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 expenses created, got %d", created)
	}

	if next := NextOccurrence(tmpl.NextDue, FrequencyMonthly); !next.Equal(start.AddDate(0, 1, 0)) {
		t.Fatalf("unexpected next occurrence: %v", next)
	}
}

func TestRecurringRejectsUnknownFrequency(t *testing.T) {
	recurring := NewRecurringService(NewMemoryRecurringRepository(), NewService(NewMemoryRepository(), nil))

	_, err := recurring.CreateTemplate(context.Background(), RecurringExpense{
		Amount:    10,
		Frequency: "fortnightly",
	})
	if err == nil {
		t.Fatal("expected error for unknown frequency")
	}
}

func TestRecurringConcurrentCreate(t *testing.T) {
	recurring := NewRecurringService(NewMemoryRecurringRepository(), NewService(NewMemoryRepository(), nil))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := recurring.CreateTemplate(context.Background(), RecurringExpense{
				Description:  "rent",
				Amount:       100,
				Currency:     "INR",
				PayerID:      "alice",
				Participants: []string{"alice", "bob"},
				Frequency:    FrequencyMonthly,
			}); err != nil {
				t.Errorf("create template: %v", err)
			}
		}()
	}
	wg.Wait()

	created, err := recurring.ProcessDue(context.Background(), time.Now().UTC().Add(time.Minute))
	if err != nil {
		t.Fatalf("process due: %v", err)
	}
	if created != 16 {
		t.Fatalf("created %d expenses, want 16", created)
	}
}
