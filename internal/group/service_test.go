package group

import (
	"context"
	"testing"

	"github.com/monez-app/monez/internal/currency"
	"github.com/monez-app/monez/internal/expense"
	"github.com/monez-app/monez/internal/settlement"
)

func newTestService(t *testing.T) (*Service, *expense.Service) {
	t.Helper()
	expenseRepo := expense.NewMemoryRepository()
	engine := settlement.NewEngine(currency.NewFixed(nil))
	settlementSvc := settlement.NewService(settlement.NewMemoryRepository(), nil, nil)
	svc := NewService(NewMemoryRepository(), expenseRepo, settlementSvc, engine)
	return svc, expense.NewService(expenseRepo, nil)
}

func TestCreateAddsCreator(t *testing.T) {
	svc, _ := newTestService(t)

	group, err := svc.Create(context.Background(), CreateInput{
		Name:      "Roommates",
		Members:   []string{"bob", "carol"},
		CreatedBy: "alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !group.HasMember("alice") {
		t.Fatalf("creator missing from members: %+v", group.Members)
	}
	if len(group.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(group.Members))
	}
}

func TestGetEnforcesMembership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	group, err := svc.Create(ctx, CreateInput{Name: "Trip", CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, "mallory", group.ID); err != ErrNotMember {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestPlanAccountsForCompletedSettlements(t *testing.T) {
	svc, expenses := newTestService(t)
	ctx := context.Background()

	group, err := svc.Create(ctx, CreateInput{
		Name:      "Goa trip",
		Members:   []string{"bob"},
		CreatedBy: "alice",
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if _, err := expenses.Create(ctx, expense.CreateInput{
		GroupID:      group.ID,
		Description:  "Hotel",
		Amount:       200,
		Currency:     "USD",
		PayerID:      "alice",
		Participants: []string{"alice", "bob"},
		CreatedBy:    "alice",
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	plan, _, err := svc.Plan(ctx, "alice", group.ID, "USD")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan) != 1 || plan[0].From != "bob" || plan[0].To != "alice" || plan[0].Amount != 100 {
		t.Fatalf("unexpected plan: %+v", plan)
	}

	// Record and complete bob's payment; the plan should then be empty.
	record, err := svc.Settle(ctx, "bob", group.ID, SettleInput{
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     100,
		Currency:   "USD",
	})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if record.Status != settlement.StatusPending {
		t.Fatalf("expected pending record, got %q", record.Status)
	}

	// Pending settlements do not change the plan yet.
	plan, _, err = svc.Plan(ctx, "alice", group.ID, "USD")
	if err != nil {
		t.Fatalf("plan after pending: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("pending settlement changed the plan: %+v", plan)
	}

	if _, err := svc.settlements.Complete(ctx, record.FromUserID, record.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	plan, summary, err := svc.Plan(ctx, "alice", group.ID, "USD")
	if err != nil {
		t.Fatalf("plan after completion: %v", err)
	}
	if len(plan) != 0 {
		t.Fatalf("expected settled group, got %+v", plan)
	}
	if summary.NumberOfSettlements != 0 || summary.TotalAmount != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestSettleRejectsNonMembers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	group, err := svc.Create(ctx, CreateInput{Name: "Lunch", CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Settle(ctx, "alice", group.ID, SettleInput{
		FromUserID: "mallory",
		ToUserID:   "alice",
		Amount:     10,
		Currency:   "USD",
	}); err == nil {
		t.Fatal("expected error for non-member settlement party")
	}
}

func TestAddMembersDeduplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	group, err := svc.Create(ctx, CreateInput{Name: "Flat", Members: []string{"bob"}, CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.AddMembers(ctx, "alice", group.ID, []string{"bob", "carol", ""})
	if err != nil {
		t.Fatalf("add members: %v", err)
	}
	if len(updated.Members) != 3 {
		t.Fatalf("expected 3 members, got %+v", updated.Members)
	}
}
