package friend

import (
	"context"
	"math"
	"testing"

	"github.com/monez-app/monez/internal/currency"
	"github.com/monez-app/monez/internal/expense"
	"github.com/monez-app/monez/internal/settlement"
)

func newTestService(t *testing.T) (*Service, *expense.Service) {
	t.Helper()
	expenseRepo := expense.NewMemoryRepository()
	engine := settlement.NewEngine(currency.NewFixed(nil))
	return NewService(NewMemoryRepository(), expenseRepo, engine), expense.NewService(expenseRepo, nil)
}

func TestAddStoresFriend(t *testing.T) {
	svc, _ := newTestService(t)

	f, err := svc.Add(context.Background(), AddInput{
		OwnerID: "owner",
		Name:    "Priya",
		Email:   "priya@example.com",
		UPIID:   "priya@okhdfc",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if f.ID == "" {
		t.Fatal("expected generated id")
	}

	friends, err := svc.List(context.Background(), "owner")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(friends) != 1 || friends[0].Name != "Priya" {
		t.Fatalf("friends = %+v", friends)
	}
}

func TestAddRejectsInvalidUPIID(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Add(context.Background(), AddInput{
		OwnerID: "owner",
		Name:    "Priya",
		UPIID:   "not a upi id",
	}); err == nil {
		t.Fatal("expected error for invalid UPI id")
	}
}

func TestAddRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Add(context.Background(), AddInput{OwnerID: "owner"}); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestBalancePositiveWhenFriendOwes(t *testing.T) {
	svc, expenses := newTestService(t)

	f, err := svc.Add(context.Background(), AddInput{OwnerID: "owner", Name: "Priya"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Owner paid 100, split equally with the friend.
	if _, err := expenses.Create(context.Background(), expense.CreateInput{
		Description:  "groceries",
		Amount:       100,
		Currency:     "INR",
		PayerID:      "owner",
		Participants: []string{"owner", f.ID},
		CreatedBy:    "owner",
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	balance, err := svc.Balance(context.Background(), "owner", f.ID, "INR")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if math.Abs(balance-50) > 0.01 {
		t.Fatalf("balance = %v, want 50", balance)
	}
}

func TestBalanceIgnoresOtherParties(t *testing.T) {
	svc, expenses := newTestService(t)

	f, err := svc.Add(context.Background(), AddInput{OwnerID: "owner", Name: "Priya"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Expense between the owner and someone else, friend not involved.
	if _, err := expenses.Create(context.Background(), expense.CreateInput{
		Description:  "taxi",
		Amount:       60,
		Currency:     "INR",
		PayerID:      "owner",
		Participants: []string{"owner", "charlie"},
		CreatedBy:    "owner",
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	balance, err := svc.Balance(context.Background(), "owner", f.ID, "INR")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("balance = %v, want 0", balance)
	}
}

func TestGetAndRemoveCheckOwnership(t *testing.T) {
	svc, _ := newTestService(t)

	f, err := svc.Add(context.Background(), AddInput{OwnerID: "owner", Name: "Priya"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.Get(context.Background(), "intruder", f.ID); err != ErrFriendNotFound {
		t.Fatalf("get err = %v, want ErrFriendNotFound", err)
	}
	if err := svc.Remove(context.Background(), "intruder", f.ID); err != ErrFriendNotFound {
		t.Fatalf("remove err = %v, want ErrFriendNotFound", err)
	}

	if err := svc.Remove(context.Background(), "owner", f.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	friends, err := svc.List(context.Background(), "owner")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("friends = %+v, want empty", friends)
	}
}
