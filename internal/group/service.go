package group

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monez-app/monez/internal/expense"
	"github.com/monez-app/monez/internal/settlement"
)

// Service manages groups and their settlement plans.
type Service struct {
	repo        Repository
	expenses    expense.Repository
	settlements *settlement.Service
	engine      *settlement.Engine
}

// NewService builds a group service.
func NewService(repo Repository, expenses expense.Repository, settlements *settlement.Service, engine *settlement.Engine) *Service {
	return &Service{repo: repo, expenses: expenses, settlements: settlements, engine: engine}
}

// CreateInput captures the data needed to create a group.
type CreateInput struct {
	Name      string
	Members   []string
	CreatedBy string
}

// Create validates and stores a group. The creator is always a member.
func (s *Service) Create(ctx context.Context, input CreateInput) (Group, error) {
	if input.Name == "" {
		return Group{}, fmt.Errorf("group name is required")
	}

	members := append([]string(nil), input.Members...)
	found := false
	for _, m := range members {
		if m == input.CreatedBy {
			found = true
			break
		}
	}
	if !found {
		members = append(members, input.CreatedBy)
	}

	group := Group{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Members:   members,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return Group{}, err
	}
	return group, nil
}

// Get fetches a group, enforcing membership of the acting user.
func (s *Service) Get(ctx context.Context, userID, id string) (Group, error) {
	group, err := s.repo.Get(ctx, id)
	if err != nil {
		return Group{}, err
	}
	if !group.HasMember(userID) {
		return Group{}, ErrNotMember
	}
	return group, nil
}

// List returns the groups the user belongs to.
func (s *Service) List(ctx context.Context, userID string) ([]Group, error) {
	return s.repo.ListByMember(ctx, userID)
}

// AddMembers appends any members not already in the group.
func (s *Service) AddMembers(ctx context.Context, userID, id string, newMembers []string) (Group, error) {
	group, err := s.Get(ctx, userID, id)
	if err != nil {
		return Group{}, err
	}

	for _, m := range newMembers {
		if m == "" || group.HasMember(m) {
			continue
		}
		group.Members = append(group.Members, m)
	}

	if err := s.repo.UpdateMembers(ctx, id, group.Members); err != nil {
		return Group{}, err
	}
	return group, nil
}

// Expenses lists the group's expenses for a member.
func (s *Service) Expenses(ctx context.Context, userID, id string) ([]expense.Expense, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.expenses.ListByGroup(ctx, id)
}

// transactions collects the group's expense debts plus completed settlement
// payments as engine transactions.
func (s *Service) transactions(ctx context.Context, groupID string) ([]settlement.Transaction, error) {
	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	txs := expense.Transactions(expenses)

	records, err := s.settlements.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return append(txs, expense.SettlementTransactions(records)...), nil
}

// Balances computes each member's net position in the base currency.
func (s *Service) Balances(ctx context.Context, userID, id, baseCurrency string) ([]settlement.GroupBalance, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	txs, err := s.transactions(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.engine.Balances(ctx, txs, baseCurrency)
}

// Plan returns the simplified settlement plan and its summary for the group.
func (s *Service) Plan(ctx context.Context, userID, id, baseCurrency string) ([]settlement.Settlement, settlement.Summary, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, settlement.Summary{}, err
	}
	txs, err := s.transactions(ctx, id)
	if err != nil {
		return nil, settlement.Summary{}, err
	}
	return s.engine.Summarize(ctx, txs, baseCurrency)
}

// SettleInput captures a settlement to record against the group.
type SettleInput struct {
	FromUserID string
	ToUserID   string
	Amount     float64
	Currency   string
	Note       string
}

// Settle records a pending settlement between two group members.
func (s *Service) Settle(ctx context.Context, userID, id string, input SettleInput) (settlement.Record, error) {
	group, err := s.Get(ctx, userID, id)
	if err != nil {
		return settlement.Record{}, err
	}
	if !group.HasMember(input.FromUserID) || !group.HasMember(input.ToUserID) {
		return settlement.Record{}, fmt.Errorf("settlement parties must be group members")
	}

	return s.settlements.Record(ctx, settlement.RecordInput{
		GroupID:    id,
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Note:       input.Note,
		CreatedBy:  userID,
	})
}
