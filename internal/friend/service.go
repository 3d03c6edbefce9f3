package friend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monez-app/monez/internal/expense"
	"github.com/monez-app/monez/internal/settlement"
	"github.com/monez-app/monez/internal/upi"
)

// Service manages a user's friend list and per-friend balances.
type Service struct {
	repo     Repository
	expenses expense.Repository
	engine   *settlement.Engine
}

// NewService builds a friend service.
func NewService(repo Repository, expenses expense.Repository, engine *settlement.Engine) *Service {
	return &Service{repo: repo, expenses: expenses, engine: engine}
}

// AddInput captures the data needed to add a friend.
type AddInput struct {
	OwnerID string
	Name    string
	Email   string
	UPIID   string
}

// Add validates and stores a friend entry.
func (s *Service) Add(ctx context.Context, input AddInput) (Friend, error) {
	if input.Name == "" {
		return Friend{}, fmt.Errorf("name is required")
	}
	if input.UPIID != "" && !upi.ValidID(input.UPIID) {
		return Friend{}, fmt.Errorf("invalid UPI id %q", input.UPIID)
	}

	friend := Friend{
		ID:        uuid.New().String(),
		OwnerID:   input.OwnerID,
		Name:      input.Name,
		Email:     input.Email,
		UPIID:     input.UPIID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, friend); err != nil {
		return Friend{}, err
	}
	return friend, nil
}

// List returns the owner's friends.
func (s *Service) List(ctx context.Context, ownerID string) ([]Friend, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get fetches one friend after checking ownership.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Friend, error) {
	friend, err := s.repo.Get(ctx, id)
	if err != nil {
		return Friend{}, err
	}
	if friend.OwnerID != ownerID {
		return Friend{}, ErrFriendNotFound
	}
	return friend, nil
}

// Remove deletes a friend entry after checking ownership.
func (s *Service) Remove(ctx context.Context, ownerID, id string) error {
	friend, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if friend.OwnerID != ownerID {
		return ErrFriendNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Balance computes the net position between the owner and one friend in the
// base currency. Positive means the friend owes the owner.
func (s *Service) Balance(ctx context.Context, ownerID, friendID, baseCurrency string) (float64, error) {
	friend, err := s.repo.Get(ctx, friendID)
	if err != nil {
		return 0, err
	}
	if friend.OwnerID != ownerID {
		return 0, ErrFriendNotFound
	}

	expenses, err := s.expenses.ListByUser(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	var pairwise []settlement.Transaction
	for _, tx := range expense.Transactions(expenses) {
		if (tx.From == ownerID && tx.To == friend.ID) || (tx.From == friend.ID && tx.To == ownerID) {
			pairwise = append(pairwise, tx)
		}
	}

	balances, err := s.engine.Balances(ctx, pairwise, baseCurrency)
	if err != nil {
		return 0, err
	}
	for _, b := range balances {
		if b.UserID == friend.ID {
			// The friend's debt to the owner is the negation of their balance.
			return -b.Balance, nil
		}
	}
	return 0, nil
}
