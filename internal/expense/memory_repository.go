package expense

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Expense
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Expense)}
}

func (r *memoryRepository) Create(_ context.Context, expense Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[expense.ID]; exists {
		return errors.New("expense exists")
	}
	r.storage[expense.ID] = expense
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	expense, ok := r.storage[id]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var expenses []Expense
	for _, e := range r.storage {
		if e.PayerID == userID || e.CreatedBy == userID || hasShare(e, userID) {
			expenses = append(expenses, e)
		}
	}
	sortNewestFirst(expenses)
	return expenses, nil
}

func (r *memoryRepository) ListByGroup(_ context.Context, groupID string) ([]Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var expenses []Expense
	for _, e := range r.storage {
		if e.GroupID == groupID {
			expenses = append(expenses, e)
		}
	}
	sortNewestFirst(expenses)
	return expenses, nil
}

func (r *memoryRepository) ListByPeriod(_ context.Context, userID string, start, end time.Time) ([]Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var expenses []Expense
	for _, e := range r.storage {
		if e.PayerID != userID && e.CreatedBy != userID && !hasShare(e, userID) {
			continue
		}
		if !e.CreatedAt.Before(start) && !e.CreatedAt.After(end) {
			expenses = append(expenses, e)
		}
	}
	sortNewestFirst(expenses)
	return expenses, nil
}

func hasShare(e Expense, userID string) bool {
	for _, s := range e.Shares {
		if s.UserID == userID {
			return true
		}
	}
	return false
}

func sortNewestFirst(expenses []Expense) {
	sort.Slice(expenses, func(a, b int) bool {
		return expenses[a].CreatedAt.After(expenses[b].CreatedAt)
	})
}
