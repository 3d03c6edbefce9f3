package expense

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecurringRepository persists recurring expense templates.
type RecurringRepository interface {
	Create(ctx context.Context, tmpl RecurringExpense) error
	ListDue(ctx context.Context, asOf time.Time) ([]RecurringExpense, error)
	UpdateNextDue(ctx context.Context, id string, nextDue time.Time) error
}

// RecurringService materializes due recurring templates into expenses.
type RecurringService struct {
	templates RecurringRepository
	expenses  *Service
}

// NewRecurringService builds a recurring expense service.
func NewRecurringService(templates RecurringRepository, expenses *Service) *RecurringService {
	return &RecurringService{templates: templates, expenses: expenses}
}

// CreateTemplate validates and stores a recurring template.
func (s *RecurringService) CreateTemplate(ctx context.Context, tmpl RecurringExpense) (RecurringExpense, error) {
	switch tmpl.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return RecurringExpense{}, fmt.Errorf("unknown frequency %q", tmpl.Frequency)
	}
	if tmpl.Amount <= 0 {
		return RecurringExpense{}, fmt.Errorf("amount must be positive")
	}
	if tmpl.NextDue.IsZero() {
		tmpl.NextDue = time.Now().UTC()
	}
	tmpl.ID = uuid.New().String()
	tmpl.CreatedAt = time.Now().UTC()
	if err := s.templates.Create(ctx, tmpl); err != nil {
		return RecurringExpense{}, err
	}
	return tmpl, nil
}

// ProcessDue creates an expense for every template due as of now and advances
// its schedule. Returns the number of expenses created.
func (s *RecurringService) ProcessDue(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.templates.ListDue(ctx, asOf)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, tmpl := range due {
		_, err := s.expenses.Create(ctx, CreateInput{
			GroupID:      tmpl.GroupID,
			Description:  tmpl.Description,
			Amount:       tmpl.Amount,
			Currency:     tmpl.Currency,
			Category:     tmpl.Category,
			PayerID:      tmpl.PayerID,
			Participants: tmpl.Participants,
			Shares:       tmpl.Shares,
			CreatedBy:    tmpl.CreatedBy,
		})
		if err != nil {
			return created, fmt.Errorf("materialize template %s: %w", tmpl.ID, err)
		}
		if err := s.templates.UpdateNextDue(ctx, tmpl.ID, NextOccurrence(tmpl.NextDue, tmpl.Frequency)); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// NextOccurrence advances a due date by one period.
func NextOccurrence(from time.Time, frequency string) time.Time {
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	default:
		return from
	}
}

type memoryRecurringRepository struct {
	mu      sync.RWMutex
	storage map[string]RecurringExpense
}

// NewMemoryRecurringRepository constructs an in-memory template store.
func NewMemoryRecurringRepository() RecurringRepository {
	return &memoryRecurringRepository{storage: make(map[string]RecurringExpense)}
}

func (r *memoryRecurringRepository) Create(_ context.Context, tmpl RecurringExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[tmpl.ID] = tmpl
	return nil
}

func (r *memoryRecurringRepository) ListDue(_ context.Context, asOf time.Time) ([]RecurringExpense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []RecurringExpense
	for _, tmpl := range r.storage {
		if !tmpl.NextDue.After(asOf) {
			due = append(due, tmpl)
		}
	}
	return due, nil
}

func (r *memoryRecurringRepository) UpdateNextDue(_ context.Context, id string, nextDue time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tmpl, ok := r.storage[id]
	if !ok {
		return ErrExpenseNotFound
	}
	tmpl.NextDue = nextDue
	r.storage[id] = tmpl
	return nil
}
