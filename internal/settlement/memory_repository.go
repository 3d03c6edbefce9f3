package settlement

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Record
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Record)}
}

func (r *memoryRepository) Create(_ context.Context, record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[record.ID]; exists {
		return errors.New("settlement exists")
	}
	r.storage[record.ID] = record
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.storage[id]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return record, nil
}

func (r *memoryRepository) ListByGroup(_ context.Context, groupID string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []Record
	for _, rec := range r.storage {
		if rec.GroupID == groupID {
			records = append(records, rec)
		}
	}
	sortNewestFirst(records)
	return records, nil
}

func (r *memoryRepository) ListByPeriod(_ context.Context, userID string, start, end time.Time) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []Record
	for _, rec := range r.storage {
		if rec.FromUserID != userID && rec.ToUserID != userID {
			continue
		}
		if !rec.CreatedAt.Before(start) && !rec.CreatedAt.After(end) {
			records = append(records, rec)
		}
	}
	sortNewestFirst(records)
	return records, nil
}

func (r *memoryRepository) MarkCompleted(_ context.Context, id string, settledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.storage[id]
	if !ok || record.Status != StatusPending {
		return ErrRecordNotFound
	}
	record.Status = StatusCompleted
	record.SettledAt = &settledAt
	r.storage[id] = record
	return nil
}

func sortNewestFirst(records []Record) {
	sort.Slice(records, func(a, b int) bool {
		return records[a].CreatedAt.After(records[b].CreatedAt)
	})
}
