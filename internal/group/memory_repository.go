package group

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Group
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Group)}
}

func (r *memoryRepository) Create(_ context.Context, group Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[group.ID]; exists {
		return errors.New("group exists")
	}
	r.storage[group.ID] = group
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	group, ok := r.storage[id]
	if !ok {
		return Group{}, ErrGroupNotFound
	}
	return group, nil
}

func (r *memoryRepository) ListByMember(_ context.Context, userID string) ([]Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var groups []Group
	for _, g := range r.storage {
		if g.HasMember(userID) {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].CreatedAt.After(groups[b].CreatedAt) })
	return groups, nil
}

func (r *memoryRepository) UpdateMembers(_ context.Context, id string, members []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.storage[id]
	if !ok {
		return ErrGroupNotFound
	}
	group.Members = members
	r.storage[id] = group
	return nil
}
