package friend

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Friend
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Friend)}
}

func (r *memoryRepository) Create(_ context.Context, friend Friend) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[friend.ID]; exists {
		return errors.New("friend exists")
	}
	r.storage[friend.ID] = friend
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Friend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	friend, ok := r.storage[id]
	if !ok {
		return Friend{}, ErrFriendNotFound
	}
	return friend, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Friend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var friends []Friend
	for _, f := range r.storage {
		if f.OwnerID == ownerID {
			friends = append(friends, f)
		}
	}
	sort.Slice(friends, func(a, b int) bool { return friends[a].Name < friends[b].Name })
	return friends, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return ErrFriendNotFound
	}
	delete(r.storage, id)
	return nil
}
