package group

import (
	"errors"
	"time"
)

var (
	// ErrGroupNotFound indicates the group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotMember indicates the acting user is not a member of the group.
	ErrNotMember = errors.New("not a group member")
)

// Group is a set of users who share expenses.
type Group struct {
	ID        string
	Name      string
	Members   []string
	CreatedBy string
	CreatedAt time.Time
}

// HasMember reports whether the user belongs to the group.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
