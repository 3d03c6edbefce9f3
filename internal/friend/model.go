package friend

import (
	"errors"
	"time"
)

// ErrFriendNotFound indicates the friend entry does not exist.
var ErrFriendNotFound = errors.New("friend not found")

// Friend is an entry in a user's friend list. A friend may or may not have a
// registered account; settlements address them by UPI id when present.
type Friend struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	UPIID     string
	CreatedAt time.Time
}
