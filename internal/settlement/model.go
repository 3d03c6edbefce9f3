package settlement

import (
	"errors"
	"time"
)

const (
	// StatusPending marks a recorded settlement awaiting payment confirmation.
	StatusPending = "pending"
	// StatusCompleted marks a settlement whose payment has been confirmed.
	StatusCompleted = "completed"
)

// ErrRecordNotFound indicates the settlement record does not exist.
var ErrRecordNotFound = errors.New("settlement not found")

// Record is a persisted settlement between two users of a group.
type Record struct {
	ID         string
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     float64
	Currency   string
	Note       string
	Status     string
	CreatedBy  string
	CreatedAt  time.Time
	SettledAt  *time.Time
}
