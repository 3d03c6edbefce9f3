package expense

import (
	"errors"
	"time"
)

// ErrExpenseNotFound indicates the expense does not exist.
var ErrExpenseNotFound = errors.New("expense not found")

// Share is one participant's portion of an expense.
type Share struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// Expense is a shared expense paid by one user on behalf of the participants.
type Expense struct {
	ID          string
	GroupID     string
	Description string
	Amount      float64
	Currency    string
	Category    string
	PayerID     string
	Shares      []Share
	CreatedBy   string
	CreatedAt   time.Time
}

// RecurringExpense is a template that spawns an expense on a schedule. Like
// CreateInput, an empty Shares list means an equal split among Participants.
type RecurringExpense struct {
	ID           string
	GroupID      string
	Description  string
	Amount       float64
	Currency     string
	Category     string
	PayerID      string
	Participants []string
	Shares       []Share
	Frequency    string
	NextDue      time.Time
	CreatedBy    string
	CreatedAt    time.Time
}

const (
	// FrequencyDaily spawns a new expense every day.
	FrequencyDaily = "daily"
	// FrequencyWeekly spawns a new expense every week.
	FrequencyWeekly = "weekly"
	// FrequencyMonthly spawns a new expense every month.
	FrequencyMonthly = "monthly"
)
