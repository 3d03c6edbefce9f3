package expense

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/monez-app/monez/internal/notification"
	"github.com/monez-app/monez/internal/settlement"
)

// shareTolerance allows for rounding noise when custom shares are checked
// against the expense total.
const shareTolerance = 0.01

// Service manages shared expenses.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService builds an expense service.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CreateInput captures the data needed to record an expense. When Shares is
// empty the amount is split equally among Participants.
type CreateInput struct {
	GroupID      string
	Description  string
	Amount       float64
	Currency     string
	Category     string
	PayerID      string
	Participants []string
	Shares       []Share
	CreatedBy    string
}

// Create validates and persists an expense.
func (s *Service) Create(ctx context.Context, input CreateInput) (Expense, error) {
	if input.Amount <= 0 {
		return Expense{}, fmt.Errorf("amount must be positive")
	}
	if input.PayerID == "" {
		return Expense{}, fmt.Errorf("payer is required")
	}
	if input.Currency == "" {
		return Expense{}, fmt.Errorf("currency is required")
	}

	shares, err := resolveShares(input)
	if err != nil {
		return Expense{}, err
	}

	category := input.Category
	if category == "" {
		category = "Uncategorized"
	}

	expense := Expense{
		ID:          uuid.New().String(),
		GroupID:     input.GroupID,
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Category:    category,
		PayerID:     input.PayerID,
		Shares:      shares,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return Expense{}, err
	}

	if s.notifier != nil {
		for _, share := range shares {
			if share.UserID == expense.PayerID {
				continue
			}
			_ = s.notifier.Send(ctx, notification.Message{
				Kind:        notification.KindExpenseAdded,
				Destination: share.UserID,
				Body:        fmt.Sprintf("%s added %q: your share is %.2f %s", expense.PayerID, expense.Description, share.Amount, expense.Currency),
			})
		}
	}

	return expense, nil
}

func resolveShares(input CreateInput) ([]Share, error) {
	if len(input.Shares) > 0 {
		var total float64
		for _, share := range input.Shares {
			if share.UserID == "" {
				return nil, fmt.Errorf("share user id is required")
			}
			if share.Amount <= 0 {
				return nil, fmt.Errorf("share amounts must be positive")
			}
			total += share.Amount
		}
		if math.Abs(total-input.Amount) > shareTolerance {
			return nil, fmt.Errorf("shares sum to %.2f, expense total is %.2f", total, input.Amount)
		}
		out := make([]Share, len(input.Shares))
		copy(out, input.Shares)
		return out, nil
	}

	if len(input.Participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	per := input.Amount / float64(len(input.Participants))
	shares := make([]Share, len(input.Participants))
	for i, userID := range input.Participants {
		if userID == "" {
			return nil, fmt.Errorf("participant id is required")
		}
		shares[i] = Share{UserID: userID, Amount: per}
	}
	return shares, nil
}

// Get fetches one expense.
func (s *Service) Get(ctx context.Context, id string) (Expense, error) {
	return s.repo.Get(ctx, id)
}

// ListByUser returns the expenses visible to a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Expense, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByGroup returns the expenses of a group.
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]Expense, error) {
	return s.repo.ListByGroup(ctx, groupID)
}

// Transactions expands expenses into settlement engine transactions: each
// non-payer participant owes the payer their share. The payer's own share
// never becomes a debt.
func Transactions(expenses []Expense) []settlement.Transaction {
	var txs []settlement.Transaction
	for _, e := range expenses {
		for _, share := range e.Shares {
			if share.UserID == e.PayerID {
				continue
			}
			txs = append(txs, settlement.Transaction{
				ID:          e.ID,
				From:        share.UserID,
				To:          e.PayerID,
				Amount:      share.Amount,
				Currency:    e.Currency,
				Description: e.Description,
				Date:        e.CreatedAt,
			})
		}
	}
	return txs
}

// SettlementTransactions expands recorded settlements into engine
// transactions so a plan accounts for payments already made. A completed
// settlement moves money from the debtor to the creditor, which in engine
// terms means the creditor now owes that amount back.
func SettlementTransactions(records []settlement.Record) []settlement.Transaction {
	var txs []settlement.Transaction
	for _, rec := range records {
		if rec.Status != settlement.StatusCompleted {
			continue
		}
		txs = append(txs, settlement.Transaction{
			ID:       rec.ID,
			From:     rec.ToUserID,
			To:       rec.FromUserID,
			Amount:   rec.Amount,
			Currency: rec.Currency,
			Date:     rec.CreatedAt,
		})
	}
	return txs
}
