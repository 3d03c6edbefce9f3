package settlement

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/monez-app/monez/internal/currency"
)

// epsilon is the currency-unit tolerance below which a residual balance or a
// candidate transfer is treated as already settled. It assumes 2-decimal
// currencies; zero- and three-decimal minor units share the same fixed cutoff.
const epsilon = 0.01

var (
	// ErrConversionFailed indicates the injected rate lookup failed for a
	// required pair. The whole calculation aborts; no partial results.
	ErrConversionFailed = errors.New("currency conversion failed")

	// ErrInvalidSettlement indicates a malformed settlement object.
	ErrInvalidSettlement = errors.New("invalid settlement")
)

// Transaction records that From paid To the stated amount, i.e. From owes To.
type Transaction struct {
	ID          string
	From        string
	To          string
	Amount      float64
	Currency    string
	Description string
	Date        time.Time
}

// GroupBalance is a user's net position in the base currency. Positive means
// the user is owed money, negative means the user owes.
type GroupBalance struct {
	UserID   string
	Balance  float64
	Currency string
}

// Settlement is one proposed transfer from a debtor to a creditor.
type Settlement struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Summary aggregates a settlement plan for reporting.
type Summary struct {
	TotalAmount         float64   `json:"total_amount"`
	Currency            string    `json:"currency"`
	NumberOfSettlements int       `json:"number_of_settlements"`
	NumberOfUsers       int       `json:"number_of_users"`
	CalculatedAt        time.Time `json:"calculated_at"`
}

// Engine computes simplified settlement plans for multi-currency transaction
// sets. It holds no state between calls apart from the injected converter.
type Engine struct {
	converter currency.Converter
}

// NewEngine builds an engine around the given converter.
func NewEngine(converter currency.Converter) *Engine {
	return &Engine{converter: converter}
}

// Balances folds all transactions into one net balance per user, normalized to
// the base currency. Users keep their insertion order; balances sum to zero by
// construction since every debit has a matching credit. A failed conversion
// aborts the whole fold.
func (e *Engine) Balances(ctx context.Context, transactions []Transaction, baseCurrency string) ([]GroupBalance, error) {
	totals := make(map[string]float64)
	var order []string

	// One rate lookup per distinct currency within a call.
	converted := make(map[string]float64)

	for _, tx := range transactions {
		rate, seen := converted[tx.Currency]
		if !seen {
			out, err := e.converter.Convert(ctx, 1, tx.Currency, baseCurrency)
			if err != nil {
				return nil, fmt.Errorf("%w: %s to %s: %v", ErrConversionFailed, tx.Currency, baseCurrency, err)
			}
			converted[tx.Currency] = out
			rate = out
		}
		amount := tx.Amount * rate

		if _, ok := totals[tx.From]; !ok {
			order = append(order, tx.From)
		}
		totals[tx.From] -= amount

		if _, ok := totals[tx.To]; !ok {
			order = append(order, tx.To)
		}
		totals[tx.To] += amount
	}

	balances := make([]GroupBalance, 0, len(order))
	for _, userID := range order {
		balances = append(balances, GroupBalance{
			UserID:   userID,
			Balance:  totals[userID],
			Currency: baseCurrency,
		})
	}
	return balances, nil
}

// Simplify emits a settlement plan that drives every balance to within the
// tolerance of zero, using a greedy largest-creditor-to-largest-debtor match.
// The policy is deterministic and terminates in at most
// len(creditors)+len(debtors)-1 transfers; it is not guaranteed to be the
// globally minimal transfer count.
func (e *Engine) Simplify(balances []GroupBalance, baseCurrency string) []Settlement {
	var creditors, debtors []GroupBalance
	for _, b := range balances {
		switch {
		case b.Balance > 0:
			creditors = append(creditors, b)
		case b.Balance < 0:
			debtors = append(debtors, b)
		}
	}

	// Largest credit first; most indebted first.
	sort.SliceStable(creditors, func(a, b int) bool { return creditors[a].Balance > creditors[b].Balance })
	sort.SliceStable(debtors, func(a, b int) bool { return debtors[a].Balance < debtors[b].Balance })

	var settlements []Settlement
	i, j := 0, 0

	for i < len(creditors) && j < len(debtors) {
		amount := math.Min(creditors[i].Balance, -debtors[j].Balance)

		if amount > epsilon {
			settlements = append(settlements, Settlement{
				From:     debtors[j].UserID,
				To:       creditors[i].UserID,
				Amount:   round2(amount),
				Currency: baseCurrency,
			})
		}

		creditors[i].Balance -= amount
		debtors[j].Balance += amount

		if creditors[i].Balance < epsilon {
			i++
		}
		if math.Abs(debtors[j].Balance) < epsilon {
			j++
		}
	}

	return settlements
}

// Calculate produces the simplified settlement plan for the transactions.
func (e *Engine) Calculate(ctx context.Context, transactions []Transaction, baseCurrency string) ([]Settlement, error) {
	balances, err := e.Balances(ctx, transactions, baseCurrency)
	if err != nil {
		return nil, err
	}
	return e.Simplify(balances, baseCurrency), nil
}

// Summarize returns the plan together with aggregate statistics. The user
// count covers only users appearing in the plan, not every balance holder.
func (e *Engine) Summarize(ctx context.Context, transactions []Transaction, baseCurrency string) ([]Settlement, Summary, error) {
	settlements, err := e.Calculate(ctx, transactions, baseCurrency)
	if err != nil {
		return nil, Summary{}, err
	}

	var total float64
	users := make(map[string]struct{})
	for _, s := range settlements {
		total += s.Amount
		users[s.From] = struct{}{}
		users[s.To] = struct{}{}
	}

	return settlements, Summary{
		TotalAmount:         total,
		Currency:            baseCurrency,
		NumberOfSettlements: len(settlements),
		NumberOfUsers:       len(users),
		CalculatedAt:        time.Now().UTC(),
	}, nil
}

// Validate guards against malformed settlement objects. It fails fast rather
// than filtering: tolerance handling happens in Simplify, not here.
func Validate(s Settlement) error {
	if s.From == "" || s.To == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidSettlement)
	}
	if s.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidSettlement)
	}
	if s.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrInvalidSettlement)
	}
	return nil
}

// Verify applies a settlement plan back onto the balances and reports any
// residual above the tolerance. The simplifier itself never raises for an
// unbalanced input set, so callers that need a completeness guarantee run
// this check after Simplify.
func Verify(balances []GroupBalance, settlements []Settlement) error {
	residual := make(map[string]float64, len(balances))
	for _, b := range balances {
		residual[b.UserID] = b.Balance
	}
	for _, s := range settlements {
		residual[s.From] += s.Amount
		residual[s.To] -= s.Amount
	}
	for userID, rem := range residual {
		if math.Abs(rem) > epsilon {
			return fmt.Errorf("unsettled residual %.4f for user %s", rem, userID)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
