package expense

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists expenses.
type Repository interface {
	Create(ctx context.Context, expense Expense) error
	Get(ctx context.Context, id string) (Expense, error)
	ListByUser(ctx context.Context, userID string) ([]Expense, error)
	ListByGroup(ctx context.Context, groupID string) ([]Expense, error)
	ListByPeriod(ctx context.Context, userID string, start, end time.Time) ([]Expense, error)
}

// PostgresRepository stores expenses in PostgreSQL. Shares are kept as a JSONB
// column since they are only ever read back whole.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const expenseColumns = `id, group_id, description, amount, currency, category, payer_id, shares, created_by, created_at`

// Create inserts an expense record.
func (r *PostgresRepository) Create(ctx context.Context, expense Expense) error {
	id, err := uuid.Parse(expense.ID)
	if err != nil {
		return err
	}
	shares, err := json.Marshal(expense.Shares)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO expenses (id, group_id, description, amount, currency, category, payer_id, shares, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, expense.GroupID, expense.Description, expense.Amount, expense.Currency,
		expense.Category, expense.PayerID, shares, expense.CreatedBy, expense.CreatedAt.UTC())
	return err
}

// Get fetches one expense by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Expense, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return Expense{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, expenseID)
	expense, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, err
}

// ListByUser returns expenses the user paid or participates in, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT `+expenseColumns+` FROM expenses
        WHERE payer_id = $1 OR created_by = $1 OR shares @> $2
        ORDER BY created_at DESC`, userID, shareFilter(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExpenses(rows)
}

// ListByGroup returns all expenses of a group, newest first.
func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE group_id = $1 ORDER BY created_at DESC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExpenses(rows)
}

// ListByPeriod returns the user's expenses created within [start, end].
func (r *PostgresRepository) ListByPeriod(ctx context.Context, userID string, start, end time.Time) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT `+expenseColumns+` FROM expenses
        WHERE (payer_id = $1 OR created_by = $1 OR shares @> $2) AND created_at >= $3 AND created_at <= $4
        ORDER BY created_at DESC`,
		userID, shareFilter(userID), start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func shareFilter(userID string) []byte {
	payload, _ := json.Marshal([]map[string]string{{"user_id": userID}})
	return payload
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (Expense, error) {
	var e Expense
	var id uuid.UUID
	var shares []byte
	var createdAt time.Time
	if err := row.Scan(&id, &e.GroupID, &e.Description, &e.Amount, &e.Currency,
		&e.Category, &e.PayerID, &shares, &e.CreatedBy, &createdAt); err != nil {
		return Expense{}, err
	}
	if err := json.Unmarshal(shares, &e.Shares); err != nil {
		return Expense{}, err
	}
	e.ID = id.String()
	e.CreatedAt = createdAt.UTC()
	return e, nil
}

func collectExpenses(rows pgx.Rows) ([]Expense, error) {
	var expenses []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// PostgresRecurringRepository stores recurring expense templates in
// PostgreSQL so schedules survive restarts.
type PostgresRecurringRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRecurringRepository builds a template repository backed by PostgreSQL.
func NewPostgresRecurringRepository(db *pgxpool.Pool) *PostgresRecurringRepository {
	return &PostgresRecurringRepository{db: db}
}

const recurringColumns = `id, group_id, description, amount, currency, category, payer_id, participants, shares, frequency, next_due, created_by, created_at`

// Create inserts a recurring template.
func (r *PostgresRecurringRepository) Create(ctx context.Context, tmpl RecurringExpense) error {
	id, err := uuid.Parse(tmpl.ID)
	if err != nil {
		return err
	}
	shares, err := json.Marshal(tmpl.Shares)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO recurring_expenses (`+recurringColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, tmpl.GroupID, tmpl.Description, tmpl.Amount, tmpl.Currency, tmpl.Category,
		tmpl.PayerID, tmpl.Participants, shares, tmpl.Frequency, tmpl.NextDue.UTC(),
		tmpl.CreatedBy, tmpl.CreatedAt.UTC())
	return err
}

// ListDue returns templates whose next occurrence is at or before asOf.
func (r *PostgresRecurringRepository) ListDue(ctx context.Context, asOf time.Time) ([]RecurringExpense, error) {
	rows, err := r.db.Query(ctx, `SELECT `+recurringColumns+` FROM recurring_expenses WHERE next_due <= $1 ORDER BY next_due`, asOf.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []RecurringExpense
	for rows.Next() {
		var tmpl RecurringExpense
		var id uuid.UUID
		var shares []byte
		var nextDue, createdAt time.Time
		if err := rows.Scan(&id, &tmpl.GroupID, &tmpl.Description, &tmpl.Amount, &tmpl.Currency,
			&tmpl.Category, &tmpl.PayerID, &tmpl.Participants, &shares, &tmpl.Frequency,
			&nextDue, &tmpl.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(shares, &tmpl.Shares); err != nil {
			return nil, err
		}
		tmpl.ID = id.String()
		tmpl.NextDue = nextDue.UTC()
		tmpl.CreatedAt = createdAt.UTC()
		due = append(due, tmpl)
	}
	return due, rows.Err()
}

// UpdateNextDue advances a template's schedule.
func (r *PostgresRecurringRepository) UpdateNextDue(ctx context.Context, id string, nextDue time.Time) error {
	tmplID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE recurring_expenses SET next_due = $1 WHERE id = $2`, nextDue.UTC(), tmplID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
