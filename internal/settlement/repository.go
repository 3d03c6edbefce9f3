package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists settlement records.
type Repository interface {
	Create(ctx context.Context, record Record) error
	Get(ctx context.Context, id string) (Record, error)
	ListByGroup(ctx context.Context, groupID string) ([]Record, error)
	ListByPeriod(ctx context.Context, userID string, start, end time.Time) ([]Record, error)
	MarkCompleted(ctx context.Context, id string, settledAt time.Time) error
}

// PostgresRepository stores settlement records in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a settlement record.
func (r *PostgresRepository) Create(ctx context.Context, record Record) error {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO settlements (id, group_id, from_user_id, to_user_id, amount, currency, note, status, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, record.GroupID, record.FromUserID, record.ToUserID, record.Amount,
		record.Currency, record.Note, record.Status, record.CreatedBy, record.CreatedAt.UTC())
	return err
}

const recordColumns = `id, group_id, from_user_id, to_user_id, amount, currency, note, status, created_by, created_at, settled_at`

// Get fetches one settlement record by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Record, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return Record{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM settlements WHERE id = $1`, recordID)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return record, err
}

// ListByGroup returns all settlements for a group, newest first.
func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]Record, error) {
	rows, err := r.db.Query(ctx, `SELECT `+recordColumns+` FROM settlements WHERE group_id = $1 ORDER BY created_at DESC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByPeriod returns the user's settlements created within [start, end].
func (r *PostgresRepository) ListByPeriod(ctx context.Context, userID string, start, end time.Time) ([]Record, error) {
	rows, err := r.db.Query(ctx, `SELECT `+recordColumns+` FROM settlements
        WHERE (from_user_id = $1 OR to_user_id = $1) AND created_at >= $2 AND created_at <= $3
        ORDER BY created_at DESC`,
		userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// MarkCompleted flips a pending settlement to completed.
func (r *PostgresRepository) MarkCompleted(ctx context.Context, id string, settledAt time.Time) error {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE settlements SET status = $1, settled_at = $2 WHERE id = $3 AND status = $4`,
		StatusCompleted, settledAt.UTC(), recordID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var id uuid.UUID
	var createdAt time.Time
	var settledAt *time.Time
	if err := row.Scan(&id, &rec.GroupID, &rec.FromUserID, &rec.ToUserID, &rec.Amount,
		&rec.Currency, &rec.Note, &rec.Status, &rec.CreatedBy, &createdAt, &settledAt); err != nil {
		return Record{}, err
	}
	rec.ID = id.String()
	rec.CreatedAt = createdAt.UTC()
	if settledAt != nil {
		utc := settledAt.UTC()
		rec.SettledAt = &utc
	}
	return rec, nil
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
