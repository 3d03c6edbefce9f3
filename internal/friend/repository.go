package friend

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists friend lists.
type Repository interface {
	Create(ctx context.Context, friend Friend) error
	Get(ctx context.Context, id string) (Friend, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Friend, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores friends in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a friend entry.
func (r *PostgresRepository) Create(ctx context.Context, friend Friend) error {
	id, err := uuid.Parse(friend.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO friends (id, owner_id, name, email, upi_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		id, friend.OwnerID, friend.Name, friend.Email, friend.UPIID, friend.CreatedAt.UTC())
	return err
}

// Get fetches one friend entry.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Friend, error) {
	friendID, err := uuid.Parse(id)
	if err != nil {
		return Friend{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT id, owner_id, name, email, upi_id, created_at FROM friends WHERE id = $1`, friendID)
	return scanFriend(row)
}

// ListByOwner returns the friend list of a user.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Friend, error) {
	rows, err := r.db.Query(ctx, `SELECT id, owner_id, name, email, upi_id, created_at FROM friends WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []Friend
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

// Delete removes a friend entry.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	friendID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM friends WHERE id = $1`, friendID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFriendNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFriend(row rowScanner) (Friend, error) {
	var f Friend
	var id uuid.UUID
	var createdAt time.Time
	if err := row.Scan(&id, &f.OwnerID, &f.Name, &f.Email, &f.UPIID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Friend{}, ErrFriendNotFound
		}
		return Friend{}, err
	}
	f.ID = id.String()
	f.CreatedAt = createdAt.UTC()
	return f, nil
}
