package group

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists groups.
type Repository interface {
	Create(ctx context.Context, group Group) error
	Get(ctx context.Context, id string) (Group, error)
	ListByMember(ctx context.Context, userID string) ([]Group, error)
	UpdateMembers(ctx context.Context, id string, members []string) error
}

// PostgresRepository stores groups in PostgreSQL with members as a text array.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a group record.
func (r *PostgresRepository) Create(ctx context.Context, group Group) error {
	id, err := uuid.Parse(group.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO groups (id, name, members, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		id, group.Name, group.Members, group.CreatedBy, group.CreatedAt.UTC())
	return err
}

// Get fetches one group by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Group, error) {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return Group{}, err
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, members, created_by, created_at FROM groups WHERE id = $1`, groupID)
	return scanGroup(row)
}

// ListByMember returns all groups the user belongs to.
func (r *PostgresRepository) ListByMember(ctx context.Context, userID string) ([]Group, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, members, created_by, created_at FROM groups WHERE $1 = ANY(members) ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// UpdateMembers replaces the group's member list.
func (r *PostgresRepository) UpdateMembers(ctx context.Context, id string, members []string) error {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE groups SET members = $1 WHERE id = $2`, members, groupID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (Group, error) {
	var g Group
	var id uuid.UUID
	var createdAt time.Time
	if err := row.Scan(&id, &g.Name, &g.Members, &g.CreatedBy, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Group{}, ErrGroupNotFound
		}
		return Group{}, err
	}
	g.ID = id.String()
	g.CreatedAt = createdAt.UTC()
	return g, nil
}
