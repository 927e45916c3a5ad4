package todos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTodoNotFound signals that no to-do matched both the id and the owner.
// The store does not distinguish "id does not exist" from "id belongs to a
// different owner"; both fall out of the same conditional match.
var ErrTodoNotFound = errors.New("todo not found")

// Store is the resource store contract for to-dos. Every lookup and every
// mutation is scoped to an owner: the filter matches on id AND owner in a
// single store operation, so there is no window between an ownership check
// and a write in which the check could be invalidated.
type Store interface {
	Insert(ctx context.Context, ownerID int, title string) (*Todo, error)
	ListByOwner(ctx context.Context, ownerID int) ([]Todo, error)
	GetForOwner(ctx context.Context, id uuid.UUID, ownerID int) (*Todo, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, ownerID int, title string) (*Todo, error)
	ToggleCompleted(ctx context.Context, id uuid.UUID, ownerID int) (*Todo, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID int) error
}

// pgxTodoStore is the PostgreSQL-backed Store.
type pgxTodoStore struct {
	db *pgxpool.Pool
}

// NewPgxTodoStore creates a Store backed by the given connection pool.
func NewPgxTodoStore(db *pgxpool.Pool) Store {
	return &pgxTodoStore{db: db}
}

func (s *pgxTodoStore) Insert(ctx context.Context, ownerID int, title string) (*Todo, error) {
	todo := &Todo{
		ID:      uuid.New(),
		Title:   title,
		OwnerID: ownerID,
	}
	query := `INSERT INTO todos (id, owner_id, title, completed)
              VALUES ($1, $2, $3, false)
              RETURNING completed, created_at`
	err := s.db.QueryRow(ctx, query, todo.ID, ownerID, title).Scan(&todo.Completed, &todo.CreatedAt)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// ListByOwner returns the owner's to-dos ordered by creation time, then id.
// The ordering is documented behavior, not an API contract.
func (s *pgxTodoStore) ListByOwner(ctx context.Context, ownerID int) ([]Todo, error) {
	query := `SELECT id, title, completed, owner_id, created_at
              FROM todos
              WHERE owner_id = $1
              ORDER BY created_at, id`
	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []Todo{}
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *pgxTodoStore) GetForOwner(ctx context.Context, id uuid.UUID, ownerID int) (*Todo, error) {
	var t Todo
	query := `SELECT id, title, completed, owner_id, created_at
              FROM todos
              WHERE id = $1 AND owner_id = $2`
	err := s.db.QueryRow(ctx, query, id, ownerID).Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *pgxTodoStore) UpdateTitle(ctx context.Context, id uuid.UUID, ownerID int, title string) (*Todo, error) {
	var t Todo
	query := `UPDATE todos
              SET title = $1
              WHERE id = $2 AND owner_id = $3
              RETURNING id, title, completed, owner_id, created_at`
	err := s.db.QueryRow(ctx, query, title, id, ownerID).Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ToggleCompleted negates the stored completed flag in the database itself,
// so concurrent toggles each flip the value they actually found.
func (s *pgxTodoStore) ToggleCompleted(ctx context.Context, id uuid.UUID, ownerID int) (*Todo, error) {
	var t Todo
	query := `UPDATE todos
              SET completed = NOT completed
              WHERE id = $1 AND owner_id = $2
              RETURNING id, title, completed, owner_id, created_at`
	err := s.db.QueryRow(ctx, query, id, ownerID).Scan(&t.ID, &t.Title, &t.Completed, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *pgxTodoStore) Delete(ctx context.Context, id uuid.UUID, ownerID int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTodoNotFound
	}
	return nil
}
