package todos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/user/todos-go/apperror"
)

// Service is the ownership-scoped access layer over the Store. Every method
// takes the already-authenticated caller id; no method can reach a to-do
// belonging to a different owner, whatever the input. Nonexistent ids and
// foreign-owned ids both surface as the same NotFound error.
type Service struct {
	store Store
}

// NewService creates a new Service with the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all to-dos owned by the caller. An unknown caller simply owns
// nothing, so the result is an empty list, never an error: the set is defined
// entirely by the owner match.
func (s *Service) List(ctx context.Context, callerID int) ([]Todo, error) {
	todos, err := s.store.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list todos", err)
	}
	return todos, nil
}

// Create inserts a new to-do owned by the caller, with completed=false and a
// store-assigned id. The title is validated upstream, but an empty title is
// still rejected here rather than trusted.
func (s *Service) Create(ctx context.Context, callerID int, title string) (*Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.NewValidationError("title must not be empty", nil)
	}
	todo, err := s.store.Insert(ctx, callerID, title)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create todo", err)
	}
	return todo, nil
}

// Get fetches a single to-do by id, scoped to the caller. A to-do that exists
// but belongs to someone else is indistinguishable from one that does not
// exist at all.
func (s *Service) Get(ctx context.Context, callerID int, id uuid.UUID) (*Todo, error) {
	todo, err := s.store.GetForOwner(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return nil, apperror.NewNotFoundError("todo not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get todo", err)
	}
	return todo, nil
}

// Rename sets a new title on the caller's to-do. The resolve and the write
// are one conditional store operation; if nothing matched both id and owner,
// the result is NotFound without revealing which part failed to match.
func (s *Service) Rename(ctx context.Context, callerID int, id uuid.UUID, title string) (*Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.NewValidationError("title must not be empty", nil)
	}
	todo, err := s.store.UpdateTitle(ctx, id, callerID, title)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return nil, apperror.NewNotFoundError("todo not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update todo", err)
	}
	return todo, nil
}

// ToggleCompleted flips the completed flag of the caller's to-do to the
// negation of the currently stored value and returns the updated record.
func (s *Service) ToggleCompleted(ctx context.Context, callerID int, id uuid.UUID) (*Todo, error) {
	todo, err := s.store.ToggleCompleted(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return nil, apperror.NewNotFoundError("todo not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to toggle todo", err)
	}
	return todo, nil
}

// Delete removes the caller's to-do. Absence (or foreign ownership) is a
// NotFound error; this is the single convention used everywhere, the handler
// serializes success as `true`.
func (s *Service) Delete(ctx context.Context, callerID int, id uuid.UUID) error {
	err := s.store.Delete(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return apperror.NewNotFoundError("todo not found", nil)
		}
		return apperror.NewDatabaseError("failed to delete todo", err)
	}
	return nil
}
