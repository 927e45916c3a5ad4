package todos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todos-go/apperror"
)

// memStore is an in-memory Store used to exercise the access layer without a
// database. It honors the same contract as the pgx implementation: every
// lookup and mutation matches on id AND owner.
type memStore struct {
	todos []Todo
	err   error // when set, every method fails with it
}

func (m *memStore) Insert(_ context.Context, ownerID int, title string) (*Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	t := Todo{
		ID:        uuid.New(),
		Title:     title,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	m.todos = append(m.todos, t)
	return &t, nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerID int) ([]Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []Todo{}
	for _, t := range m.todos {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) GetForOwner(_ context.Context, id uuid.UUID, ownerID int) (*Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			cp := t
			return &cp, nil
		}
	}
	return nil, ErrTodoNotFound
}

func (m *memStore) UpdateTitle(_ context.Context, id uuid.UUID, ownerID int, title string) (*Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			m.todos[i].Title = title
			cp := m.todos[i]
			return &cp, nil
		}
	}
	return nil, ErrTodoNotFound
}

func (m *memStore) ToggleCompleted(_ context.Context, id uuid.UUID, ownerID int) (*Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			m.todos[i].Completed = !m.todos[i].Completed
			cp := m.todos[i]
			return &cp, nil
		}
	}
	return nil, ErrTodoNotFound
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID, ownerID int) error {
	if m.err != nil {
		return m.err
	}
	for i, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return ErrTodoNotFound
}

func newTestService() (*Service, *memStore) {
	store := &memStore{}
	return NewService(store), store
}

func TestCreateSetsOwnerAndDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, 1, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", todo.Title)
	assert.Equal(t, 1, todo.OwnerID)
	assert.False(t, todo.Completed)
	assert.NotEqual(t, uuid.Nil, todo.ID)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t"} {
		_, err := svc.Create(ctx, 1, title)
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
	}
	assert.Empty(t, store.todos, "nothing may be persisted for invalid input")
}

func TestListIsScopedToOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, "task for A")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "task for B")
	require.NoError(t, err)

	listA, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, a.ID, listA[0].ID)

	listB, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	assert.NotEqual(t, a.ID, listB[0].ID)
}

func TestListUnknownOwnerIsEmptyNotError(t *testing.T) {
	svc, _ := newTestService()

	list, err := svc.List(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetIsScopedToOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "buy milk")
	require.NoError(t, err)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "buy milk", got.Title)

	// Another owner asking for the same id gets the same answer as for an id
	// that was never created.
	_, err = svc.Get(ctx, 2, created.ID)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Get(ctx, 1, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestRenameRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "buy milk")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, 1, created.ID, "buy bread")
	require.NoError(t, err)
	assert.Equal(t, "buy bread", renamed.Title)
	assert.Equal(t, created.ID, renamed.ID, "rename must not change the id")
	assert.Equal(t, created.OwnerID, renamed.OwnerID, "rename must not change the owner")
}

func TestRenameRejectsBlankTitle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "buy milk")
	require.NoError(t, err)

	_, err = svc.Rename(ctx, 1, created.ID, "  ")
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}

func TestMutationsByNonOwnerAreNotFoundAndDoNotMutate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "owned by A")
	require.NoError(t, err)

	// Owner 2 must not be able to touch A's record, and must not learn
	// whether it exists: every attempt is the same NotFound.
	_, err = svc.Rename(ctx, 2, created.ID, "stolen")
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.ToggleCompleted(ctx, 2, created.ID)
	assert.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, 2, created.ID)
	assert.True(t, apperror.IsNotFound(err))

	// A nonexistent id yields an error indistinguishable from the above.
	_, err = svc.Rename(ctx, 2, uuid.New(), "ghost")
	assert.True(t, apperror.IsNotFound(err))

	require.Len(t, store.todos, 1)
	assert.Equal(t, "owned by A", store.todos[0].Title)
	assert.False(t, store.todos[0].Completed)
}

func TestToggleFlipsStoredValue(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "task")
	require.NoError(t, err)

	toggled, err := svc.ToggleCompleted(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.ToggleCompleted(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed, "toggling twice must restore the original value")
}

func TestDeleteTwice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, "task")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))

	err = svc.Delete(ctx, 1, created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStoreFailurePropagatesAsDatabaseError(t *testing.T) {
	store := &memStore{err: errors.New("connection refused")}
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.List(ctx, 1)
	assert.True(t, apperror.IsDatabaseError(err))

	_, err = svc.Create(ctx, 1, "task")
	assert.True(t, apperror.IsDatabaseError(err))

	_, err = svc.Get(ctx, 1, uuid.New())
	assert.True(t, apperror.IsDatabaseError(err))

	_, err = svc.Rename(ctx, 1, uuid.New(), "task")
	assert.True(t, apperror.IsDatabaseError(err))

	_, err = svc.ToggleCompleted(ctx, 1, uuid.New())
	assert.True(t, apperror.IsDatabaseError(err))

	err = svc.Delete(ctx, 1, uuid.New())
	assert.True(t, apperror.IsDatabaseError(err))
}
