package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStore defines the interface for task data storage.
//
// Tasks are kept in insertion order. IDs are chosen by the caller and need not
// be unique; every lookup acts on the first task with a matching ID. Each
// method is atomic, and the snapshots it returns are copies taken inside the
// same critical section as the change they reflect.
type TaskStore interface {
	// List returns a snapshot of all tasks in insertion order.
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.Task, error)

	// Get returns a copy of the first task with the given ID.
	// Returns ErrTaskNotFound if no task matches.
	Get(ctx context.Context, id int) (*domain.Task, error)

	// Insert appends the task and returns the updated snapshot.
	// Stores that enforce unique IDs return ErrDuplicateTaskID.
	Insert(ctx context.Context, task domain.Task) ([]domain.Task, error)

	// Update calls fn on the first task with the given ID and returns the
	// resulting snapshot. found reports whether a task matched; when it is
	// false fn is not called and the snapshot is unchanged.
	Update(ctx context.Context, id int, fn func(*domain.Task)) (tasks []domain.Task, found bool, err error)

	// Delete removes the first task with the given ID and returns the
	// resulting snapshot. found reports whether a task was removed.
	Delete(ctx context.Context, id int) (tasks []domain.Task, found bool, err error)
}
