package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskStore implements the store.TaskStore interface with an ordered slice
// guarded by a read/write mutex. Lookups scan linearly and act on the first
// task whose ID matches.
type TaskStore struct {
	mu        sync.RWMutex
	tasks     []domain.Task
	uniqueIDs bool
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithUniqueIDs makes Insert reject a task whose ID is already present.
func WithUniqueIDs() Option {
	return func(s *TaskStore) {
		s.uniqueIDs = true
	}
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore(opts ...Option) *TaskStore {
	s := &TaskStore{tasks: make([]domain.Task, 0)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)

// List returns a snapshot of all tasks in insertion order.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(), nil
}

// Get returns a copy of the first task with the given ID.
func (s *TaskStore) Get(ctx context.Context, id int) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}

	task := s.tasks[i].Clone()
	return &task, nil
}

// Insert appends task and returns the resulting snapshot.
func (s *TaskStore) Insert(ctx context.Context, task domain.Task) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.uniqueIDs && s.indexOf(task.ID) >= 0 {
		logger.FromContext(ctx).Debug("rejected task with duplicate id", "task_id", task.ID)
		return nil, store.NewStoreError("task", "insert",
			fmt.Sprintf("id %d already exists", task.ID), store.ErrDuplicateTaskID)
	}

	s.tasks = append(s.tasks, task.Clone())
	return s.snapshot(), nil
}

// Update applies fn to the first task with the given ID and returns the
// resulting snapshot. fn runs while the write lock is held and must not call
// back into the store.
func (s *TaskStore) Update(
	ctx context.Context,
	id int,
	fn func(*domain.Task),
) ([]domain.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return s.snapshot(), false, nil
	}

	fn(&s.tasks[i])
	return s.snapshot(), true, nil
}

// Delete removes the first task with the given ID and returns the resulting snapshot.
func (s *TaskStore) Delete(ctx context.Context, id int) ([]domain.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return s.snapshot(), false, nil
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.snapshot(), true, nil
}

// Count returns the number of stored tasks.
func (s *TaskStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

// indexOf returns the position of the first task with the given ID, or -1.
// Callers must hold s.mu.
func (s *TaskStore) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies the current tasks. Callers must hold s.mu.
func (s *TaskStore) snapshot() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].Clone()
	}
	return out
}
