package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTask(id int, description string) domain.Task {
	return domain.NewTask(domain.TaskDraft{ID: id, Description: description}, createdAt)
}

func TestTaskStore_ListEmpty(t *testing.T) {
	s := memory.NewTaskStore()

	tasks, err := s.List(context.Background())

	require.NoError(t, err)
	require.NotNil(t, tasks, "empty store must list as an empty slice, not nil")
	assert.Empty(t, tasks)
}

func TestTaskStore_InsertPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTaskStore()

	_, err := s.Insert(ctx, newTask(2, "second"))
	require.NoError(t, err)
	tasks, err := s.Insert(ctx, newTask(1, "first"))
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, 2, tasks[0].ID)
	assert.Equal(t, 1, tasks[1].ID)
}

func TestTaskStore_DuplicateIDsFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTaskStore()

	_, err := s.Insert(ctx, newTask(1, "original"))
	require.NoError(t, err)
	tasks, err := s.Insert(ctx, newTask(1, "shadowed"))
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Description)

	tasks, found, err := s.Update(ctx, 1, func(task *domain.Task) {
		task.Description = "changed"
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "changed", tasks[0].Description)
	assert.Equal(t, "shadowed", tasks[1].Description)

	tasks, found, err = s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, tasks, 1)
	assert.Equal(t, "shadowed", tasks[0].Description)
}

func TestTaskStore_WithUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTaskStore(memory.WithUniqueIDs())

	_, err := s.Insert(ctx, newTask(1, "original"))
	require.NoError(t, err)

	tasks, err := s.Insert(ctx, newTask(1, "again"))
	require.Error(t, err)
	assert.Nil(t, tasks)
	assert.ErrorIs(t, err, store.ErrDuplicateTaskID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, store.IsDuplicateError(err))

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "task", storeErr.Entity)
	assert.Equal(t, "insert", storeErr.Operation)
	assert.Equal(t, "insert operation on task failed: id 1 already exists: "+store.ErrDuplicateTaskID.Error(), err.Error())

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTaskStore_GetNotFound(t *testing.T) {
	s := memory.NewTaskStore()

	task, err := s.Get(context.Background(), 9999)

	assert.Nil(t, task)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestTaskStore_UnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTaskStore()
	_, err := s.Insert(ctx, newTask(1, "only"))
	require.NoError(t, err)

	called := false
	tasks, found, err := s.Update(ctx, 42, func(*domain.Task) { called = true })
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, called)
	assert.Len(t, tasks, 1)

	tasks, found, err = s.Delete(ctx, 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, tasks, 1)
}

func TestTaskStore_SnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTaskStore()
	_, err := s.Insert(ctx, newTask(1, "isolated"))
	require.NoError(t, err)

	completedAt := createdAt.Add(time.Hour)
	_, _, err = s.Update(ctx, 1, func(task *domain.Task) {
		task.Completed = true
		task.CompletedAt = &completedAt
	})
	require.NoError(t, err)

	listed, err := s.List(ctx)
	require.NoError(t, err)
	listed[0].Description = "mutated"
	*listed[0].CompletedAt = createdAt

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	got.Description = "mutated too"

	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "isolated", again.Description)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, completedAt, *again.CompletedAt)
}

func TestTaskStore_CancelledContext(t *testing.T) {
	s := memory.NewTaskStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Insert(ctx, newTask(1, "never stored"))
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = s.Update(ctx, 1, func(*domain.Task) {})
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = s.Delete(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTaskStore()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := s.Insert(ctx, newTask(id, "concurrent"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, workers)
}

func TestTaskStore_Count(t *testing.T) {
	ctx := context.Background()
	s := memory.NewTaskStore()
	assert.Zero(t, s.Count())

	_, err := s.Insert(ctx, newTask(1, "first"))
	require.NoError(t, err)
	_, err = s.Insert(ctx, newTask(1, "second"))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())

	_, _, err = s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count())
}
