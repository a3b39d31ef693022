package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskService provides task-related operations.
//
// Mutating operations return the full task list as it stood immediately after
// the change. Update and Delete treat an unknown ID as a no-op and return the
// unchanged list; callers that need a 404 check existence with Get first.
type TaskService interface {
	// List returns all tasks in insertion order.
	List(ctx context.Context) ([]domain.Task, error)

	// Get returns the first task with the given ID.
	// Returns store.ErrTaskNotFound if no task matches.
	Get(ctx context.Context, id int) (*domain.Task, error)

	// Insert validates the draft, appends a new task and returns the updated list.
	Insert(ctx context.Context, draft domain.TaskDraft) ([]domain.Task, error)

	// Update validates the draft and overwrites the description and completion
	// state of the first task with the given ID.
	Update(ctx context.Context, id int, draft domain.TaskDraft) ([]domain.Task, error)

	// Delete removes the first task with the given ID.
	Delete(ctx context.Context, id int) ([]domain.Task, error)
}

const taskServiceName = "task"

// TaskServiceOption configures a task service.
type TaskServiceOption func(*taskServiceImpl)

// WithClock replaces the time source used for created_at and completed_at.
func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *taskServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore    store.TaskStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
	now          func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
	opts ...TaskServiceOption,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &ServiceError{
			Service: taskServiceName,
			Op:      "create_service",
			Err:     errors.New("taskStore cannot be nil"),
		}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{
			Service: taskServiceName,
			Op:      "create_service",
			Err:     errors.New("eventEmitter cannot be nil"),
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		taskStore:    taskStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "task_service"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns all tasks in insertion order.
func (s *taskServiceImpl) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, NewServiceError(taskServiceName, "list", err)
	}
	return tasks, nil
}

// Get returns the first task with the given ID.
func (s *taskServiceImpl) Get(ctx context.Context, id int) (*domain.Task, error) {
	task, err := s.taskStore.Get(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("task not found", "task_id", id)
		} else {
			s.logger.Error("failed to get task", "error", err, "task_id", id)
		}
		return nil, NewServiceError(taskServiceName, "get", err)
	}
	return task, nil
}

// Insert validates the draft, appends a new task and returns the updated list.
// A draft with Completed set is stored completed but without a completion time.
func (s *taskServiceImpl) Insert(ctx context.Context, draft domain.TaskDraft) ([]domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	task := domain.NewTask(draft, s.now())

	tasks, err := s.taskStore.Insert(ctx, task)
	if err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("duplicate task id rejected", "error", err, "task_id", draft.ID)
		} else {
			s.logger.Error("failed to insert task", "error", err, "task_id", draft.ID)
		}
		return nil, NewServiceError(taskServiceName, "insert", err)
	}

	s.logger.Info("task inserted", "task_id", task.ID, "task_count", len(tasks))
	s.emit(ctx, events.TaskInserted, task.ID, len(tasks))

	return tasks, nil
}

// Update validates the draft and applies it to the first task with the given ID.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id int,
	draft domain.TaskDraft,
) ([]domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	transition := domain.TransitionNone

	tasks, found, err := s.taskStore.Update(ctx, id, func(task *domain.Task) {
		transition = task.Apply(draft, now)
	})
	if err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, NewServiceError(taskServiceName, "update", err)
	}

	if !found {
		s.logger.Debug("update ignored for unknown task", "task_id", id)
		return tasks, nil
	}

	eventType := events.TaskUpdated
	switch transition {
	case domain.TransitionCompleted:
		eventType = events.TaskCompleted
	case domain.TransitionReopened:
		eventType = events.TaskReopened
	}

	s.logger.Info("task updated", "task_id", id, "event_type", eventType)
	s.emit(ctx, eventType, id, len(tasks))

	return tasks, nil
}

// Delete removes the first task with the given ID.
func (s *taskServiceImpl) Delete(ctx context.Context, id int) ([]domain.Task, error) {
	tasks, found, err := s.taskStore.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return nil, NewServiceError(taskServiceName, "delete", err)
	}

	if !found {
		s.logger.Debug("delete ignored for unknown task", "task_id", id)
		return tasks, nil
	}

	s.logger.Info("task deleted", "task_id", id, "task_count", len(tasks))
	s.emit(ctx, events.TaskDeleted, id, len(tasks))

	return tasks, nil
}

// emit publishes a task event. The change has already been committed, so a
// handler failure is logged rather than returned.
func (s *taskServiceImpl) emit(ctx context.Context, eventType events.EventType, taskID, taskCount int) {
	event := events.NewTaskEvent(eventType, taskID, taskCount, s.now())
	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("failed to emit task event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type,
			"task_id", taskID)
	}
}
