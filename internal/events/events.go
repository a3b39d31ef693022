package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names the kind of change a TaskEvent describes.
type EventType string

// Task event types.
const (
	TaskInserted  EventType = "task.inserted"
	TaskUpdated   EventType = "task.updated"
	TaskCompleted EventType = "task.completed"
	TaskReopened  EventType = "task.reopened"
	TaskDeleted   EventType = "task.deleted"
)

// AllEventTypes lists every event type in a stable order.
var AllEventTypes = []EventType{TaskInserted, TaskUpdated, TaskCompleted, TaskReopened, TaskDeleted}

// TaskEvent records a change to the task collection.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates what happened to the task
	Type EventType `json:"type"`

	// TaskID is the caller-assigned ID of the affected task
	TaskID int `json:"task_id"`

	// TaskCount is the number of stored tasks after the change
	TaskCount int `json:"task_count"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskEvent creates a TaskEvent with a fresh ID.
func NewTaskEvent(eventType EventType, taskID, taskCount int, now time.Time) *TaskEvent {
	return &TaskEvent{
		ID:        uuid.New(),
		Type:      eventType,
		TaskID:    taskID,
		TaskCount: taskCount,
		CreatedAt: now.UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
