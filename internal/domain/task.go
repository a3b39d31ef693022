package domain

import "time"

// Description length bounds, counted in characters.
const (
	MinDescriptionLength = 3
	MaxDescriptionLength = 200
)

// Task is a single to-do item.
//
// CompletedAt is only maintained by Apply: a task inserted with Completed
// already true keeps a nil CompletedAt until it is reopened and completed
// again through an update.
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TaskDraft holds the caller-submitted fields used to insert or update a task.
type TaskDraft struct {
	ID          int    `json:"id"`
	Description string `json:"description" validate:"required,notblank,min=3,max=200"`
	Completed   bool   `json:"completed"`
}

// Transition describes how an update changed a task's completion state.
type Transition int

const (
	// TransitionNone means the completion state did not change.
	TransitionNone Transition = iota
	// TransitionCompleted means the task went from open to completed.
	TransitionCompleted
	// TransitionReopened means the task went from completed to open.
	TransitionReopened
)

// NewTask builds a task from a draft, stamping CreatedAt with now in UTC.
func NewTask(draft TaskDraft, now time.Time) Task {
	return Task{
		ID:          draft.ID,
		Description: draft.Description,
		Completed:   draft.Completed,
		CreatedAt:   now.UTC(),
	}
}

// Apply overwrites the task's description and completion flag from draft.
// The ID in the draft is ignored.
//
// Completing an open task stamps CompletedAt with now; any update that leaves
// the task open clears CompletedAt, whatever its previous state.
func (t *Task) Apply(draft TaskDraft, now time.Time) Transition {
	wasCompleted := t.Completed

	t.Description = draft.Description
	switch {
	case draft.Completed && !wasCompleted:
		completedAt := now.UTC()
		t.CompletedAt = &completedAt
	case !draft.Completed:
		t.CompletedAt = nil
	}
	t.Completed = draft.Completed

	switch {
	case t.Completed && !wasCompleted:
		return TransitionCompleted
	case !t.Completed && wasCompleted:
		return TransitionReopened
	default:
		return TransitionNone
	}
}

// Clone returns a copy of the task that shares no memory with the original.
func (t Task) Clone() Task {
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		t.CompletedAt = &completedAt
	}
	return t
}
