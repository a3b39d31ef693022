package api

import (
	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskRequest defines the payload for creating or updating a task.
// On update the ID is ignored; the path parameter selects the task.
type TaskRequest struct {
	ID          int    `json:"id" jsonschema:"description=Caller-chosen task ID"`
	Description string `json:"description" jsonschema:"minLength=3,maxLength=200"`
	Completed   bool   `json:"completed" jsonschema:"default=false"`
}

// Draft converts the request into a domain draft.
func (r TaskRequest) Draft() domain.TaskDraft {
	return domain.TaskDraft{
		ID:          r.ID,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

// Validate applies the domain validation rules to the request.
func (r TaskRequest) Validate() error {
	return r.Draft().Validate()
}
