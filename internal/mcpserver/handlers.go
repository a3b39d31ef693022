package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskTools holds the tool handlers backed by a task service.
type TaskTools struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskTools creates the tool handlers. A nil logger falls back to slog.Default.
func NewTaskTools(tasks service.TaskService, logger *slog.Logger) *TaskTools {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskTools{
		tasks:  tasks,
		logger: logger.With("component", "mcp_tools"),
	}
}

// HandleListTasks returns every task as a JSON array.
func (t *TaskTools) HandleListTasks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := t.tasks.List(ctx)
	if err != nil {
		return t.toolError("list tasks", err), nil
	}
	return mcp.NewToolResultJSON(tasks)
}

// HandleGetTask returns a single task.
// Parameters:
//   - id (number, required)
func (t *TaskTools) HandleGetTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := t.tasks.Get(ctx, id)
	if err != nil {
		return t.taskError("get task", id, err), nil
	}
	return mcp.NewToolResultJSON(task)
}

// HandleInsertTask adds a task and returns the full list.
// Parameters:
//   - id (number, required)
//   - description (string, required)
//   - completed (boolean, optional)
func (t *TaskTools) HandleInsertTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	draft, result := draftFromRequest(request)
	if result != nil {
		return result, nil
	}

	tasks, err := t.tasks.Insert(ctx, draft)
	if err != nil {
		return t.toolError("insert task", err), nil
	}
	return mcp.NewToolResultJSON(tasks)
}

// HandleUpdateTask overwrites a task and returns the full list.
// The arguments are validated before the task is looked up, matching PUT.
func (t *TaskTools) HandleUpdateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	draft, result := draftFromRequest(request)
	if result != nil {
		return result, nil
	}
	if err := draft.Validate(); err != nil {
		return t.toolError("update task", err), nil
	}

	if _, err := t.tasks.Get(ctx, draft.ID); err != nil {
		return t.taskError("update task", draft.ID, err), nil
	}

	tasks, err := t.tasks.Update(ctx, draft.ID, draft)
	if err != nil {
		return t.toolError("update task", err), nil
	}
	return mcp.NewToolResultJSON(tasks)
}

// HandleDeleteTask removes a task and returns the remaining list.
// Parameters:
//   - id (number, required)
func (t *TaskTools) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := t.tasks.Get(ctx, id); err != nil {
		return t.taskError("delete task", id, err), nil
	}

	tasks, err := t.tasks.Delete(ctx, id)
	if err != nil {
		return t.toolError("delete task", err), nil
	}
	return mcp.NewToolResultJSON(tasks)
}

// draftFromRequest reads the task arguments. A non-nil result means the
// arguments were unusable and should be returned to the client as is.
func draftFromRequest(request mcp.CallToolRequest) (domain.TaskDraft, *mcp.CallToolResult) {
	id, err := request.RequireInt("id")
	if err != nil {
		return domain.TaskDraft{}, mcp.NewToolResultError(err.Error())
	}
	description, err := request.RequireString("description")
	if err != nil {
		return domain.TaskDraft{}, mcp.NewToolResultError(err.Error())
	}

	return domain.TaskDraft{
		ID:          id,
		Description: description,
		Completed:   request.GetBool("completed", false),
	}, nil
}

// taskError reports a failed lookup, naming the ID when the task is missing.
func (t *TaskTools) taskError(op string, id int, err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrTaskNotFound) {
		return mcp.NewToolResultErrorf("task with ID %d not found", id)
	}
	return t.toolError(op, err)
}

// toolError converts a service failure into a tool error result.
func (t *TaskTools) toolError(op string, err error) *mcp.CallToolResult {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return mcp.NewToolResultError(validationErr.Error())
	case store.IsDuplicateError(err):
		return mcp.NewToolResultError("a task with this ID already exists")
	case errors.Is(err, domain.ErrValidation):
		return mcp.NewToolResultError("validation failed")
	}

	t.logger.Error("tool call failed",
		slog.String("operation", op),
		slog.String("error", redact.Error(err)))
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %s", op, redact.Error(err)))
}
