package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/report"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskExporter renders the task list as a document.
type TaskExporter interface {
	Export(ctx context.Context, format string) (*report.Document, error)
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	exporter    TaskExporter
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	taskService service.TaskService,
	exporter TaskExporter,
	logger *slog.Logger,
) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if exporter == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("exporter cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		exporter:    exporter,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r, log)
	if !ok {
		return
	}

	task, ok := h.findTask(w, r, id, "failed to get task")
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /api/tasks requests.
// The response body is the full task list after the insert.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, ok := decodeTaskRequest(w, r, log)
	if !ok {
		return
	}

	tasks, err := h.taskService.Insert(r.Context(), req.Draft())
	if err != nil {
		HandleAPIError(w, r, err, "failed to create task")
		return
	}

	log.Debug("task created", slog.Int("task_id", req.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateTask handles PUT /api/tasks/{id} requests.
// The body is validated before the task's existence is checked.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r, log)
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r, log)
	if !ok {
		return
	}

	if _, ok := h.findTask(w, r, id, "failed to update task"); !ok {
		return
	}

	tasks, err := h.taskService.Update(r.Context(), id, req.Draft())
	if err != nil {
		HandleAPIError(w, r, err, "failed to update task")
		return
	}

	log.Debug("task updated", slog.Int("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathID(w, r, log)
	if !ok {
		return
	}

	if _, ok := h.findTask(w, r, id, "failed to delete task"); !ok {
		return
	}

	tasks, err := h.taskService.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "failed to delete task")
		return
	}

	log.Debug("task deleted", slog.Int("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// ExportTasks handles GET /api/tasks/export?format=json|csv|pdf requests.
func (h *TaskHandler) ExportTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	doc, err := h.exporter.Export(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		HandleAPIError(w, r, err, "failed to export tasks")
		return
	}

	w.Header().Set("Content-Type", doc.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		log.Error("failed to write export", slog.String("error", err.Error()))
	}
}

// pathID parses the {id} path parameter, writing a 400 response on failure.
func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid task ID", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "failed to parse task ID")
		return 0, false
	}
	return id, true
}

// findTask looks up the task, writing a 404 or 500 response on failure.
func (h *TaskHandler) findTask(
	w http.ResponseWriter,
	r *http.Request,
	id int,
	failureContext string,
) (*domain.Task, bool) {
	task, err := h.taskService.Get(r.Context(), id)
	if err == nil {
		return task, true
	}

	if errors.Is(err, store.ErrTaskNotFound) {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound,
			fmt.Sprintf("task with ID %d not found", id), err)
		return nil, false
	}

	HandleAPIError(w, r, err, failureContext)
	return nil, false
}
