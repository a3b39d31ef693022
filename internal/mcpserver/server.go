package mcpserver

import (
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/phrazzld/todo-api/internal/service"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "todo-api"

// NewServer creates an MCP server with all task tools registered against tasks.
func NewServer(tasks service.TaskService, logger *slog.Logger, version string) (*server.MCPServer, error) {
	if tasks == nil {
		return nil, errors.New("task service cannot be nil")
	}

	h := NewTaskTools(tasks, logger)

	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(listTasksTool(), h.HandleListTasks)
	s.AddTool(getTaskTool(), h.HandleGetTask)
	s.AddTool(insertTaskTool(), h.HandleInsertTask)
	s.AddTool(updateTaskTool(), h.HandleUpdateTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)

	return s, nil
}
