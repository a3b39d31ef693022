package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/mcpserver"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/platform/metrics"
	"github.com/phrazzld/todo-api/internal/report"
	"github.com/phrazzld/todo-api/internal/service"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Metrics
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Event system
	eventEmitter *events.InMemoryEventEmitter

	// Services
	taskStore   *memory.TaskStore
	taskService service.TaskService
	exporter    *report.Exporter

	// Agent transport
	mcpServer *server.MCPServer

	// API description, nil when disabled
	openAPI http.Handler
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize store
	var storeOpts []memory.Option
	if cfg.Tasks.UniqueIDs {
		storeOpts = append(storeOpts, memory.WithUniqueIDs())
	}
	app.taskStore = memory.NewTaskStore(storeOpts...)

	// Initialize metrics on a private registry so tests can build several apps.
	// The stored-task gauge reads the store at scrape time.
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.MustNewMetrics(app.registry, app.taskStore.Count)

	// Initialize event emitter; metrics count every task mutation
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(app.metrics)

	// Initialize task service
	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.exporter = report.NewExporter(app.taskService)

	app.mcpServer, err = mcpserver.NewServer(app.taskService, logger, version)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	if cfg.OpenAPI.Enabled {
		app.openAPI, err = api.NewOpenAPIHandler(version)
		if err != nil {
			return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
		}
	}

	logger.Info("Application initialized successfully")
	return app, nil
}
