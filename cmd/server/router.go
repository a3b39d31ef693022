package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"github.com/phrazzld/todo-api/internal/api"
	apiMiddleware "github.com/phrazzld/todo-api/internal/api/middleware"
	"github.com/phrazzld/todo-api/internal/platform/metrics"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Recoverer sits innermost so the logging and metrics middleware see the 500
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Metrics(app.metrics))
	r.Use(apiMiddleware.Recoverer)

	taskHandler := api.NewTaskHandler(app.taskService, app.exporter, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/export", taskHandler.ExportTasks)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})

		if app.openAPI != nil {
			r.Method(http.MethodGet, "/openapi.json", app.openAPI)
		}
	})

	if app.config.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))
	}

	if app.config.MCP.Enabled {
		r.Handle("/mcp", server.NewStreamableHTTPServer(app.mcpServer))
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
