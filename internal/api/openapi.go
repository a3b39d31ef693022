package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/invopop/jsonschema"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
)

const openAPIVersion = "3.1.0"

type openAPIDocument struct {
	OpenAPI    string                                 `json:"openapi"`
	Info       openAPIInfo                            `json:"info"`
	Paths      map[string]map[string]openAPIOperation `json:"paths"`
	Components openAPIComponents                      `json:"components"`
}

type openAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type openAPIComponents struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}

type openAPIOperation struct {
	OperationID string                     `json:"operationId"`
	Summary     string                     `json:"summary"`
	Parameters  []openAPIParameter         `json:"parameters,omitempty"`
	RequestBody *openAPIRequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]openAPIResponse `json:"responses"`
}

type openAPIParameter struct {
	Name     string             `json:"name"`
	In       string             `json:"in"`
	Required bool               `json:"required"`
	Schema   *jsonschema.Schema `json:"schema"`
}

type openAPIRequestBody struct {
	Required bool                        `json:"required"`
	Content  map[string]openAPIMediaType `json:"content"`
}

type openAPIResponse struct {
	Description string                      `json:"description"`
	Content     map[string]openAPIMediaType `json:"content,omitempty"`
}

type openAPIMediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

// NewOpenAPIHandler renders the task API description once and serves it as JSON.
func NewOpenAPIHandler(version string) (http.Handler, error) {
	body, err := json.Marshal(buildOpenAPIDocument(version))
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}), nil
}

func buildOpenAPIDocument(version string) openAPIDocument {
	reflector := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	reflect := func(v any) *jsonschema.Schema {
		s := reflector.Reflect(v)
		s.Version = ""
		return s
	}

	task := reflect(domain.Task{})
	task.Properties.Set("completed_at", &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Format: "date-time"},
			{Type: "null"},
		},
	})

	taskRequest := reflect(TaskRequest{})
	taskRequest.Required = []string{"id", "description"}

	errorResponse := reflect(shared.ErrorResponse{})

	ref := func(name string) *jsonschema.Schema {
		return &jsonschema.Schema{Ref: "#/components/schemas/" + name}
	}
	jsonContent := func(s *jsonschema.Schema) map[string]openAPIMediaType {
		return map[string]openAPIMediaType{"application/json": {Schema: s}}
	}
	taskList := openAPIResponse{
		Description: "All tasks in insertion order",
		Content:     jsonContent(&jsonschema.Schema{Type: "array", Items: ref("Task")}),
	}
	failure := func(description string) openAPIResponse {
		return openAPIResponse{Description: description, Content: jsonContent(ref("ErrorResponse"))}
	}
	idParam := []openAPIParameter{{Name: "id", In: "path", Required: true, Schema: &jsonschema.Schema{Type: "integer"}}}
	body := &openAPIRequestBody{Required: true, Content: jsonContent(ref("TaskRequest"))}

	return openAPIDocument{
		OpenAPI: openAPIVersion,
		Info:    openAPIInfo{Title: "todo-api", Version: version},
		Paths: map[string]map[string]openAPIOperation{
			"/api/tasks": {
				"get": {
					OperationID: "listTasks",
					Summary:     "List tasks",
					Responses: map[string]openAPIResponse{
						"200": taskList,
						"500": failure("Unexpected failure"),
					},
				},
				"post": {
					OperationID: "insertTask",
					Summary:     "Add a task",
					RequestBody: body,
					Responses: map[string]openAPIResponse{
						"200": taskList,
						"400": failure("Invalid body or duplicate ID"),
						"500": failure("Unexpected failure"),
					},
				},
			},
			"/api/tasks/{id}": {
				"get": {
					OperationID: "getTask",
					Summary:     "Get the first task with an ID",
					Parameters:  idParam,
					Responses: map[string]openAPIResponse{
						"200": {Description: "The task", Content: jsonContent(ref("Task"))},
						"400": failure("ID is not an integer"),
						"404": failure("No task has this ID"),
					},
				},
				"put": {
					OperationID: "updateTask",
					Summary:     "Overwrite a task's description and completion state",
					Parameters:  idParam,
					RequestBody: body,
					Responses: map[string]openAPIResponse{
						"200": taskList,
						"400": failure("Invalid ID or body"),
						"404": failure("No task has this ID"),
						"500": failure("Unexpected failure"),
					},
				},
				"delete": {
					OperationID: "deleteTask",
					Summary:     "Remove the first task with an ID",
					Parameters:  idParam,
					Responses: map[string]openAPIResponse{
						"200": taskList,
						"400": failure("ID is not an integer"),
						"404": failure("No task has this ID"),
						"500": failure("Unexpected failure"),
					},
				},
			},
			"/api/tasks/export": {
				"get": {
					OperationID: "exportTasks",
					Summary:     "Export tasks as json, csv or pdf",
					Parameters: []openAPIParameter{{
						Name:   "format",
						In:     "query",
						Schema: &jsonschema.Schema{Type: "string", Enum: []any{"json", "csv", "pdf"}},
					}},
					Responses: map[string]openAPIResponse{
						"200": {Description: "Rendered document"},
						"400": failure("Unsupported format"),
						"500": failure("Unexpected failure"),
					},
				},
			},
		},
		Components: openAPIComponents{
			Schemas: map[string]*jsonschema.Schema{
				"Task":          task,
				"TaskRequest":   taskRequest,
				"ErrorResponse": errorResponse,
			},
		},
	}
}
