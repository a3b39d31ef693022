package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Tasks   TasksConfig   `mapstructure:"tasks"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	OpenAPI OpenAPIConfig `mapstructure:"openapi"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds how long in-flight requests may run after a
	// shutdown signal.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// TasksConfig controls task store behavior.
type TasksConfig struct {
	// UniqueIDs rejects inserts that reuse an existing task ID.
	UniqueIDs bool `mapstructure:"unique_ids"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// OpenAPIConfig controls the OpenAPI document served at /api/openapi.json.
type OpenAPIConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MCPConfig controls the Model Context Protocol endpoint served alongside the HTTP API.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
