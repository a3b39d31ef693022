package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

// newRootCommand builds the todo-api command tree. Running the root command
// without a subcommand starts the HTTP server.
func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "todo-api",
		Short:        "In-memory to-do list API",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, configFile)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yaml if present)")
	root.PersistentFlags().Int("port", 8080, "HTTP listen port")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the task API over HTTP",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd, configFile)
			},
		},
		&cobra.Command{
			Use:   "mcp",
			Short: "Serve the task tools over MCP stdio",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMCP(cmd, configFile)
			},
		},
	)

	return root
}

// loadConfig reads configuration with the command's flags taking precedence.
func loadConfig(cmd *cobra.Command, configFile string) (*config.Config, error) {
	opts := []config.LoadOption{config.WithFlags(cmd.Flags())}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, configFile string) error {
	cfg, err := loadConfig(cmd, configFile)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"unique_ids", cfg.Tasks.UniqueIDs,
		"metrics_enabled", cfg.Metrics.Enabled,
		"mcp_enabled", cfg.MCP.Enabled)

	app, err := newApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

// runMCP serves the MCP tools on stdin/stdout. Stdout carries the protocol,
// so logs go to stderr.
func runMCP(cmd *cobra.Command, configFile string) error {
	cfg, err := loadConfig(cmd, configFile)
	if err != nil {
		return err
	}

	log, err := logger.SetupWithWriter(cfg.Server, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	app, err := newApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	log.Info("Serving MCP over stdio", "version", version)

	errLogger := slog.NewLogLogger(log.Handler(), slog.LevelError)
	if err := server.ServeStdio(app.mcpServer, server.WithErrorLogger(errLogger)); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}
