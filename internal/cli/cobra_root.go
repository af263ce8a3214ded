package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-manager/internal/config"
	"task-manager/internal/logging"
)

// Version is stamped at build time through -ldflags.
var Version = "dev"

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	config *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root cobra command with global flags. Running
// it without a subcommand starts the server.
func NewRootCommand(loader *config.Loader) *RootCommand {
	if loader == nil {
		loader = config.NewLoader()
	}
	root := &RootCommand{loader: loader}

	root.cmd = &cobra.Command{
		Use:   "taskd",
		Short: "Task manager API server",
		Long: `taskd serves a JSON API for managing tasks and browsing the database
that stores them.

In development and test it keeps everything in an in-memory SQLite database
that starts empty on every run. In production it connects to PostgreSQL.

EXAMPLES:
  taskd                                       # Serve on the configured port
  taskd serve --port 8080                     # Serve on port 8080
  taskd --env production serve                # Serve from PostgreSQL (needs DATABASE_URL)
  taskd query "SELECT * FROM tasks"           # Run a read-only query and print JSON
  taskd version                               # Print the build version

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > taskd.yaml > defaults

    TASKD_ENV, APP_ENV                        development, test or production (default: development)
    TASKD_DATABASE_URL, DATABASE_URL          PostgreSQL connection string (required in production)
    TASKD_PORT, PORT                          Listen port (default: 3001)
    TASKD_SERVER_HOST                         Listen host (default: all interfaces)
    TASKD_DATABASE_MAX_CONNS                  Pool size for PostgreSQL (default: 10)
    TASKD_DATABASE_INIT_TIMEOUT               Startup connection budget (default: 30s)
    TASKD_DATABASE_QUERY_TIMEOUT              Per-statement budget (default: 10s)
    TASKD_SERVER_CORS_ORIGIN                  Allowed CORS origin (default: *)
    TASKD_DEBUG                               Enable debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runServe(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the cobra command, mainly so tests can set args and
// output streams.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Config returns the configuration loaded for the running command.
func (r *RootCommand) Config() *config.Config {
	return r.config
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Path to a config file (default: ./taskd.yaml when present)")
	flags.String("env", "", "Environment: development, test or production (overrides TASKD_ENV)")
	flags.String("database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flags.String("host", "", "Listen host (overrides TASKD_SERVER_HOST)")
	flags.Int("port", 0, "Listen port (overrides PORT)")
	flags.Bool("debug", false, "Enable debug logging (overrides TASKD_DEBUG)")
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newServeCommand(),
		r.newQueryCommand(),
		r.newVersionCommand(),
	)
}

// loadConfig reads configuration and applies the flags the user set.
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()

	if path, _ := flags.GetString("config"); path != "" {
		r.loader.WithConfigFile(path)
	}

	overrides := &config.ConfigOverrides{
		Environment: changedString(flags, "env"),
		DatabaseURL: changedString(flags, "database-url"),
		Host:        changedString(flags, "host"),
	}
	if flags.Changed("port") {
		port, _ := flags.GetInt("port")
		overrides.Port = &port
	}
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		overrides.Debug = &debug
	}

	cfg, err := r.loader.LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	r.config = cfg
	logging.SetDebug(cfg.Debug)
	r.logger = logging.New(os.Stderr, cfg.Debug)
	return nil
}

// changedString returns the flag value only when the user set it, so an
// explicit empty value still overrides the environment.
func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func (r *RootCommand) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		// Printing the version must work without a valid configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "taskd %s\n", Version)
			return err
		},
	}
}
