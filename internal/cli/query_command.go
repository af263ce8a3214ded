package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/querygate"
	"task-manager/internal/services"
)

func (r *RootCommand) newQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query [sql]",
		Short: "Run a read-only query and print the result as JSON",
		Long: `Run a SELECT or PRAGMA statement against the configured database and
print {rowCount, data} as JSON.

Against the in-memory development database this sees only the empty schema,
so it is mostly useful with --env production.

Examples:
  taskd query "SELECT COUNT(*) AS count FROM tasks"
  taskd --env production query "SELECT * FROM tasks ORDER BY dueDateTime"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunQuery(cmd.Context(), r.config, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
}

// RunQuery opens the configured database, runs statement through the query
// gate and writes the result to out.
func RunQuery(ctx context.Context, cfg *config.Config, statement string, out io.Writer) error {
	eh := NewErrorHandler()

	// Refuse before paying for a connection.
	if err := querygate.Authorize(statement).Err(); err != nil {
		return eh.Handle("run query", err)
	}

	barrier := config.StartDatabase(ctx, cfg)
	defer barrier.Close()

	initCtx, cancel := context.WithTimeout(ctx, cfg.Database.InitTimeout)
	defer cancel()
	if err := barrier.Wait(initCtx); err != nil {
		return eh.Handle("open database", err)
	}

	result, err := services.NewDatabaseService(barrier, cfg).ExecuteQuery(ctx, statement)
	if err != nil {
		return eh.Handle("run query", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
