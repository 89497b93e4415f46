package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbtsync/internal/cli/output"
	"github.com/leapstack-labs/dbtsync/pkg/client"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	SQLPath     string        // Path-mode source: a file already known to the server
	ExtraConfig string        // Extra linter config appended to the request URL
	Format      string        // Output format: text, markdown, json
	Timeout     time.Duration // Request timeout override
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Lint a SQL model via the dbt sync server",
		Long: `Send a SQL/dbt template to the dbt sync server for linting.

The SQL is read from a file argument or stdin and sent in the request
body. With --sql-path the server reads the file itself instead. All lint
rules run server-side; this command only renders the findings.`,
		Example: `  # Lint a file
  dbtsync lint models/staging/stg_orders.sql

  # Lint from stdin
  cat model.sql | dbtsync lint

  # Let the server read the file itself
  dbtsync lint --sql-path models/staging/stg_orders.sql

  # Use an extra linter config
  dbtsync lint model.sql --extra-config .sqlfluff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.SQLPath, "sql-path", "", "Send a server-known file path instead of SQL text")
	cmd.Flags().StringVar(&opts.ExtraConfig, "extra-config", "", "Extra linter config path appended to the request")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Request timeout (default from config)")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions, args []string) error {
	cfg := ConfigFrom(cmd)
	r := RendererFrom(cmd)
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	var sql *string
	if opts.SQLPath == "" {
		var err error
		sql, err = readSQL(cmd, args)
		if err != nil {
			return err
		}
	}

	c := newSyncClient(cmd, cfg, sql, opts.SQLPath, opts.ExtraConfig, opts.Timeout)
	res, errc := client.Lint[client.RunResult](cmd.Context(), c)
	if errc != nil {
		r.Failure(errc)
		return fmt.Errorf("lint failed: %s", errc.Error.Message)
	}

	return r.Table(res.ColumnNames, res.Rows)
}
