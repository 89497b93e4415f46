package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbtsync/internal/cli/output"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	SQLPath     string
	ExtraConfig string
	Format      string
	Timeout     time.Duration
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}
	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a SQL template via the dbt sync server",
		Long: `Send a SQL/dbt template to the dbt sync server and print the compiled
SQL with refs, sources, and macros resolved against the registered project.`,
		Example: `  # Compile a file
  dbtsync compile models/staging/stg_orders.sql

  # Compile from stdin
  echo "select * from {{ ref('stg_orders') }}" | dbtsync compile`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.SQLPath, "sql-path", "", "Send a server-known file path instead of SQL text")
	cmd.Flags().StringVar(&opts.ExtraConfig, "extra-config", "", "Extra config path appended to the request")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Request timeout (default from config)")

	return cmd
}

func runCompile(cmd *cobra.Command, opts *CompileOptions, args []string) error {
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
	res, errc := c.Compile(cmd.Context())
	if errc != nil {
		r.Failure(errc)
		return fmt.Errorf("compile failed: %s", errc.Error.Message)
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(res)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Result)
	return nil
}
