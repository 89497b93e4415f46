package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbtsync/internal/cli/output"
	"github.com/leapstack-labs/dbtsync/pkg/client"
)

// FormatOptions holds options for the format command.
type FormatOptions struct {
	SQLPath     string
	ExtraConfig string
	Format      string
	Timeout     time.Duration
	Write       bool // Rewrite the input file in place
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Format a SQL model via the dbt sync server",
		Long: `Send a SQL/dbt template to the dbt sync server for formatting and
print the rewritten SQL. Formatting rules run server-side.`,
		Example: `  # Format a file to stdout
  dbtsync format models/staging/stg_orders.sql

  # Format in place
  dbtsync format -w models/staging/stg_orders.sql

  # Format from stdin
  cat model.sql | dbtsync format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.SQLPath, "sql-path", "", "Send a server-known file path instead of SQL text")
	cmd.Flags().StringVar(&opts.ExtraConfig, "extra-config", "", "Extra formatter config path appended to the request")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Request timeout (default from config)")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Rewrite the input file instead of printing")

	return cmd
}

func runFormat(cmd *cobra.Command, opts *FormatOptions, args []string) error {
	cfg := ConfigFrom(cmd)
	r := RendererFrom(cmd)
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if opts.Write && (len(args) == 0 || args[0] == "-") {
		return fmt.Errorf("-w requires a file argument")
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
	res, errc := client.Format[client.CompileResult](cmd.Context(), c)
	if errc != nil {
		r.Failure(errc)
		return fmt.Errorf("format failed: %s", errc.Error.Message)
	}

	if opts.Write {
		return os.WriteFile(args[0], []byte(res.Result), 0o644)
	}
	if r.Mode() == output.ModeJSON {
		return r.JSON(res)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), res.Result)
	return nil
}
