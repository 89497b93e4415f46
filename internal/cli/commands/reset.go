package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command.
func NewResetCommand() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Ask the dbt sync server to re-parse the project",
		Long: `Tell the dbt sync server to drop its parsed project state and re-read
the dbt project from disk. Useful after editing dbt_project.yml or adding
models outside the editor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd)
			r := RendererFrom(cmd)

			c := newSyncClient(cmd, cfg, nil, "", "", timeout)
			res, errc := c.Reset(cmd.Context())
			if errc != nil {
				r.Failure(errc)
				return fmt.Errorf("reset failed: %s", errc.Error.Message)
			}

			r.Line("%s", res.Result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (default from config)")

	return cmd
}
