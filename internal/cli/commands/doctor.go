package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbtsync/internal/cli/output"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the dbt sync server is reachable",
		Long: `Probe the dbt sync server's health endpoint and report whether the
configured host and port answer. Exits non-zero when the server is down.`,
		Example: `  # Check the configured server
  dbtsync doctor

  # Check a specific server
  dbtsync doctor --host localhost --port 9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Healthy bool   `json:"healthy"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cfg := ConfigFrom(cmd)
	r := RendererFrom(cmd)
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	c := newSyncClient(cmd, cfg, nil, "", "", 0)
	healthy := c.HealthCheck(cmd.Context())

	if r.Mode() == output.ModeJSON {
		if err := r.JSON(DoctorOutput{Host: cfg.Host, Port: cfg.Port, Healthy: healthy}); err != nil {
			return err
		}
	} else if healthy {
		r.Line("dbt sync server at http://%s:%d is healthy", cfg.Host, cfg.Port)
	} else {
		r.Line("dbt sync server at http://%s:%d is not responding", cfg.Host, cfg.Port)
	}

	if !healthy {
		return fmt.Errorf("dbt sync server at %s:%d is unreachable", cfg.Host, cfg.Port)
	}
	return nil
}
