package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbtsync/internal/stub"
)

// NewStubCommand creates the stub command.
func NewStubCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local stub sync server",
		Long: `Serve a stand-in for the dbt sync server that answers every endpoint
with canned responses. Useful for trying the CLI without a dbt project or
for integration tests against a fixed server.`,
		Example: `  # Serve on the configured port
  dbtsync stub

  # Serve on a specific port
  dbtsync stub --port 9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd)
			if port == 0 {
				port = cfg.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := stub.NewServer(stub.Config{Port: port, Logger: LoggerFrom(cmd)})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config)")

	return cmd
}
