package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbtsync/internal/cli/config"
	"github.com/leapstack-labs/dbtsync/internal/cli/output"
	"github.com/leapstack-labs/dbtsync/pkg/client"
)

// ctxKey keys the values the root command seeds into the command context.
type ctxKey int

const (
	configKey ctxKey = iota
	loggerKey
	rendererKey
)

// WithConfig stores the loaded config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithRenderer stores the renderer in the context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey, r)
}

// ConfigFrom returns the config seeded by the root command, or defaults
// when a command runs outside the root (unit tests).
func ConfigFrom(cmd *cobra.Command) *config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
			return cfg
		}
	}
	return &config.Config{
		Host:         config.DefaultHost,
		Port:         config.DefaultPort,
		TimeoutMS:    config.DefaultTimeoutMS,
		OutputFormat: config.DefaultOutput,
	}
}

// LoggerFrom returns the logger seeded by the root command, or a stderr
// logger as fallback.
func LoggerFrom(cmd *cobra.Command) *slog.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
}

// RendererFrom returns the renderer seeded by the root command, or builds
// one from the command's streams.
func RendererFrom(cmd *cobra.Command) *output.Renderer {
	if ctx := cmd.Context(); ctx != nil {
		if r, ok := ctx.Value(rendererKey).(*output.Renderer); ok {
			return r
		}
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(ConfigFrom(cmd).OutputFormat))
}

// newSyncClient builds the sync server client for one command invocation.
// Per-command flags override the loaded config; the endpoint lookup reads
// the config on every call.
func newSyncClient(cmd *cobra.Command, cfg *config.Config, sql *string, sqlPath, extraConfig string, timeout time.Duration) *client.Client {
	if extraConfig == "" {
		extraConfig = cfg.ExtraConfigPath
	}
	if timeout <= 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return client.New(client.Options{
		SQL:             sql,
		SQLPath:         sqlPath,
		ExtraConfigPath: extraConfig,
		Endpoint:        func() (string, int) { return cfg.Host, cfg.Port },
		Output:          cmd.ErrOrStderr(),
		Timeout:         timeout,
	})
}

// readSQL resolves the SQL text for a command: the file argument, or stdin
// when the argument is missing or "-".
func readSQL(cmd *cobra.Command, args []string) (*string, error) {
	var data []byte
	var err error
	if len(args) > 0 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	s := string(data)
	return &s, nil
}
