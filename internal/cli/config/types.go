package config

// Config holds all CLI configuration options for talking to the dbt sync
// server.
type Config struct {
	// Host and Port locate the sync server. They are read fresh from the
	// loaded config on every request URL build.
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// TimeoutMS guards each lint/format/compile/reset request.
	TimeoutMS int `koanf:"timeout_ms"`

	// ExtraConfigPath is an optional sqlfluff-style config appended to
	// every request URL when non-empty.
	ExtraConfigPath string `koanf:"extra_config_path"`

	// OutputFormat selects the renderer mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`

	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultHost      = "localhost"
	DefaultPort      = 8581
	DefaultTimeoutMS = 25000
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
