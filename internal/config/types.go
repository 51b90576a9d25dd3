package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceFile     ConfigSource = "config file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultDBPath          = "~/.yawmak/db"
	DefaultCategory        = "General"
	DefaultPriority        = 0
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
	DefaultConfigDirName   = ".yawmak"
	DefaultConfigFileName  = "config.toml"
	DefaultOSConfigDirName = "yawmak"
)

// Config holds the full configuration for yawmak.
type Config struct {
	// Database file; ":memory:" opens a throwaway store.
	DBPath string `toml:"db_path"`

	// Defaults applied by `add`.
	DefaultCategory string `toml:"default_category"`
	DefaultPriority int    `toml:"default_priority"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Explicit config file, from --config or YAWMAK_CONFIG (not persisted).
	ConfigFile string `toml:"-"`
}
