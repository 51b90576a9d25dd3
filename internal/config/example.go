package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# yawmak configuration file
# Values can be overridden by YAWMAK_* environment variables or global flags.

# Database file (supports ~ and $VAR expansion; ":memory:" for a throwaway store)
db_path = "~/.yawmak/db"

# Category attached by "add" when --category is not given
default_category = "General"

# Priority used by "add" when --priority is not given
default_priority = 0

# Diagnostics on stderr
log_level = "warn"        # debug, info, warn, error
log_format = "text"       # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
