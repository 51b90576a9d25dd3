package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/yawmak/internal/logging"
)

// ErrUnknownKey is returned when a config file holds keys yawmak does not know.
var ErrUnknownKey = errors.New("unknown config key")

// ErrInvalidValue is returned when a setting holds a value yawmak cannot use.
var ErrInvalidValue = errors.New("invalid config value")

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Explicit config file (--config or YAWMAK_CONFIG)
// 4. Environment variables
// 5. CLI flags
//
// Global flags are registered on fs and parsed from args; the caller reads
// the remaining arguments from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// Flags are parsed first so that --config is known before files load;
	// their values are applied last.
	flags, err := parseFlags(fs, args)
	if err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Explicit config file
	explicit := os.Getenv(envConfig)
	if flags.set["config"] {
		explicit = flags.configFile
	}
	if explicit != "" {
		explicit = ExpandPath(explicit)
		cfg.ConfigFile = explicit
		if err := loadConfigFile(cws, explicit, SourceFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg, cws.Sources)

	// 5. Apply CLI flags (they override everything)
	flags.apply(cfg, cws.Sources)

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cws, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"db_path",
		"default_category",
		"default_priority",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the
// file change values and sources.
func loadConfigFile(cws *ConfigWithSources, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			cws.Sources[field] = source
		}
	}
	cws.Files = append(cws.Files, path)
	return nil
}

// finalizeConfig checks the logging settings and computes derived values.
func finalizeConfig(cfg *Config) error {
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("%w: log_level %q (want debug, info, warn, error or fatal)", ErrInvalidValue, cfg.LogLevel)
	}
	if !logging.ValidFormat(cfg.LogFormat) {
		return fmt.Errorf("%w: log_format %q (want text, json or logfmt)", ErrInvalidValue, cfg.LogFormat)
	}
	if cfg.DBPath != ":memory:" {
		cfg.DBPath = ExpandPath(cfg.DBPath)
	}
	cfg.DefaultCategory = strings.TrimSpace(cfg.DefaultCategory)
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = DefaultCategory
	}
	return nil
}
