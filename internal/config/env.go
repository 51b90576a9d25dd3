package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by loadFromEnv.
const (
	envConfig          = "YAWMAK_CONFIG"
	envDB              = "YAWMAK_DB"
	envDefaultCategory = "YAWMAK_DEFAULT_CATEGORY"
	envDefaultPriority = "YAWMAK_DEFAULT_PRIORITY"
	envLogLevel        = "YAWMAK_LOG_LEVEL"
	envLogFormat       = "YAWMAK_LOG_FORMAT"
	envLogTimestamps   = "YAWMAK_LOG_TIMESTAMPS"
	envLogCaller       = "YAWMAK_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables and records the
// source of every value it sets.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(envDB); v != "" {
		cfg.DBPath = v
		set("db_path")
	}
	if v := os.Getenv(envDefaultCategory); v != "" {
		cfg.DefaultCategory = v
		set("default_category")
	}
	if v := os.Getenv(envDefaultPriority); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.DefaultPriority = i
			set("default_priority")
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(envLogFormat); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(envLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(envLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
