package config

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/nibzard/yawmak/internal/logging"
)

// Entry is one resolved configuration value.
type Entry struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Entries returns every configurable field with its effective value and
// source, in a stable order.
func (cws *ConfigWithSources) Entries() []Entry {
	c := cws.Config
	values := map[string]string{
		"db_path":          c.DBPath,
		"default_category": c.DefaultCategory,
		"default_priority": strconv.Itoa(c.DefaultPriority),
		"log_level":        c.LogLevel,
		"log_format":       c.LogFormat,
		"log_timestamps":   strconv.FormatBool(c.LogTimestamps),
		"log_caller":       strconv.FormatBool(c.LogCaller),
	}
	entries := make([]Entry, 0, len(values))
	for _, field := range configFields() {
		src := cws.Sources[field]
		if src == "" {
			src = SourceDefault
		}
		entries = append(entries, Entry{Key: field, Value: values[field], Source: src})
	}
	return entries
}

// Logger builds the diagnostics logger described by the logging fields.
func (c *Config) Logger(w io.Writer) *log.Logger {
	return logging.NewFromConfig(w, c.LogLevel, c.LogFormat, c.LogTimestamps, c.LogCaller)
}
