package config

import (
	"flag"
)

// globalFlags holds the parsed global flags until the lower-priority
// layers have been applied.
type globalFlags struct {
	set map[string]bool

	configFile    string
	dbPath        string
	logLevel      string
	logFormat     string
	logTimestamps bool
	logCaller     bool
}

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"db":             "db_path",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags registers the global flags on fs and parses args.
func parseFlags(fs *flag.FlagSet, args []string) (*globalFlags, error) {
	if fs == nil {
		fs = flag.NewFlagSet("yawmak", flag.ContinueOnError)
	}
	g := &globalFlags{set: make(map[string]bool)}

	fs.StringVar(&g.configFile, "config", "", "Path to a config file")
	fs.StringVar(&g.dbPath, "db", "", "Path to the database file (default "+DefaultDBPath+")")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&g.logFormat, "log-format", "", "Log format (text, json, logfmt)")
	fs.BoolVar(&g.logTimestamps, "log-timestamps", false, "Show timestamps in logs")
	fs.BoolVar(&g.logCaller, "log-caller", false, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		g.set[f.Name] = true
	})
	return g, nil
}

// apply copies explicitly set flags onto cfg.
func (g *globalFlags) apply(cfg *Config, sources map[string]ConfigSource) {
	if g.set["db"] {
		cfg.DBPath = g.dbPath
	}
	if g.set["log-level"] {
		cfg.LogLevel = g.logLevel
	}
	if g.set["log-format"] {
		cfg.LogFormat = g.logFormat
	}
	if g.set["log-timestamps"] {
		cfg.LogTimestamps = g.logTimestamps
	}
	if g.set["log-caller"] {
		cfg.LogCaller = g.logCaller
	}
	if sources == nil {
		return
	}
	for name := range g.set {
		if field, ok := flagToSource[name]; ok {
			sources[field] = SourceFlag
		}
	}
}
