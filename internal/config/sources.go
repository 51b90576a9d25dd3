package config

import (
	"os"
	"path/filepath"
)

// userConfigCandidates lists where a user-level config file may live, in
// lookup order: ~/.yawmak/config.toml, then the platform config directory
// (os.UserConfigDir, which honours XDG_CONFIG_HOME and APPDATA).
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigDirName, DefaultConfigFileName))
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, DefaultOSConfigDirName, DefaultConfigFileName))
	}
	return paths
}

// findUserConfigFile returns the first existing user-level config file, or
// "" when there is none.
func findUserConfigFile() string {
	for _, p := range userConfigCandidates() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func setDefaults(cfg *Config) {
	*cfg = Config{
		DBPath:          DefaultDBPath,
		DefaultCategory: DefaultCategory,
		DefaultPriority: DefaultPriority,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}
}

// GetConfigFile returns the config file that was applied last, or "" when
// none was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
