// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.yawmak/config.toml or OS-specific config directory)
// 3. Explicit config file (--config or YAWMAK_CONFIG)
// 4. Environment variables (YAWMAK_*)
// 5. Global CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.yawmak/config.toml (preferred)
// - Windows: %APPDATA%\yawmak\config.toml
// - macOS: ~/Library/Application Support/yawmak/config.toml
// - Linux/BSD: $XDG_CONFIG_HOME/yawmak/config.toml or ~/.config/yawmak/config.toml
package config
