// Package config loads server configuration from a TOML file with
// environment-variable overrides. Precedence: env > file > default.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ListenAddr       string
	LogLevel         string
	DataDir          string
	CatalogPath      string
	SnapshotSchedule string
}

const (
	defaultListenAddr       = "127.0.0.1:4140"
	defaultLogLevel         = "info"
	defaultSnapshotSchedule = "@hourly"
)

const defaultConfigContent = `# Rollcall configuration
# All values shown are defaults. Uncomment and edit to customize.

# Address and port the server listens on.
# Environment variable: ROLLCALL_LISTEN
# listen = "127.0.0.1:4140"

# Log level: debug, info, warn, error.
# Environment variable: ROLLCALL_LOG_LEVEL
# log_level = "info"

# Path to a TOML activity catalog that replaces the builtin seed.
# Environment variable: ROLLCALL_CATALOG
# catalog = ""

# Cron expression for periodic roster snapshots. Empty disables them.
# Environment variable: ROLLCALL_SNAPSHOT_SCHEDULE
# snapshot_schedule = "@hourly"
`

type fileConfig struct {
	Listen           string `toml:"listen"`
	LogLevel         string `toml:"log_level"`
	Catalog          string `toml:"catalog"`
	SnapshotSchedule string `toml:"snapshot_schedule"`
}

func Load() Config {
	cfg := Config{
		ListenAddr:       defaultListenAddr,
		LogLevel:         defaultLogLevel,
		SnapshotSchedule: defaultSnapshotSchedule,
	}

	// Resolve DataDir first (needed for the config file path).
	if v := strings.TrimSpace(os.Getenv("ROLLCALL_DATA_DIR")); v != "" {
		cfg.DataDir = v
	} else if home, err := os.UserHomeDir(); err == nil {
		cfg.DataDir = filepath.Join(home, ".rollcall")
	}

	// Create a commented default config file if it does not exist.
	configPath := filepath.Join(cfg.DataDir, "config.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		writeDefaultConfig(configPath)
	}

	var file fileConfig
	meta, err := toml.DecodeFile(configPath, &file)
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("config file ignored", "path", configPath, "err", err)
	}

	// Listen: env > file > default
	if v := strings.TrimSpace(os.Getenv("ROLLCALL_LISTEN")); v != "" {
		cfg.ListenAddr = v
	} else if file.Listen != "" {
		cfg.ListenAddr = file.Listen
	}

	// Log level: env > file > default
	if v := strings.TrimSpace(os.Getenv("ROLLCALL_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	} else if file.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(file.LogLevel)
	}

	// Catalog path: env > file
	if v := strings.TrimSpace(os.Getenv("ROLLCALL_CATALOG")); v != "" {
		cfg.CatalogPath = v
	} else if file.Catalog != "" {
		cfg.CatalogPath = file.Catalog
	}

	// Snapshot schedule: env > file > default. An explicitly empty value
	// disables snapshots, so file presence matters, not just non-emptiness.
	if v, ok := os.LookupEnv("ROLLCALL_SNAPSHOT_SCHEDULE"); ok {
		cfg.SnapshotSchedule = strings.TrimSpace(v)
	} else if meta.IsDefined("snapshot_schedule") {
		cfg.SnapshotSchedule = strings.TrimSpace(file.SnapshotSchedule)
	}

	return cfg
}

// writeDefaultConfig creates the config file with commented-out defaults.
// Best-effort: errors are silently ignored.
func writeDefaultConfig(path string) {
	_ = os.MkdirAll(filepath.Dir(path), 0o700)
	_ = os.WriteFile(path, []byte(defaultConfigContent), 0o600)
}
