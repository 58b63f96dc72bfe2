// internal/config/config.go
//
// This package handles configuration and the on-disk layout used by the
// SAFRA terminal client. Everything the client persists between runs lives
// under a single data directory:
//
// <data>/
// ├── session/   <- bearer token + normalized user (the durable session)
// ├── state/     <- wizard draft autosave (rascunho.yaml)
// └── logs/      <- activity logbook and diagnostics log

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultAPIBaseURL points at a locally running SAFRA backend.
	DefaultAPIBaseURL = "http://localhost:8080/api"

	defaultRequestTimeout = 15 * time.Second

	sessionDirName = "session"
	stateDirName   = "state"
	logsDirName    = "logs"
)

// Config holds the runtime configuration for the client.
type Config struct {
	// APIBaseURL is the root of the SAFRA REST backend, including /api.
	APIBaseURL string `mapstructure:"SAFRA_API_URL"`

	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `mapstructure:"SAFRA_REQUEST_TIMEOUT"`

	// DataDir is where session, draft and log files live.
	DataDir string `mapstructure:"SAFRA_DATA_DIR"`
}

// Load reads configuration from safra.yaml (current directory) and the
// environment. A missing file is fine; defaults cover everything.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("safra")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("SAFRA_API_URL", DefaultAPIBaseURL)
	v.SetDefault("SAFRA_REQUEST_TIMEOUT", defaultRequestTimeout)
	v.SetDefault("SAFRA_DATA_DIR", defaultDataDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read safra.yaml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	return cfg, nil
}

// defaultDataDir resolves to ~/.config/safra (or the platform equivalent),
// falling back to .safra in the working directory when the user config dir
// cannot be determined.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".safra"
	}
	return filepath.Join(base, "safra")
}

// InitDataDir creates the data directory structure. Called once on startup.
func (c *Config) InitDataDir() error {
	dirs := []string{
		c.SessionDir(),
		c.StateDir(),
		c.LogsDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	return nil
}

// SessionDir returns the directory holding the persisted session.
func (c *Config) SessionDir() string {
	return filepath.Join(c.DataDir, sessionDirName)
}

// StateDir returns the directory holding the wizard draft.
func (c *Config) StateDir() string {
	return filepath.Join(c.DataDir, stateDirName)
}

// LogsDir returns the directory holding log files.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, logsDirName)
}

// TokenPath is the file holding the raw bearer token.
func (c *Config) TokenPath() string {
	return filepath.Join(c.SessionDir(), "safra_token")
}

// UserPath is the file holding the serialized normalized user.
func (c *Config) UserPath() string {
	return filepath.Join(c.SessionDir(), "safra_user.json")
}

// DraftPath is the wizard draft autosave file.
func (c *Config) DraftPath() string {
	return filepath.Join(c.StateDir(), "rascunho.yaml")
}

// LogbookPath is the activity log shown inside the TUI.
func (c *Config) LogbookPath() string {
	return filepath.Join(c.LogsDir(), "atividade.log")
}

// DiagnosticsPath is the structured diagnostics log.
func (c *Config) DiagnosticsPath() string {
	return filepath.Join(c.LogsDir(), "safra.log")
}
