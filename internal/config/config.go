// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces all environment variables (SHELLMCP_LOG_LEVEL and
// so on).
const envPrefix = "shellmcp"

// Config holds the full server configuration.
type Config struct {
	LogLevel  string `split_words:"true" default:"info"`
	LogPretty bool   `split_words:"true" default:"false"`

	// PendingFile is the one-time permission store. Defaults to a fixed
	// path under the system temp directory.
	PendingFile string `split_words:"true"`

	// SettingsDir is the per-project directory holding settings.local.json.
	SettingsDir string `split_words:"true" default:".claude"`

	// LogDir receives raw output artifacts for compressed runs. Defaults
	// to a fixed directory under the system temp directory.
	LogDir string `split_words:"true"`

	// MinCompressLines is the combined line count at which verbose
	// command output becomes a compression candidate.
	MinCompressLines int `split_words:"true" default:"30"`

	// Oracle selects the summarization backend: cli, openai or none.
	Oracle        string        `default:"cli"`
	OracleCommand string        `split_words:"true" default:"claude"`
	OracleArgs    []string      `split_words:"true" default:"-p"`
	OracleTimeout time.Duration `split_words:"true" default:"30s"`

	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIBase  string `envconfig:"OPENAI_BASE_URL"`
}

// Load reads configuration from a .env file (if present) and the
// environment, then fills path defaults.
func Load() (*Config, error) {
	// Missing .env is fine; it only exists in development setups.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.PendingFile == "" {
		cfg.PendingFile = filepath.Join(os.TempDir(), "pending_commands.json")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(os.TempDir(), "compressed-shell-logs")
	}

	switch cfg.Oracle {
	case "cli", "openai", "none":
	default:
		return nil, fmt.Errorf("unknown oracle backend %q", cfg.Oracle)
	}

	return &cfg, nil
}
