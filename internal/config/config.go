// Package config loads the service configuration from a YAML file and
// environment variables. Priority: ENV > YAML > defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

// SourcesConfig points at the external collaborators the aggregator reads
// from. The bearer token comes from the session context of the deployment;
// this service attaches it to every read but does not manage its lifecycle.
type SourcesConfig struct {
	ActivityBaseURL string        `yaml:"activity_base_url" env:"ACTIVITY_BASE_URL" env-required:"true"`
	ProfileBaseURL  string        `yaml:"profile_base_url"  env:"PROFILE_BASE_URL"  env-required:"true"`
	BearerToken     string        `yaml:"bearer_token"      env:"SOURCE_BEARER_TOKEN"`
	Timeout         time.Duration `yaml:"timeout"           env:"SOURCE_TIMEOUT"    env-default:"10s"`
}

// OutputConfig controls where artifacts land and how printing is invoked.
type OutputConfig struct {
	Dir           string `yaml:"dir"            env:"OUTPUT_DIR"     env-default:"./out"`
	PrintCommand  string `yaml:"print_command"  env:"PRINT_COMMAND"` // e.g. "xdg-open"; space-separated args
	DefaultLocale string `yaml:"default_locale" env:"DEFAULT_LOCALE" env-default:"en-US"`
}

// PrintCommandArgs splits the configured print command into argv form.
func (o OutputConfig) PrintCommandArgs() []string {
	return strings.Fields(o.PrintCommand)
}

// Load reads configuration from CONFIG_PATH (fallback "./config.yaml") and
// the environment. A missing file is fine unless CONFIG_PATH was set
// explicitly; then it is an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the invariants cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Sources.Timeout <= 0 {
		return fmt.Errorf("sources.timeout must be positive, got %s", c.Sources.Timeout)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	return nil
}
