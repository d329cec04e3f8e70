// Package config loads the command line tool's YAML configuration.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	TranslatorIdentity = "identity"
	TranslatorNone     = "none"
)

type Config struct {
	LogLevel string `yaml:"log_level"`
	// Workers decoding and encoding chunks concurrently.
	Workers int `yaml:"workers"`
	// TranslationTables is a YAML translation table document; empty uses
	// DefaultTranslator for every version.
	TranslationTables string `yaml:"translation_tables"`
	// DefaultTranslator serves versions no table covers: identity or none.
	DefaultTranslator string        `yaml:"default_translator"`
	Metrics           MetricsConfig `yaml:"metrics"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Address the /metrics endpoint listens on.
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		LogLevel:          "info",
		Workers:           runtime.NumCPU(),
		DefaultTranslator: TranslatorIdentity,
		Metrics: MetricsConfig{
			Addr: ":2112",
		},
	}
}

// Load reads a config file, expanding environment variables first. Fields
// missing from the file keep their defaults.
func Load(filename string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	str := os.ExpandEnv(string(b))
	if err := yaml.Unmarshal([]byte(str), &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.DefaultTranslator {
	case TranslatorIdentity, TranslatorNone:
	default:
		return fmt.Errorf("unknown default translator %q", c.DefaultTranslator)
	}
	return nil
}
