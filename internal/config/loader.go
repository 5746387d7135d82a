package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment knobs for the loader itself.
const (
	EnvConfigFile = "BABYPOOL_CONFIG"
	EnvDotenvFile = "BABYPOOL_DOTENV"

	envPrefix       = "BABYPOOL_"
	actualEnvPrefix = "ACTUAL_"
	defaultDotenv   = ".env"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New())
//  2. YAML file if BABYPOOL_CONFIG is set
//  3. .env file (BABYPOOL_DOTENV, default ".env"); never overrides the process env
//  4. env: BABYPOOL_* for settings, ACTUAL_* for the outcome
//
// Every actual outcome key must be present and the birthday must parse.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	if err := loadDotenv(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// BABYPOOL_LOG_LEVEL -> log_level (flat keys, underscores preserved).
	settings := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(settings, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// ACTUAL_FIRST_NAME -> actual.first_name
	actual := env.Provider(actualEnvPrefix, ".", func(s string) string {
		return "actual." + strings.TrimPrefix(strings.ToLower(s), strings.ToLower(actualEnvPrefix))
	})
	if err := k.Load(actual, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(k, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotenv() error {
	path := os.Getenv(EnvDotenvFile)
	explicit := path != ""
	if !explicit {
		path = defaultDotenv
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func validate(k *koanf.Koanf, cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}

	var missing []string
	for _, key := range actualKeys {
		path := "actual." + key
		if !k.Exists(path) || strings.TrimSpace(k.String(path)) == "" {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if _, err := cfg.Actual.Outcome(); err != nil {
		return err
	}
	return nil
}
