package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the variable holding the YAML config path.
	PathEnv = "CONFIG_PATH"
	// DefaultPath is read when PathEnv is unset and the file exists.
	DefaultPath = "./config.yaml"
)

// Load resolves the config file from CONFIG_PATH, falling back to
// ./config.yaml, and delegates to LoadFile. A missing default file is not an
// error; an explicit CONFIG_PATH that does not exist is.
func Load() (*Config, error) {
	if path := os.Getenv(PathEnv); path != "" {
		return LoadFile(path)
	}
	if _, err := os.Stat(DefaultPath); errors.Is(err, fs.ErrNotExist) {
		return LoadFile("")
	}
	return LoadFile(DefaultPath)
}

// LoadFile reads path (when non-empty) and the environment, then validates.
// Environment values override the file; env-default tags fill the rest.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
