package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder settings.
type Config struct {
	// DatasetPath overrides the embedded dataset.
	DatasetPath string `yaml:"dataset_path" env:"SEEDER_DATASET_PATH"`
	BatchSize   int    `yaml:"batch_size"   env:"SEEDER_BATCH_SIZE"   env-default:"500"`
	DryRun      bool   `yaml:"dry_run"      env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("seeder config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}
	return &cfg, nil
}
