package studio

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls where the studio keeps its data and how wide the
// markdown preview renders.
type Config struct {
	DBPath   string `yaml:"db_path"`
	WordWrap int    `yaml:"word_wrap"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		DBPath:   "studio.db",
		WordWrap: 80,
	}
}

// LoadConfig reads the YAML config at path. A missing file is not an
// error; defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "reading studio config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing studio config")
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultConfig().DBPath
	}
	if cfg.WordWrap <= 0 {
		cfg.WordWrap = DefaultConfig().WordWrap
	}
	return cfg, nil
}
