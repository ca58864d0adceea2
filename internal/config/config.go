// internal/config/config.go
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Devices []DeviceConfig `yaml:"devices"`
	Mirror  *MirrorConfig  `yaml:"mirror"`
	Listen  string         `yaml:"listen"`
	Log     LogConfig      `yaml:"log"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Name       string `yaml:"name"`
	Hidraw     string `yaml:"hidraw"`
	IntervalMs int    `yaml:"interval_ms"`
}

// ---- MIRROR (optional, opt-in) ----

type MirrorConfig struct {
	Endpoint    string `yaml:"endpoint"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Load reads and parses a config file. Validation is a separate step.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "config: parse")
	}

	return &cfg, nil
}
