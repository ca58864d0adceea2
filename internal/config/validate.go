// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/aquamon/internal/mirror"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if len(cfg.Devices) == 0 {
		return fmt.Errorf("at least one device is required")
	}

	seen := make(map[string]struct{}, len(cfg.Devices))

	for _, d := range cfg.Devices {
		if d.Name == "" {
			return fmt.Errorf("device name required")
		}

		// Names travel into the mirror name block: ASCII only.
		for i := 0; i < len(d.Name); i++ {
			if d.Name[i] > 0x7F {
				return fmt.Errorf(
					"device %q: name must contain ASCII characters only",
					d.Name,
				)
			}
		}
		if len(d.Name) > mirror.NameMaxChars {
			return fmt.Errorf(
				"device %q: name exceeds %d characters",
				d.Name, mirror.NameMaxChars,
			)
		}

		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("duplicate device name %q", d.Name)
		}
		seen[d.Name] = struct{}{}

		if d.Hidraw == "" {
			return fmt.Errorf("device %q: hidraw path required", d.Name)
		}
		if d.IntervalMs < 0 {
			return fmt.Errorf("device %q: interval_ms must be >= 0", d.Name)
		}
	}

	// ------------------------------------------------------------
	// MIRROR GEOMETRY VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Mirror != nil {
		if cfg.Mirror.Endpoint == "" {
			return fmt.Errorf("mirror: endpoint required")
		}

		// Device blocks are assigned sequentially from base_address;
		// the last block must still fit the 16-bit address space.
		span := len(cfg.Devices) * mirror.SlotsPerDevice
		if int(cfg.Mirror.BaseAddress)+span > 0x10000 {
			return fmt.Errorf(
				"mirror: base_address %d with %d devices exceeds the register address space",
				cfg.Mirror.BaseAddress, len(cfg.Devices),
			)
		}
	}

	return nil
}
