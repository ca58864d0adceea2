// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultListen     = ":9120"
	DefaultIntervalMs = 1000
	DefaultTimeoutMs  = 2000
	DefaultLogLevel   = "info"
	DefaultLogMaxSize = 50
	DefaultLogBackups = 3
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	for i := range cfg.Devices {
		if cfg.Devices[i].IntervalMs == 0 {
			cfg.Devices[i].IntervalMs = DefaultIntervalMs
		}
	}

	if cfg.Mirror != nil && cfg.Mirror.TimeoutMs == 0 {
		cfg.Mirror.TimeoutMs = DefaultTimeoutMs
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.File != "" {
		if cfg.Log.MaxSizeMB == 0 {
			cfg.Log.MaxSizeMB = DefaultLogMaxSize
		}
		if cfg.Log.MaxBackups == 0 {
			cfg.Log.MaxBackups = DefaultLogBackups
		}
	}
}
