package pawcore

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds configuration for a Runtime
type Config struct {
	// Debug enables debug logging.
	Debug bool
	// DebugCategories narrows debug output to the named categories. Empty
	// means all categories.
	DebugCategories []string
	// StrictCounts makes refcount contract violations (double release, use
	// after destruction) panic instead of being logged and ignored.
	StrictCounts bool
	// DrainLimit bounds how many items a single drain may collect. Zero
	// disables the guard.
	DrainLimit int
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:        false,
		StrictCounts: true,
		DrainLimit:   1000000,
	}
}

type fileConfig struct {
	Debug           bool     `toml:"debug"`
	DebugCategories []string `toml:"debug_categories"`
	StrictCounts    *bool    `toml:"strict_counts"`
	DrainLimit      *int     `toml:"drain_limit"`
}

// LoadConfig reads a TOML configuration file, filling unset fields from
// DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	cfg := DefaultConfig()
	cfg.Debug = fc.Debug
	cfg.DebugCategories = fc.DebugCategories
	if fc.StrictCounts != nil {
		cfg.StrictCounts = *fc.StrictCounts
	}
	if fc.DrainLimit != nil {
		if *fc.DrainLimit < 0 {
			return nil, fmt.Errorf("config invalid (%s): drain_limit must not be negative", path)
		}
		cfg.DrainLimit = *fc.DrainLimit
	}

	for _, name := range cfg.DebugCategories {
		if !knownCategory(LogCategory(name)) {
			return nil, fmt.Errorf("config invalid (%s): unknown debug category %q", path, name)
		}
	}

	return cfg, nil
}

func knownCategory(cat LogCategory) bool {
	for _, known := range allCategories {
		if cat == known {
			return true
		}
	}
	return false
}
