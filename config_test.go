package pawcore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Debug {
		t.Error("Debug must default to off")
	}
	if !cfg.StrictCounts {
		t.Error("StrictCounts must default to on")
	}
	if cfg.DrainLimit <= 0 {
		t.Error("DrainLimit must default to a positive guard")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pawcore.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
debug = true
debug_categories = ["memory", "capsule"]
strict_counts = false
drain_limit = 500
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("Expected debug on")
	}
	if len(cfg.DebugCategories) != 2 || cfg.DebugCategories[0] != "memory" {
		t.Errorf("Unexpected categories %v", cfg.DebugCategories)
	}
	if cfg.StrictCounts {
		t.Error("Expected strict counts off")
	}
	if cfg.DrainLimit != 500 {
		t.Errorf("Expected drain limit 500, got %d", cfg.DrainLimit)
	}
}

func TestLoadConfigUnsetFieldsKeepDefaults(t *testing.T) {
	path := writeConfigFile(t, `debug = true`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.StrictCounts {
		t.Error("Unset strict_counts must keep the default")
	}
	if cfg.DrainLimit != DefaultConfig().DrainLimit {
		t.Errorf("Unset drain_limit must keep the default, got %d", cfg.DrainLimit)
	}
}

func TestLoadConfigRejectsUnknownCategory(t *testing.T) {
	path := writeConfigFile(t, `debug_categories = ["memory", "telepathy"]`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected an unknown category to be rejected")
	}
}

func TestLoadConfigRejectsNegativeDrainLimit(t *testing.T) {
	path := writeConfigFile(t, `drain_limit = -1`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected a negative drain limit to be rejected")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Expected a missing file to fail")
	}
}

func TestConfigCategoriesNarrowLogger(t *testing.T) {
	rt := New(&Config{Debug: true, DebugCategories: []string{"memory"}, StrictCounts: true})

	logger := rt.Logger()
	if !logger.IsCategoryEnabled(CatMemory) {
		t.Error("Named category must be enabled")
	}
	if logger.IsCategoryEnabled(CatIter) {
		t.Error("Unnamed categories must be disabled")
	}
}
