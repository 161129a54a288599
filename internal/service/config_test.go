package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/datepick/internal/config"
)

func TestConfigService_Get(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := NewConfigService("/tmp/config.toml", cfg)

	result := svc.Get()
	if result.WeekStartDay != cfg.WeekStartDay {
		t.Errorf("expected WeekStartDay %q, got %q", cfg.WeekStartDay, result.WeekStartDay)
	}
	if result.Locale != cfg.Locale {
		t.Errorf("expected Locale %q, got %q", cfg.Locale, result.Locale)
	}
	if svc.GetPath() != "/tmp/config.toml" {
		t.Errorf("expected path '/tmp/config.toml', got %q", svc.GetPath())
	}
}

func TestConfigService_Exists(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if svc.Exists() {
		t.Error("expected Exists() to return false")
	}
	if err := os.WriteFile(configPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if !svc.Exists() {
		t.Error("expected Exists() to return true")
	}
}

func TestConfigService_Update(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	newCfg := config.DefaultConfig()
	newCfg.WeekStartDay = "Sunday"
	newCfg.Timezone = "America/New_York"
	newCfg.Constraints.Disabled = []string{"2026-12-25"}

	if err := svc.Update(newCfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := svc.Get()
	if result.WeekStartDay != "sunday" {
		t.Errorf("expected normalized WeekStartDay 'sunday', got %q", result.WeekStartDay)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "# datepick configuration file") {
		t.Errorf("expected header comment, got:\n%s", content)
	}

	// The written file must load back to the same values.
	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.Timezone != "America/New_York" || loaded.WeekStartDay != "sunday" || len(loaded.Constraints.Disabled) != 1 {
		t.Errorf("loaded config = %+v", loaded)
	}
}

func TestConfigService_Update_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	invalidCfg := config.DefaultConfig()
	invalidCfg.WeekStartDay = "invalid"

	err := svc.Update(invalidCfg)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("unexpected error: %v", err)
	}
	if svc.Exists() {
		t.Error("invalid config must not be written")
	}
}

func TestConfigService_Init(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if err := svc.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != config.GenerateSampleConfig() {
		t.Error("expected the sample config after Init")
	}

	if err := svc.Init(); err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestConfigService_Reload(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("week_start_day = \"sunday\"\nlocale = \"de-DE\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := svc.Get()
	if result.WeekStartDay != "sunday" || result.Locale != "de-DE" {
		t.Errorf("Reload() = %+v", result)
	}
}

func TestConfigService_Reload_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("invalid toml {{{"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Reload(); err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestConfigService_WriteErrors(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "nonexistent", "config.toml"), config.DefaultConfig())

	if err := svc.Update(config.DefaultConfig()); err == nil {
		t.Error("expected Update error for invalid path")
	}
	if err := svc.Init(); err == nil {
		t.Error("expected Init error for invalid path")
	}
}
