package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/journal"
	"github.com/xolan/datepick/internal/logging"
	"github.com/xolan/datepick/internal/osutil"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/scenario"
	"github.com/xolan/datepick/internal/selection"
)

func TestNewServicesWithPaths(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")

	services, err := NewServicesWithPaths(configPath, journalPath, testConfig(nil), WithClock(preset.ClockAt(testToday)))
	require.NoError(t, err)
	defer func() { _ = services.Close() }()

	require.NotNil(t, services.Dates)
	require.NotNil(t, services.Journal)
	require.NotNil(t, services.Config)
	require.NotNil(t, services.Log)
	assert.Equal(t, configPath, services.Config.GetPath())
	assert.Equal(t, journalPath, services.Journal.GetPath())
	assert.Equal(t, testToday, services.Dates.Today())
}

func TestNewServicesWithPaths_InvalidConfig(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.Locale = "xx" })
	_, err := NewServicesWithPaths("config.toml", "journal.jsonl", cfg)
	assert.Error(t, err)
}

func TestNewServicesWithPaths_Logging(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "datepick.log")
	cfg := testConfig(func(c *config.Config) {
		c.Logging = config.LoggingConfig{Level: logging.LevelDebug, Destination: logPath, Mode: logging.ModeOverwrite}
	})

	var stdout, stderr bytes.Buffer
	services, err := NewServicesWithPaths(
		filepath.Join(tmpDir, "config.toml"),
		filepath.Join(tmpDir, "journal.jsonl"),
		cfg,
		WithClock(preset.ClockAt(testToday)),
		WithLogOutput(&stdout, &stderr),
	)
	require.NoError(t, err)

	_, err = services.Dates.Resolve("tomorrow")
	require.NoError(t, err)
	require.NoError(t, services.Close())

	assert.Contains(t, stdout.String(), "Resolved input")
	assert.Empty(t, stderr.String())
	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2026-02-11")
}

func TestNewServicesWithPaths_WithLogger(t *testing.T) {
	tmpDir := t.TempDir()
	log := zap.NewNop()
	services, err := NewServicesWithPaths(filepath.Join(tmpDir, "c.toml"), filepath.Join(tmpDir, "j.jsonl"), testConfig(nil), WithLogger(log))
	require.NoError(t, err)
	assert.Same(t, log, services.Log)
	assert.NoError(t, services.Close())
}

type mockPathProvider struct{ dir string }

func (m mockPathProvider) UserConfigDir() (string, error) { return m.dir, nil }

func (m mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func TestNewServices_DefaultPaths(t *testing.T) {
	defer osutil.ResetProvider()
	dir := t.TempDir()
	osutil.SetProvider(mockPathProvider{dir: dir})

	services, err := NewServices(WithClock(preset.ClockAt(testToday)))
	require.NoError(t, err)
	defer func() { _ = services.Close() }()

	appDir := filepath.Join(dir, osutil.AppName)
	assert.Equal(t, filepath.Join(appDir, config.ConfigFile), services.Config.GetPath())
	assert.Equal(t, filepath.Join(appDir, journal.FileName), services.Journal.GetPath())
	assert.False(t, services.Config.Exists())
}

func TestNewServices_JournalPathOverride(t *testing.T) {
	defer osutil.ResetProvider()
	dir := t.TempDir()
	osutil.SetProvider(mockPathProvider{dir: dir})

	custom := filepath.Join(dir, "elsewhere.jsonl")
	appDir := filepath.Join(dir, osutil.AppName)
	require.NoError(t, os.MkdirAll(appDir, 0755))
	content := "[journal]\nenabled = true\npath = \"" + filepath.ToSlash(custom) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(appDir, config.ConfigFile), []byte(content), 0644))

	services, err := NewServices()
	require.NoError(t, err)
	defer func() { _ = services.Close() }()
	assert.Equal(t, filepath.ToSlash(custom), services.Journal.GetPath())
}

func TestDateService_Replay(t *testing.T) {
	tmpDir := t.TempDir()
	services, err := NewServicesWithPaths(
		filepath.Join(tmpDir, "config.toml"),
		filepath.Join(tmpDir, "journal.jsonl"),
		testConfig(func(c *config.Config) { c.Constraints.MaxDays = 3 }),
	)
	require.NoError(t, err)
	defer func() { _ = services.Close() }()

	sc, err := scenario.Decode(strings.NewReader(`name: replay
today: 2026-03-02
steps:
  - intent: typeText
    text: "in 2 days"
  - intent: selectDate
    date: 2026-03-10
    expect:
      error: too-long
  - intent: selectDate
    date: 2026-03-05
    expect:
      iso: 2026-03-04/2026-03-05
  - intent: applyPreset
    preset: Today
    expect:
      iso: 2026-03-02/2026-03-02
`))
	require.NoError(t, err)

	rec := services.Journal.Recorder("replay:replay")
	rep, err := services.Dates.Replay(context.Background(), sc, rec)
	require.NoError(t, err)
	assert.True(t, rep.Passed(), "%+v", rep.Steps)
	assert.Equal(t, "2026-03-02/2026-03-02", rep.Final.ISO)

	list, err := services.Journal.List(0)
	require.NoError(t, err)
	require.Len(t, list.Records, 2)
	assert.Equal(t, "replay:replay", list.Records[0].Source)
}

func TestDateService_Replay_Overrides(t *testing.T) {
	s := newDates(t, nil)
	sc := scenario.Scenario{
		Today:       calendar.MustNew(2026, 5, 4),
		Mode:        "single",
		Locale:      "de-DE",
		Constraints: &config.ConstraintsConfig{DisabledWeekdays: []string{"monday"}},
		Steps: []scenario.Step{
			{Intent: selection.Intent{Kind: selection.IntentTypeText, Text: "04.05.2026"}},
			{Intent: selection.Intent{Kind: selection.IntentTypeText, Text: "05.05.2026"}},
		},
	}

	rep, err := s.Replay(context.Background(), sc, nil)
	require.NoError(t, err)
	require.Len(t, rep.Steps, 2)
	assert.Contains(t, rep.Steps[0].Error, "disabled")
	assert.Equal(t, "2026-05-05", rep.Final.ISO)

	sc.Locale = "xx"
	_, err = s.Replay(context.Background(), sc, nil)
	assert.Error(t, err)
}
