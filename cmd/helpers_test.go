package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/journal"
	"github.com/xolan/datepick/internal/osutil"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/service"
)

// testToday is a Tuesday.
var testToday = calendar.MustNew(2026, time.February, 10)

type mockPathProvider struct{ dir string }

func (m mockPathProvider) UserConfigDir() (string, error) { return m.dir, nil }

func (m mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// testEnv runs commands against services rooted in a temp directory with
// today pinned to testToday.
type testEnv struct {
	dir         string
	cfg         config.Config
	journalPath string
	stdin       string
	stdout      *bytes.Buffer
	stderr      *bytes.Buffer
	exitCode    int
}

func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()

	dir := t.TempDir()
	osutil.SetProvider(mockPathProvider{dir: dir})
	t.Cleanup(osutil.ResetProvider)

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	if mutate != nil {
		mutate(&cfg)
	}

	env := &testEnv{
		dir:         dir,
		cfg:         cfg,
		journalPath: filepath.Join(dir, journal.FileName),
		stdout:      &bytes.Buffer{},
		stderr:      &bytes.Buffer{},
	}
	SetDeps(&Deps{
		Stdout: env.stdout,
		Stderr: env.stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(code int) { env.exitCode = code },
		Services: func(opts ...service.Option) (*service.Services, error) {
			all := append([]service.Option{service.WithClock(preset.ClockAt(testToday))}, opts...)
			return service.NewServicesWithPaths(filepath.Join(dir, config.ConfigFile), env.journalPath, env.cfg, all...)
		},
	})
	t.Cleanup(ResetDeps)
	return env
}

// run executes the root command with args and fresh flag values.
func (e *testEnv) run(args ...string) {
	e.stdout.Reset()
	e.stderr.Reset()
	e.exitCode = 0
	deps.Stdin = strings.NewReader(e.stdin)

	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)
	if err := rootCmd.Execute(); err != nil {
		e.exitCode = 1
	}
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (e *testEnv) records(t *testing.T) []journal.Record {
	t.Helper()
	records, err := journal.Read(e.journalPath)
	if err != nil {
		t.Fatalf("failed to read journal: %v", err)
	}
	return records
}

func (e *testEnv) expectSuccess(t *testing.T) {
	t.Helper()
	if e.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\nstdout: %s\nstderr: %s", e.exitCode, e.stdout, e.stderr)
	}
}

func (e *testEnv) expectFailure(t *testing.T, wantErr string) {
	t.Helper()
	if e.exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d\nstdout: %s\nstderr: %s", e.exitCode, e.stdout, e.stderr)
	}
	if !strings.Contains(e.stderr.String(), wantErr) {
		t.Errorf("expected stderr to contain %q, got: %s", wantErr, e.stderr)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
