package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/xolan/datepick/cmd"
	"github.com/xolan/datepick/internal/osutil"
	"github.com/xolan/datepick/internal/service"
)

// MockPathProvider for testing config location failures
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	return m.UserConfigDirFn()
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

type captured struct {
	stdout, stderr bytes.Buffer
	exitCode       int
}

// setup points the CLI at a temp config dir and captures its output.
func setup(t *testing.T, args ...string) *captured {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(&MockPathProvider{UserConfigDirFn: func() (string, error) { return dir, nil }})
	t.Cleanup(osutil.ResetProvider)

	originalArgs := os.Args
	os.Args = append([]string{"datepick"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	c := &captured{}
	cmd.SetDeps(&cmd.Deps{
		Stdout:   &c.stdout,
		Stderr:   &c.stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { c.exitCode = code },
		Services: service.NewServices,
	})
	t.Cleanup(cmd.ResetDeps)
	return c
}

func TestRun_Success(t *testing.T) {
	c := setup(t, "format", "2026-02-11")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
	if c.exitCode != 0 {
		t.Errorf("Expected no command failure, got exit %d: %s", c.exitCode, c.stderr.String())
	}
	if got := c.stdout.String(); got != "Feb 11, 2026\n" {
		t.Errorf("Expected formatted date, got %q", got)
	}
}

func TestRun_ConfigLocationFailure(t *testing.T) {
	c := setup(t, "resolve", "tomorrow")
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})

	run()
	if c.exitCode != 1 {
		t.Errorf("Expected exit code 1 when the config dir is unavailable, got %d", c.exitCode)
	}
	if !strings.Contains(c.stderr.String(), "permission denied") {
		t.Errorf("Expected the cause in stderr, got: %s", c.stderr.String())
	}
}

func TestRun_ExecuteError(t *testing.T) {
	setup(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	setup(t, "format", "2026-02-11")

	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
