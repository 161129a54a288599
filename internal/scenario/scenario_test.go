package scenario

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/selection"
)

const basicScenario = `name: basic range
today: 2026-02-10
compare: true
steps:
  - intent: selectDate
    date: 2026-02-10
    expect:
      phase: start-selected
      changed: false
  - intent: selectDate
    date: 2026-02-05
    expect:
      phase: range-complete
      iso: 2026-02-05/2026-02-10
      changed: true
      error: none
  - intent: setTarget
    target: compare
  - intent: typeText
    text: tomorrow
    expect:
      phase: start-selected
  - intent: selectDate
    date: 2026-02-14
    expect:
      compare_iso: 2026-02-11/2026-02-14
      iso: 2026-02-05/2026-02-10
  - intent: applyPreset
    preset: Nope
    expect:
      error: unknown preset
      compare_iso: 2026-02-11/2026-02-14
`

func newPicker(t *testing.T, sc Scenario) *selection.Picker {
	t.Helper()
	mode, err := selection.ParseMode(sc.Mode)
	if err != nil {
		t.Fatalf("ParseMode(%q) error: %v", sc.Mode, err)
	}
	resolver := preset.NewResolver(preset.ClockAt(sc.Today), time.UTC)
	return selection.NewPicker(selection.Config{Mode: mode, Compare: sc.Compare}, preset.Defaults(time.Monday), resolver, nil)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	sc, err := Load(writeScenario(t, basicScenario))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if sc.Name != "basic range" || !sc.Compare || sc.Today != calendar.MustNew(2026, 2, 10) {
		t.Errorf("Load() = %+v", sc)
	}
	if len(sc.Steps) != 6 {
		t.Fatalf("Load() steps = %d, want 6", len(sc.Steps))
	}
	first := sc.Steps[0]
	if first.Kind != selection.IntentSelectDate || first.Date != calendar.MustNew(2026, 2, 10) {
		t.Errorf("first step = %+v", first.Intent)
	}
	if first.Expect == nil || first.Expect.Phase != "start-selected" || first.Expect.Changed == nil || *first.Expect.Changed {
		t.Errorf("first expectation = %+v", first.Expect)
	}
	if sc.Steps[2].Target != selection.TargetCompare {
		t.Errorf("setTarget step target = %v", sc.Steps[2].Target)
	}
	if sc.Steps[2].Expect != nil {
		t.Errorf("setTarget step should have no expectation")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "steps:\n  - intent: clear\n    colour: red\n", "field colour not found"},
		{"unknown intent", "steps:\n  - intent: teleport\n", "unknown intent"},
		{"bad date", "steps:\n  - intent: selectDate\n    date: 2026-02-30\n", "failed to decode scenario"},
		{"bad mode", "mode: multi\nsteps:\n  - intent: clear\n", "invalid mode"},
		{"no steps", "name: empty\n", "scenario has no steps"},
		{"empty file", "", "scenario has no steps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeScenario(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestDecode_NoSteps(t *testing.T) {
	if _, err := Decode(strings.NewReader("steps: []\n")); !errors.Is(err, ErrNoSteps) {
		t.Errorf("Decode() error = %v, want ErrNoSteps", err)
	}
}

func TestRun_Passes(t *testing.T) {
	sc, err := Decode(strings.NewReader(basicScenario))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	rep := Run(newPicker(t, sc), sc)

	if !rep.Passed() {
		for _, s := range rep.Steps {
			if len(s.Failures) > 0 {
				t.Errorf("step %d (%s): %v", s.Step, s.Intent, s.Failures)
			}
		}
	}
	if len(rep.Steps) != 6 || rep.Steps[0].Step != 1 {
		t.Fatalf("Run() steps = %+v", rep.Steps)
	}
	if rep.Final.ISO != "2026-02-05/2026-02-10" || rep.Final.CompareISO != "2026-02-11/2026-02-14" {
		t.Errorf("Run() final = %+v", rep.Final)
	}
	if rep.Steps[5].Error == "" {
		t.Error("rejected preset step should record its error")
	}
	if !rep.Steps[1].Changed || rep.Steps[0].Changed {
		t.Errorf("changed flags = %v, %v", rep.Steps[0].Changed, rep.Steps[1].Changed)
	}
}

func TestRun_ReportsFailures(t *testing.T) {
	content := `today: 2026-02-10
mode: single
steps:
  - intent: selectDate
    date: 2026-02-12
    expect:
      iso: 2026-02-13
      phase: range-complete
  - intent: typeText
    text: "2026-03-01/2026-03-05"
    expect:
      unparsed: false
  - intent: blur
    expect:
      error: none
  - intent: applyPreset
    preset: Today
    expect:
      error: duration
      changed: false
`
	sc, err := Decode(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	rep := Run(newPicker(t, sc), sc)

	if rep.Passed() || rep.Failed() != 4 {
		t.Fatalf("Failed() = %d, want 4: %+v", rep.Failed(), rep.Steps)
	}
	if got := len(rep.Steps[0].Failures); got != 2 {
		t.Errorf("step 1 failures = %v, want iso and phase", rep.Steps[0].Failures)
	}
	if !rep.Steps[1].Unparsed {
		t.Error("a range typed in single mode should be unparsed")
	}
	if !strings.Contains(rep.Steps[2].Failures[0], "unexpected error") {
		t.Errorf("step 3 failures = %v", rep.Steps[2].Failures)
	}
	if !strings.Contains(strings.Join(rep.Steps[3].Failures, "; "), "expected error containing") {
		t.Errorf("step 4 failures = %v", rep.Steps[3].Failures)
	}
	if rep.Final.ISO != "2026-02-10" {
		t.Errorf("final = %q, want the Today preset", rep.Final.ISO)
	}
}

func TestReport_Encode(t *testing.T) {
	sc, err := Decode(strings.NewReader(basicScenario))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	rep := Run(newPicker(t, sc), sc)

	var buf bytes.Buffer
	if err := rep.Encode(&buf); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"name: basic range",
		"intent: selectDate(2026-02-10)",
		"state: range-complete(2026-02-05/2026-02-10)",
		"iso: 2026-02-05/2026-02-10",
		"compare_iso: 2026-02-11/2026-02-14",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() output missing %q:\n%s", want, out)
		}
	}
}
