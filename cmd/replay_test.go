package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

const passingScenario = `name: weekday range
today: 2026-03-02
constraints:
  max_days: 7
steps:
  - intent: selectDate
    date: 2026-03-04
    expect:
      phase: start-selected
  - intent: selectDate
    date: 2026-03-20
    expect:
      error: too-long
  - intent: selectDate
    date: 2026-03-06
    expect:
      iso: 2026-03-04/2026-03-06
      changed: true
`

const failingScenario = `name: wrong expectation
today: 2026-03-02
mode: single
steps:
  - intent: typeText
    text: tomorrow
    expect:
      iso: 2026-03-04
`

func TestReplay_Passing(t *testing.T) {
	env := newTestEnv(t, nil)
	path := filepath.Join(env.dir, "scenario.yaml")
	writeFile(t, path, passingScenario)

	env.run("replay", path)
	env.expectSuccess(t)

	out := env.stdout.String()
	for _, want := range []string{"name: weekday range", "iso: 2026-03-04/2026-03-06"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "failures:") {
		t.Errorf("expected no failures in report:\n%s", out)
	}
	if len(env.records(t)) != 0 {
		t.Error("replay must not write the journal without --record")
	}
}

func TestReplay_Record(t *testing.T) {
	env := newTestEnv(t, nil)
	path := filepath.Join(env.dir, "scenario.yaml")
	writeFile(t, path, passingScenario)

	env.run("replay", path, "--record")
	env.expectSuccess(t)

	records := env.records(t)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Source != "replay:weekday range" || records[0].ISO != "2026-03-04/2026-03-06" {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestReplay_Failing(t *testing.T) {
	env := newTestEnv(t, nil)
	path := filepath.Join(env.dir, "scenario.yaml")
	writeFile(t, path, failingScenario)

	env.run("replay", path)
	env.expectFailure(t, "1 of 1 steps failed")
	if !strings.Contains(env.stdout.String(), "2026-03-03") {
		t.Errorf("expected the actual value in the report:\n%s", env.stdout)
	}
}

func TestReplay_LoadErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	env.run("replay", filepath.Join(env.dir, "missing.yaml"))
	env.expectFailure(t, "Failed to load scenario")

	path := filepath.Join(env.dir, "bad.yaml")
	writeFile(t, path, "name: bad\nsteps:\n  - intent: hover\n")
	env.run("replay", path)
	env.expectFailure(t, "Failed to load scenario")
}
