// Package scenario loads YAML files describing a sequence of selection
// intents and replays them against a picker, checking optional expectations
// after each step.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/selection"
)

// ErrNoSteps is returned for a scenario without steps.
var ErrNoSteps = errors.New("scenario has no steps")

// Scenario is one replay file. Fields left empty fall back to the caller's
// configuration.
type Scenario struct {
	Name string `yaml:"name,omitempty"`
	// Today pins the reference date so relative input and presets replay
	// identically on any day.
	Today   calendar.Date `yaml:"today,omitempty"`
	Mode    string        `yaml:"mode,omitempty"`
	Compare bool          `yaml:"compare,omitempty"`
	Locale  string        `yaml:"locale,omitempty"`
	// Constraints replaces the configured [constraints] section when set.
	Constraints *config.ConstraintsConfig `yaml:"constraints,omitempty"`
	Steps       []Step                    `yaml:"steps"`
}

// Step is an intent plus what the picker should look like after it.
type Step struct {
	selection.Intent `yaml:",inline"`
	Expect           *Expect `yaml:"expect,omitempty"`
}

// Expect lists checks for one step. Only set fields are checked.
type Expect struct {
	// Phase is the active machine's phase, e.g. "range-complete".
	Phase string `yaml:"phase,omitempty"`
	// ISO and CompareISO are the committed payload values.
	ISO        *string `yaml:"iso,omitempty"`
	CompareISO *string `yaml:"compare_iso,omitempty"`
	Changed    *bool   `yaml:"changed,omitempty"`
	Unparsed   *bool   `yaml:"unparsed,omitempty"`
	// Error matches the outcome's error text as a substring; "none" requires
	// no error.
	Error string `yaml:"error,omitempty"`
}

// Load reads a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to process scenario file %s: %w", path, err)
	}
	return sc, nil
}

// Decode reads one scenario document. Unknown keys are rejected.
func Decode(r io.Reader) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return sc, ErrNoSteps
		}
		return sc, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if len(sc.Steps) == 0 {
		return sc, ErrNoSteps
	}
	if _, err := selection.ParseMode(sc.Mode); err != nil {
		return sc, err
	}
	return sc, nil
}

// StepResult is the outcome of one replayed step.
type StepResult struct {
	Step     int      `yaml:"step" json:"step"`
	Intent   string   `yaml:"intent" json:"intent"`
	State    string   `yaml:"state" json:"state"`
	Changed  bool     `yaml:"changed,omitempty" json:"changed,omitempty"`
	Unparsed bool     `yaml:"unparsed,omitempty" json:"unparsed,omitempty"`
	Error    string   `yaml:"error,omitempty" json:"error,omitempty"`
	Failures []string `yaml:"failures,omitempty" json:"failures,omitempty"`
}

// Report is the result of Run.
type Report struct {
	Name  string            `yaml:"name,omitempty" json:"name,omitempty"`
	Steps []StepResult      `yaml:"steps" json:"steps"`
	Final selection.Payload `yaml:"final" json:"final"`
}

// Failed returns the number of steps with unmet expectations.
func (r Report) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if len(s.Failures) > 0 {
			n++
		}
	}
	return n
}

// Passed reports whether every expectation held.
func (r Report) Passed() bool {
	return r.Failed() == 0
}

// Encode writes the report as YAML.
func (r Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// Run dispatches every step of sc to p in order. Steps are numbered from 1.
func Run(p *selection.Picker, sc Scenario) Report {
	rep := Report{Name: sc.Name, Steps: make([]StepResult, 0, len(sc.Steps))}
	for i, step := range sc.Steps {
		out := p.Dispatch(step.Intent)
		res := StepResult{
			Step:     i + 1,
			Intent:   step.Intent.String(),
			State:    out.State.String(),
			Changed:  out.Changed,
			Unparsed: out.Unparsed,
		}
		if out.Err != nil {
			res.Error = out.Err.Error()
		}
		if step.Expect != nil {
			res.Failures = step.Expect.check(out, p.Payload())
		}
		rep.Steps = append(rep.Steps, res)
	}
	rep.Final = p.Payload()
	return rep
}

func (e Expect) check(out selection.Outcome, pl selection.Payload) []string {
	var failures []string
	if e.Phase != "" && e.Phase != out.State.Phase.String() {
		failures = append(failures, fmt.Sprintf("phase is %s, expected %s", out.State.Phase, e.Phase))
	}
	if e.ISO != nil && *e.ISO != pl.ISO {
		failures = append(failures, fmt.Sprintf("iso is %q, expected %q", pl.ISO, *e.ISO))
	}
	if e.CompareISO != nil && *e.CompareISO != pl.CompareISO {
		failures = append(failures, fmt.Sprintf("compare_iso is %q, expected %q", pl.CompareISO, *e.CompareISO))
	}
	if e.Changed != nil && *e.Changed != out.Changed {
		failures = append(failures, fmt.Sprintf("changed is %t, expected %t", out.Changed, *e.Changed))
	}
	if e.Unparsed != nil && *e.Unparsed != out.Unparsed {
		failures = append(failures, fmt.Sprintf("unparsed is %t, expected %t", out.Unparsed, *e.Unparsed))
	}
	switch {
	case e.Error == "":
	case e.Error == "none":
		if out.Err != nil {
			failures = append(failures, fmt.Sprintf("unexpected error: %v", out.Err))
		}
	case out.Err == nil:
		failures = append(failures, fmt.Sprintf("expected error containing %q", e.Error))
	case !strings.Contains(out.Err.Error(), e.Error):
		failures = append(failures, fmt.Sprintf("error %q does not contain %q", out.Err, e.Error))
	}
	return failures
}
