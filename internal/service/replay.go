package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/scenario"
	"github.com/xolan/datepick/internal/selection"
)

// Replay runs sc on a fresh picker. The scenario's today, mode, compare,
// locale and constraints override the service configuration; obs receives
// the picker's events and may be nil.
func (s *DateService) Replay(ctx context.Context, sc scenario.Scenario, obs selection.Observer) (scenario.Report, error) {
	cfg := s.config
	if sc.Mode != "" {
		cfg.Mode = sc.Mode
	}
	if sc.Compare {
		cfg.Compare = true
	}
	if sc.Locale != "" {
		cfg.Locale = sc.Locale
	}
	if sc.Constraints != nil {
		cfg.Constraints = *sc.Constraints
	}
	var clock preset.Clock = s.resolver.Clock
	if !sc.Today.IsZero() {
		clock = preset.ClockAt(sc.Today)
	}

	replay, err := NewDateService(cfg, clock, s.log)
	if err != nil {
		return scenario.Report{}, err
	}
	if !sc.Today.IsZero() {
		// ClockAt is noon UTC; keep that day whatever the configured zone.
		replay.resolver.Location = nil
	}
	picker, err := replay.NewPicker(ctx, obs)
	if err != nil {
		return scenario.Report{}, err
	}

	rep := scenario.Run(picker, sc)
	s.log.Info("Replayed scenario",
		zap.String("name", sc.Name),
		zap.Int("steps", len(rep.Steps)),
		zap.Int("failed", rep.Failed()),
		zap.String("iso", rep.Final.ISO))
	return rep, nil
}
