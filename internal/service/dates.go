package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/calsource"
	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/constraint"
	"github.com/xolan/datepick/internal/locale"
	"github.com/xolan/datepick/internal/preset"
	"github.com/xolan/datepick/internal/relative"
	"github.com/xolan/datepick/internal/selection"
)

// windowDays is how far around today calendar sources are expanded when a
// picker is built.
const windowDays = 366

// DateService resolves, parses, formats and validates dates with the
// configured locale, constraints and presets, and builds pickers.
type DateService struct {
	config   config.Config
	locale   *locale.Locale
	style    locale.Style
	base     *constraint.Constraints
	source   calsource.Source
	presets  []preset.Preset
	resolver *preset.Resolver
	log      *zap.Logger
}

// NewDateService builds a DateService from cfg. clock may be nil for the
// wall clock. Calendar files listed in the config are read here.
func NewDateService(cfg config.Config, clock preset.Clock, log *zap.Logger) (*DateService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := locale.Lookup(cfg.Locale)
	if err != nil {
		return nil, err
	}
	tz, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	cc, err := cfg.ConstraintConfig()
	if err != nil {
		return nil, err
	}
	base, err := constraint.New(cc)
	if err != nil {
		return nil, err
	}
	presets, err := cfg.BuildPresets()
	if err != nil {
		return nil, err
	}
	source, err := buildSource(cfg, log)
	if err != nil {
		return nil, err
	}

	return &DateService{
		config:   cfg,
		locale:   loc,
		style:    cfg.DisplayStyle(),
		base:     base,
		source:   source,
		presets:  presets,
		resolver: preset.NewResolver(clock, tz),
		log:      log,
	}, nil
}

func buildSource(cfg config.Config, log *zap.Logger) (calsource.Source, error) {
	var sources calsource.Multi
	weekdays, err := cfg.Constraints.Weekdays()
	if err != nil {
		return nil, err
	}
	if len(weekdays) > 0 {
		sources = append(sources, calsource.Weekdays(weekdays))
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	for _, path := range cfg.Constraints.Calendars {
		ics, err := calsource.OpenICS(path, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to load calendar %s: %w", path, err)
		}
		log.Debug("Loaded calendar", zap.String("path", path), zap.Int("events", ics.Len()), zap.Stringer("timezone", loc))
		sources = append(sources, ics)
	}
	if len(sources) == 0 {
		return nil, nil
	}
	return sources, nil
}

// Config returns the configuration the service was built from.
func (s *DateService) Config() config.Config { return s.config }

// Locale returns the display locale.
func (s *DateService) Locale() *locale.Locale { return s.locale }

// Style returns the display style.
func (s *DateService) Style() locale.Style { return s.style }

// Presets returns the configured presets in display order.
func (s *DateService) Presets() []preset.Preset { return s.presets }

// Resolver returns the preset resolver, which also supplies today.
func (s *DateService) Resolver() *preset.Resolver { return s.resolver }

// Today returns the reference date in the configured timezone.
func (s *DateService) Today() calendar.Date { return s.resolver.Today() }

// SetLocale switches the display locale.
func (s *DateService) SetLocale(tag string) error {
	loc, err := locale.Lookup(tag)
	if err != nil {
		return err
	}
	s.locale = loc
	return nil
}

// SetStyle switches the display style.
func (s *DateService) SetStyle(style string) error {
	st, err := locale.ParseStyle(style)
	if err != nil {
		return err
	}
	s.style = st
	return nil
}

// Format renders v in the display locale and style.
func (s *DateService) Format(v calendar.Value) string {
	return s.locale.Format(v, s.style)
}

// Parse reads text strictly: ISO first, then the locale's own forms.
// Relative phrases are not understood here.
func (s *DateService) Parse(text string) (calendar.Value, error) {
	v, err := s.locale.Parse(text)
	if err != nil {
		return calendar.Value{}, &selection.InputError{Kind: selection.ErrUnparsableInput, Input: text, Cause: err}
	}
	return v, nil
}

// Resolve interprets text against today the way the picker's text field
// does.
func (s *DateService) Resolve(text string) (Resolution, error) {
	return s.ResolveAt(text, s.Today())
}

// ResolveAt interprets text against ref: the relative phrase grammar, then
// the locale parser, then the natural language fallback.
func (s *DateService) ResolveAt(text string, ref calendar.Date) (Resolution, error) {
	res := Resolution{Input: text, Ref: ref}
	if d, ok := relative.ResolveStrict(text, ref); ok {
		res.Value = calendar.SingleValue(d)
		res.Source = SourceRelative
	} else if v, err := s.Parse(text); err == nil {
		res.Value = v
		res.Source = SourceParsed
	} else if d, ok := relative.Fallback(text, ref); ok {
		res.Value = calendar.SingleValue(d)
		res.Source = SourceRelative
	} else {
		s.log.Debug("Unresolved input", zap.String("text", text), zap.Error(err))
		return res, err
	}
	res.ISO = res.Value.ISO()
	res.Display = s.Format(res.Value)
	s.log.Debug("Resolved input",
		zap.String("text", text),
		zap.String("iso", res.ISO),
		zap.String("source", string(res.Source)))
	return res, nil
}

// Window returns the range calendar sources are expanded over for a picker
// opened on ref, clipped to the configured bounds.
func (s *DateService) Window(ref calendar.Date) calendar.Range {
	start, end := ref.AddDays(-windowDays), ref.AddDays(windowDays)
	if lo := s.base.MinDate(); !lo.IsZero() && lo.After(start) {
		start = lo
	}
	if hi := s.base.MaxDate(); !hi.IsZero() && hi.Before(end) {
		end = hi
	}
	return calendar.NewRange(start, end)
}

// Constraints returns the configured constraints with the calendar
// sources' disabled dates inside window added.
func (s *DateService) Constraints(ctx context.Context, window calendar.Range) (*constraint.Constraints, error) {
	if s.source == nil {
		return s.base, nil
	}
	dates, err := s.source.Disabled(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load disabled dates for %s: %w", window, err)
	}
	return s.base.WithDisabled(dates...), nil
}

// Validate checks v against the constraints. Source-disabled dates inside
// v are taken into account.
func (s *DateService) Validate(ctx context.Context, v calendar.Value) (Verdict, error) {
	c, err := s.Constraints(ctx, v.Range())
	if err != nil {
		return Verdict{}, err
	}
	res := constraint.ValidateValue(c, v)
	verdict := Verdict{
		Value:   v,
		ISO:     v.ISO(),
		Display: s.Format(v),
		Valid:   res.Valid(),
		Reason:  res.Reason.Code(),
		Message: s.locale.ReasonMessage(res),
		Result:  res,
	}
	s.log.Debug("Validated value", zap.String("iso", verdict.ISO), zap.Bool("valid", verdict.Valid), zap.String("reason", verdict.Reason))
	return verdict, nil
}

// PresetViews resolves every preset against today and validates it.
func (s *DateService) PresetViews(ctx context.Context) ([]PresetView, error) {
	views := make([]PresetView, 0, len(s.presets))
	for _, p := range s.presets {
		v := s.resolver.Apply(p)
		verdict, err := s.Validate(ctx, v)
		if err != nil {
			return nil, err
		}
		views = append(views, PresetView{
			Label:   p.Label,
			Value:   v,
			ISO:     verdict.ISO,
			Display: verdict.Display,
			Valid:   verdict.Valid,
			Reason:  verdict.Reason,
		})
	}
	return views, nil
}

// SelectionConfig returns the machine configuration for a picker whose
// constraints are c.
func (s *DateService) SelectionConfig(c *constraint.Constraints) selection.Config {
	return selection.Config{
		Mode:        s.config.SelectionMode(),
		Compare:     s.config.Compare,
		Constraints: c,
		Parser:      s.locale,
	}
}

// NewPicker builds a picker with the configured mode, presets and
// constraints. Calendar sources are expanded over Window(today).
func (s *DateService) NewPicker(ctx context.Context, obs selection.Observer) (*selection.Picker, error) {
	window := s.Window(s.Today())
	c, err := s.Constraints(ctx, window)
	if err != nil {
		return nil, err
	}
	cfg := s.SelectionConfig(c)
	s.log.Debug("Picker ready",
		zap.Stringer("mode", cfg.Mode),
		zap.Bool("compare", cfg.Compare),
		zap.Stringer("window", window),
		zap.Int("disabled", len(c.DisabledIn(window))))
	return selection.NewPicker(cfg, s.presets, s.resolver, obs), nil
}

// Export writes values as all-day iCalendar events stamped with the
// service clock.
func (s *DateService) Export(w io.Writer, values []calendar.Value) error {
	selections := make([]calsource.Selection, 0, len(values))
	for _, v := range values {
		selections = append(selections, calsource.Selection{Summary: "datepick selection", Value: v})
	}
	if err := calsource.Export(w, selections, s.resolver.Clock.Now()); err != nil {
		return err
	}
	s.log.Debug("Exported values", zap.Int("count", len(selections)))
	return nil
}
