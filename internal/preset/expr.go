package preset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xolan/datepick/internal/calendar"
	"github.com/xolan/datepick/internal/relative"
)

var (
	lastNRe = regexp.MustCompile(`^last\s(\d+)\sdays?$`)
	nextNRe = regexp.MustCompile(`^next\s(\d+)\sdays?$`)
)

// probe is a fixed reference used to check relative phrases at parse time.
var probe = calendar.MustNew(2000, time.January, 1)

// ParseExpr builds a preset from a configuration expression:
//
//   - "today", "yesterday"
//   - "last N days", "next N days" (N days including today)
//   - "this week", "last week", "this month", "last month", "this year"
//   - an ISO date ("2026-02-10") or ISO interval ("2026-02-01/2026-02-10")
//   - any phrase the relative resolver understands ("next friday")
func ParseExpr(label, expr string, weekStart time.Weekday) (Preset, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Preset{}, fmt.Errorf("preset label cannot be empty")
	}
	resolve, err := parseExpr(strings.ToLower(strings.Join(strings.Fields(expr), " ")), weekStart)
	if err != nil {
		return Preset{}, fmt.Errorf("preset %q: %w", label, err)
	}
	return Preset{Label: label, Resolve: resolve}, nil
}

func parseExpr(expr string, weekStart time.Weekday) (func(calendar.Date) calendar.Value, error) {
	if expr == "" {
		return nil, fmt.Errorf("expression cannot be empty (use e.g. 'last 7 days', 'this month' or an ISO date)")
	}

	switch expr {
	case "this week":
		return func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Week(ref, weekStart))
		}, nil
	case "last week":
		return func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Week(ref.AddDays(-7), weekStart))
		}, nil
	case "this month":
		return func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Month(ref))
		}, nil
	case "last month":
		return func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.Month(calendar.StartOfMonth(ref).AddDays(-1)))
		}, nil
	case "this year":
		return func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.NewRange(
				calendar.MustNew(ref.Year, time.January, 1),
				calendar.MustNew(ref.Year, time.December, 31),
			))
		}, nil
	}

	if m := lastNRe.FindStringSubmatch(expr); m != nil {
		n, err := dayCount(m[1])
		if err != nil {
			return nil, err
		}
		return lastDays(n), nil
	}
	if m := nextNRe.FindStringSubmatch(expr); m != nil {
		n, err := dayCount(m[1])
		if err != nil {
			return nil, err
		}
		return func(ref calendar.Date) calendar.Value {
			return calendar.RangeValue(calendar.NextDays(ref, n))
		}, nil
	}

	if v, err := calendar.ParseValue(expr); err == nil {
		return func(calendar.Date) calendar.Value { return v }, nil
	}

	if _, ok := relative.ResolveStrict(expr, probe); ok {
		return func(ref calendar.Date) calendar.Value {
			d, _ := relative.ResolveStrict(expr, ref)
			return calendar.SingleValue(d)
		}, nil
	}

	return nil, fmt.Errorf("invalid expression '%s' (use 'last N days', 'this week', 'last month', an ISO date or interval, or a phrase like 'next friday')", expr)
}

func dayCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number of days: %s", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid number of days: must be positive, got %d", n)
	}
	return n, nil
}

// RangeFromFlags turns --from/--to/--last style inputs into a range ending
// no later than ref. last takes the N days up to and including ref and may
// not be combined with from or to. A missing to defaults to ref.
func RangeFromFlags(from, to string, last int, ref calendar.Date) (calendar.Range, error) {
	if last > 0 && (from != "" || to != "") {
		return calendar.Range{}, fmt.Errorf("cannot use --last with --from or --to")
	}
	if last > 0 {
		return calendar.LastDays(ref, last), nil
	}
	if from == "" {
		return calendar.Range{}, fmt.Errorf("either --from or --last is required")
	}

	start, err := calendar.ParseISO(from)
	if err != nil {
		return calendar.Range{}, fmt.Errorf("invalid --from date: %w", err)
	}
	end := ref
	if to != "" {
		end, err = calendar.ParseISO(to)
		if err != nil {
			return calendar.Range{}, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	if start.After(end) {
		return calendar.Range{}, fmt.Errorf("--from date (%s) is after --to date (%s)", start, end)
	}
	return calendar.NewRange(start, end), nil
}
