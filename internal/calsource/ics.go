package calsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-ical"

	"github.com/xolan/datepick/internal/calendar"
)

// iCalendar property names.
const (
	propUID      = "UID"
	propSummary  = "SUMMARY"
	propDTStart  = "DTSTART"
	propDTStamp  = "DTSTAMP"
	propDTEnd    = "DTEND"
	propVersion  = "VERSION"
	propProdID   = "PRODID"
	propCalScale = "CALSCALE"

	icalVersion = "2.0"
	icalProdID  = "-//xolan//datepick//EN"
)

// busyEvent is one VEVENT reduced to the days it covers.
type busyEvent struct {
	summary     string
	// first and last are the dates covered by the first occurrence.
	first, last calendar.Date
	recurring   bool
	// occurrence expands a recurring event between two instants.
	occurrence  func(from, to time.Time) []time.Time
}

// ICS disables every day covered by an event of an iCalendar file. All-day
// events cover DTSTART up to the day before DTEND; timed events cover each
// day they touch. RRULE recurrences are expanded.
type ICS struct {
	loc    *time.Location
	events []busyEvent
}

// OpenICS reads and parses the iCalendar file at path. loc is used for
// floating times; nil means time.Local.
func OpenICS(path string, loc *time.Location) (*ICS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar: %w", err)
	}
	defer func() { _ = f.Close() }()
	src, err := ParseICS(f, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// ParseICS reads every VCALENDAR in r.
func ParseICS(r io.Reader, loc *time.Location) (*ICS, error) {
	if loc == nil {
		loc = time.Local
	}
	src := &ICS{loc: loc}
	dec := ical.NewDecoder(r)
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding calendar: %w", err)
		}
		for _, ev := range cal.Events() {
			be, err := reduceEvent(ev, loc)
			if err != nil {
				return nil, err
			}
			src.events = append(src.events, be)
		}
	}
	return src, nil
}

func reduceEvent(ev ical.Event, loc *time.Location) (busyEvent, error) {
	summary, _ := ev.Props.Text(propSummary)
	start, err := ev.DateTimeStart(loc)
	if err != nil {
		return busyEvent{}, fmt.Errorf("event %q: invalid start: %w", summary, err)
	}
	if start.IsZero() {
		return busyEvent{}, fmt.Errorf("event %q: missing %s", summary, propDTStart)
	}
	end, err := ev.DateTimeEnd(loc)
	if err != nil {
		return busyEvent{}, fmt.Errorf("event %q: invalid end: %w", summary, err)
	}
	allDay := false
	if p := ev.Props.Get(propDTStart); p != nil && p.ValueType() == ical.ValueDate {
		allDay = true
	} else {
		start, end = start.In(loc), end.In(loc)
	}

	be := busyEvent{summary: summary}
	be.first, be.last = coveredDays(start, end, allDay)

	set, err := ev.RecurrenceSet(loc)
	if err != nil {
		return busyEvent{}, fmt.Errorf("event %q: invalid recurrence: %w", summary, err)
	}
	if set != nil {
		be.recurring = true
		be.occurrence = func(from, to time.Time) []time.Time {
			return set.Between(from, to, true)
		}
	}
	return be, nil
}

// coveredDays returns the first and last day an occurrence occupies.
func coveredDays(start, end time.Time, allDay bool) (calendar.Date, calendar.Date) {
	first := calendar.FromTime(start)
	if !end.After(start) {
		return first, first
	}
	last := calendar.FromTime(end)
	midnight := end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0
	if allDay || midnight {
		last = last.AddDays(-1)
	}
	if last.Before(first) {
		last = first
	}
	return first, last
}

// Len returns the number of events read.
func (s *ICS) Len() int { return len(s.events) }

// Disabled returns the days inside r covered by any event, sorted.
func (s *ICS) Disabled(ctx context.Context, r calendar.Range) ([]calendar.Date, error) {
	var out Static
	for _, ev := range s.events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		length := ev.first.DaysUntil(ev.last)
		starts := []calendar.Date{ev.first}
		if ev.recurring {
			starts = starts[:0]
			// Widen the window so occurrences starting before r but
			// overlapping it are found.
			from := r.Start.AddDays(-length).Time(s.loc)
			to := r.End.AddDays(1).Time(s.loc)
			for _, t := range ev.occurrence(from, to) {
				starts = append(starts, calendar.FromTime(t.In(s.loc)))
			}
		}
		for _, st := range starts {
			for d := range calendar.NewRange(st, st.AddDays(length)).Dates() {
				if r.Contains(d) {
					out = append(out, d)
				}
			}
		}
	}
	return out.Disabled(ctx, r)
}
