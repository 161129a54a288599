package calsource

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/xolan/datepick/internal/calendar"
)

// ErrNothingToExport is returned when every selection is empty.
var ErrNothingToExport = errors.New("nothing to export")

// Selection is one selected value to export as an all-day event.
type Selection struct {
	UID     string
	Summary string
	Value   calendar.Value
}

// Export writes selections as all-day VEVENTs. DTEND is exclusive, so a
// range ending on the 10th ends on the 11th. stamp is written as DTSTAMP.
func Export(w io.Writer, selections []Selection, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(propVersion, icalVersion)
	cal.Props.SetText(propProdID, icalProdID)
	cal.Props.SetText(propCalScale, "GREGORIAN")

	dtStamp := ical.NewProp(propDTStamp)
	dtStamp.SetDateTime(stamp.UTC())

	for i, sel := range selections {
		if sel.Value.IsZero() {
			continue
		}
		r := sel.Value.Range()
		uid := sel.UID
		if uid == "" {
			uid = fmt.Sprintf("%s-%d@datepick", r.Start, i)
		}

		event := ical.NewEvent()
		event.Props.SetText(propUID, uid)
		event.Props.Set(dtStamp)
		if sel.Summary != "" {
			event.Props.SetText(propSummary, sel.Summary)
		}
		start := ical.NewProp(propDTStart)
		start.SetDate(r.Start.Time(time.UTC))
		event.Props.Set(start)
		end := ical.NewProp(propDTEnd)
		end.SetDate(r.End.AddDays(1).Time(time.UTC))
		event.Props.Set(end)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return ErrNothingToExport
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}
