package calendar

import "time"

// StartOfWeek returns the first day of the week containing d, where weeks
// begin on weekStart.
func StartOfWeek(d Date, weekStart time.Weekday) Date {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-offset)
}

// EndOfWeek returns the last day of the week containing d.
func EndOfWeek(d Date, weekStart time.Weekday) Date {
	return StartOfWeek(d, weekStart).AddDays(6)
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// EndOfMonth returns the last day of d's month, taking leap years into account.
func EndOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// Week returns the full week containing d.
func Week(d Date, weekStart time.Weekday) Range {
	return Range{Start: StartOfWeek(d, weekStart), End: EndOfWeek(d, weekStart)}
}

// Month returns the full month containing d.
func Month(d Date) Range {
	return Range{Start: StartOfMonth(d), End: EndOfMonth(d)}
}

// LastDays returns the n days ending on (and including) d. A value of n below
// one is treated as one.
func LastDays(d Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: d.AddDays(-(n - 1)), End: d}
}

// NextDays returns the n days starting on (and including) d.
func NextDays(d Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: d, End: d.AddDays(n - 1)}
}

// MonthGrid returns the dates shown for d's month in a 6x7 grid whose rows
// start on weekStart. Cells outside the month hold the adjacent months' dates.
func MonthGrid(d Date, weekStart time.Weekday) [6][7]Date {
	var grid [6][7]Date
	cur := StartOfWeek(StartOfMonth(d), weekStart)
	for row := range grid {
		for col := range grid[row] {
			grid[row][col] = cur
			cur = cur.AddDays(1)
		}
	}
	return grid
}
