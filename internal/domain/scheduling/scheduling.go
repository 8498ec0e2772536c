// Package scheduling turns a semester's calendar and booking policy into
// concrete game-session dates and booking-open instants.
//
// Every function here is pure: no I/O, no clock, no shared state. Inputs
// are read on their UTC calendar date; callers resolve local time zones
// before calling.
package scheduling

import (
	"time"

	"shuttle/internal/domain/weekday"
)

// Window is a semester's calendar span and its mid-semester break.
// Only the year/month/day of each field is significant. A zero break
// window excludes nothing.
type Window struct {
	Start      time.Time
	End        time.Time
	BreakStart time.Time
	BreakEnd   time.Time
}

// Policy says booking for a session opens on Day at the wall-clock time
// of Time (UTC); the calendar date of Time is ignored.
type Policy struct {
	Day  weekday.Weekday
	Time time.Time
}

// TimeSpec is the wall-clock start and end of a recurring session. Only
// hour, minute and second are used.
type TimeSpec struct {
	Start time.Time
	End   time.Time
}

// Occurrence is one concrete session: absolute start and end instants.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// DateOf returns midnight UTC on t's UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InBreak reports whether date falls on or between the break's first and
// last day.
// PRE: none
// POST: Always false for a zero break window
func (w Window) InBreak(date time.Time) bool {
	if w.BreakStart.IsZero() && w.BreakEnd.IsZero() {
		return false
	}
	d := DateOf(date)
	return !d.Before(DateOf(w.BreakStart)) && !d.After(DateOf(w.BreakEnd))
}

// SessionDates returns every date on target within [Start, End] that is
// not inside the break, in ascending order.
// PRE: target is Valid
// POST: Consecutive results differ by a positive multiple of 7 days;
// result is nil when no date qualifies
func SessionDates(target weekday.Weekday, w Window) []time.Time {
	end := DateOf(w.End)
	anchor := DateOf(w.Start)
	anchor = anchor.AddDate(0, 0, weekday.DaysBetween(weekday.Of(anchor), target))

	var dates []time.Time
	for ; !anchor.After(end); anchor = anchor.AddDate(0, 0, weekday.DaysPerWeek) {
		if w.InBreak(anchor) {
			continue
		}
		dates = append(dates, anchor)
	}
	return dates
}

// BookingOpensAt returns the instant booking opens for a session that
// starts at sessionStart: the most recent policy weekday on or before the
// session date, at the policy's time of day. When that lands on the
// session's own date but after it starts, the previous week is used.
// PRE: p.Day is Valid
// POST: Result is in UTC and never after sessionStart
func BookingOpensAt(p Policy, sessionStart time.Time) time.Time {
	start := sessionStart.UTC()
	offset := weekday.DaysBetween(p.Day, weekday.Of(start))

	y, m, d := start.Date()
	hh, mm, ss := p.Time.UTC().Clock()
	open := time.Date(y, m, d-offset, hh, mm, ss, 0, time.UTC)

	if offset == 0 && open.After(start) {
		open = open.AddDate(0, 0, -weekday.DaysPerWeek)
	}
	return open
}

// OccurrenceOn overlays spec's wall-clock times onto date. An end time
// earlier than the start time rolls over to the next day.
// PRE: none
// POST: Result.End is not before Result.Start
func OccurrenceOn(date time.Time, spec TimeSpec) Occurrence {
	day := DateOf(date)
	start := atClock(day, spec.Start)
	end := atClock(day, spec.End)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return Occurrence{Start: start, End: end}
}

// Occurrences materialises every session of a weekly slot in w.
func Occurrences(target weekday.Weekday, w Window, spec TimeSpec) []Occurrence {
	dates := SessionDates(target, w)
	out := make([]Occurrence, 0, len(dates))
	for _, d := range dates {
		out = append(out, OccurrenceOn(d, spec))
	}
	return out
}

func atClock(day, clock time.Time) time.Time {
	hh, mm, ss := clock.UTC().Clock()
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute + time.Duration(ss)*time.Second)
}
