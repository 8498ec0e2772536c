package weekday

import (
	"errors"
	"strings"
	"time"
)

// Weekday is a lower-case day name as stored and sent over the wire.
type Weekday string

// Day of week constants, listed Monday-first.
const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// DaysPerWeek is the length of the weekly cycle.
const DaysPerWeek = 7

// All lists every weekday in ordinal order (Monday = 0).
var All = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ErrInvalid is returned when a string does not name a weekday.
var ErrInvalid = errors.New("day must be a valid day of the week")

// fromTime translates Go's Sunday-first numbering into our names.
var fromTime = [DaysPerWeek]Weekday{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// Parse normalises s and returns the matching Weekday.
// PRE: none
// POST: Returns ErrInvalid if s is not a day name (case-insensitive)
func Parse(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", ErrInvalid
	}
	return d, nil
}

// Valid reports whether d is one of the seven day names.
func (d Weekday) Valid() bool {
	return d.Ordinal() >= 0
}

// Ordinal returns 0 for Monday through 6 for Sunday, or -1 if d is invalid.
func (d Weekday) Ordinal() int {
	for i, w := range All {
		if w == d {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer.
func (d Weekday) String() string {
	return string(d)
}

// Of returns the weekday of t's UTC calendar date.
// PRE: none
// POST: Result is always Valid
func Of(t time.Time) Weekday {
	return fromTime[t.UTC().Weekday()]
}

// DaysBetween returns how many days to move forward from a date on from
// to reach the next to, staying put when they are equal.
// PRE: from and to are Valid
// POST: 0 <= result <= 6; DaysBetween(d, d) == 0
func DaysBetween(from, to Weekday) int {
	return ((to.Ordinal()-from.Ordinal())%DaysPerWeek + DaysPerWeek) % DaysPerWeek
}
