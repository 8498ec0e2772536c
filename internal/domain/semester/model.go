package semester

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shuttle/internal/domain/scheduling"
	"shuttle/internal/domain/weekday"
)

// Domain errors
var (
	ErrEmptyName          = errors.New("semester name cannot be empty")
	ErrEmptyStartDate     = errors.New("start date cannot be zero")
	ErrEmptyEndDate       = errors.New("end date cannot be zero")
	ErrInvalidDates       = errors.New("start date must be on or before end date")
	ErrIncompleteBreak    = errors.New("break needs both a start and an end date")
	ErrInvalidBreak       = errors.New("break start must be on or before break end")
	ErrInvalidBookingDay  = errors.New("booking open day must be a valid day of the week")
	ErrInvalidBookingTime = errors.New("booking open time must be HH:MM or HH:MM:SS")
)

// Time-of-day layouts accepted for BookingOpenTime.
const (
	ClockLayout        = "15:04"
	ClockLayoutSeconds = "15:04:05"
)

// Semester is a block of weeks with an optional mid-semester break and a
// policy for when booking opens ahead of each session.
type Semester struct {
	ID              string
	Name            string
	StartDate       time.Time
	EndDate         time.Time
	BreakStart      time.Time // zero when there is no break
	BreakEnd        time.Time
	BookingOpenDay  weekday.Weekday
	BookingOpenTime string // HH:MM or HH:MM:SS, UTC
}

// Validate checks if the Semester has valid data.
// PRE: Semester struct is populated
// POST: Returns nil if valid, the first violated rule otherwise
func (s *Semester) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.StartDate.IsZero() {
		return ErrEmptyStartDate
	}
	if s.EndDate.IsZero() {
		return ErrEmptyEndDate
	}
	if scheduling.DateOf(s.StartDate).After(scheduling.DateOf(s.EndDate)) {
		return ErrInvalidDates
	}
	if s.BreakStart.IsZero() != s.BreakEnd.IsZero() {
		return ErrIncompleteBreak
	}
	if scheduling.DateOf(s.BreakStart).After(scheduling.DateOf(s.BreakEnd)) {
		return ErrInvalidBreak
	}
	if !s.BookingOpenDay.Valid() {
		return ErrInvalidBookingDay
	}
	if _, err := ParseClock(s.BookingOpenTime); err != nil {
		return err
	}
	return nil
}

// HasBreak reports whether a mid-semester break is configured.
func (s *Semester) HasBreak() bool {
	return !s.BreakStart.IsZero() && !s.BreakEnd.IsZero()
}

// Window returns the calendar span used to enumerate session dates.
// INVARIANT: Semester fields are not mutated
func (s *Semester) Window() scheduling.Window {
	return scheduling.Window{
		Start:      s.StartDate,
		End:        s.EndDate,
		BreakStart: s.BreakStart,
		BreakEnd:   s.BreakEnd,
	}
}

// Policy returns the booking-open policy.
// PRE: Validate() returned nil
// POST: Returns an error only if BookingOpenTime cannot be parsed
func (s *Semester) Policy() (scheduling.Policy, error) {
	t, err := ParseClock(s.BookingOpenTime)
	if err != nil {
		return scheduling.Policy{}, err
	}
	return scheduling.Policy{Day: s.BookingOpenDay, Time: t}, nil
}

// Contains returns true if the given date falls within this semester.
// PRE: date is a valid time
// INVARIANT: Semester fields are not mutated
func (s *Semester) Contains(date time.Time) bool {
	d := scheduling.DateOf(date)
	return !d.Before(scheduling.DateOf(s.StartDate)) && !d.After(scheduling.DateOf(s.EndDate))
}

// InBreak returns true if the given date falls within the mid-semester break.
func (s *Semester) InBreak(date time.Time) bool {
	return s.Window().InBreak(date)
}

// ParseClock parses an HH:MM or HH:MM:SS wall-clock time in UTC.
func ParseClock(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{ClockLayout, ClockLayoutSeconds} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBookingTime, v)
}
