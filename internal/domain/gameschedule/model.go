package gameschedule

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
	ErrEmptySemesterID = errors.New("semester ID cannot be empty")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidDay      = errors.New("day must be a valid day of the week")
	ErrInvalidTime     = errors.New("times must be in HH:MM format")
	ErrZeroLength      = errors.New("start and end time cannot be equal")
)

const clockLayout = "15:04"

// GameSchedule is a recurring weekly game slot within a semester.
// Game sessions are materialised from GameSchedule + Semester - Break.
type GameSchedule struct {
	ID         string
	SemesterID string
	Title      string
	Day        weekday.Weekday
	StartTime  string // HH:MM, UTC
	EndTime    string // HH:MM, UTC
}

// Validate checks if the GameSchedule has valid data.
// PRE: GameSchedule struct is populated
// POST: Returns nil if valid, error otherwise
func (g *GameSchedule) Validate() error {
	if strings.TrimSpace(g.SemesterID) == "" {
		return ErrEmptySemesterID
	}
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if !g.Day.Valid() {
		return ErrInvalidDay
	}
	spec, err := g.TimeSpec()
	if err != nil {
		return err
	}
	if spec.Start.Equal(spec.End) {
		return ErrZeroLength
	}
	return nil
}

// TimeSpec parses the wall-clock start and end.
// PRE: StartTime and EndTime are in HH:MM format
// POST: Returns the parsed spec, or an error wrapping ErrInvalidTime
func (g *GameSchedule) TimeSpec() (scheduling.TimeSpec, error) {
	start, err := time.Parse(clockLayout, g.StartTime)
	if err != nil {
		return scheduling.TimeSpec{}, fmt.Errorf("%w: start %q", ErrInvalidTime, g.StartTime)
	}
	end, err := time.Parse(clockLayout, g.EndTime)
	if err != nil {
		return scheduling.TimeSpec{}, fmt.Errorf("%w: end %q", ErrInvalidTime, g.EndTime)
	}
	return scheduling.TimeSpec{Start: start, End: end}, nil
}

// DurationHours returns the session length in hours.
// PRE: StartTime and EndTime are in HH:MM format
// POST: Returns duration as float64 hours, or error if times can't be parsed
func (g *GameSchedule) DurationHours() (float64, error) {
	spec, err := g.TimeSpec()
	if err != nil {
		return 0, err
	}
	dur := spec.End.Sub(spec.Start)
	if dur <= 0 {
		dur += 24 * time.Hour // runs past midnight
	}
	return dur.Hours(), nil
}
