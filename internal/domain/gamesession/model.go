package gamesession

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptySemesterID = errors.New("semester ID cannot be empty")
	ErrEmptyScheduleID = errors.New("schedule ID cannot be empty")
	ErrEmptyStartTime  = errors.New("start time cannot be zero")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrOpensAfterStart = errors.New("booking cannot open after the session starts")
)

// GameSession is one concrete, bookable game session.
// INVARIANT: BookingOpensAt <= StartTime < EndTime
type GameSession struct {
	ID             string
	SemesterID     string
	ScheduleID     string
	StartTime      time.Time
	EndTime        time.Time
	BookingOpensAt time.Time
}

// Validate checks if the GameSession has valid data.
// PRE: GameSession struct is populated
// POST: Returns nil if valid, error otherwise
func (g *GameSession) Validate() error {
	if strings.TrimSpace(g.SemesterID) == "" {
		return ErrEmptySemesterID
	}
	if strings.TrimSpace(g.ScheduleID) == "" {
		return ErrEmptyScheduleID
	}
	if g.StartTime.IsZero() {
		return ErrEmptyStartTime
	}
	if !g.EndTime.After(g.StartTime) {
		return ErrEndBeforeStart
	}
	if g.BookingOpensAt.After(g.StartTime) {
		return ErrOpensAfterStart
	}
	return nil
}

// IsBookingOpen reports whether members can book at now.
// PRE: now is a valid time
// POST: true iff BookingOpensAt <= now < StartTime
func (g *GameSession) IsBookingOpen(now time.Time) bool {
	return !now.Before(g.BookingOpensAt) && now.Before(g.StartTime)
}

// HasStarted reports whether the session has begun at now.
func (g *GameSession) HasStarted(now time.Time) bool {
	return !now.Before(g.StartTime)
}
