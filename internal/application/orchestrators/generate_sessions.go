package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"shuttle/internal/domain/gameschedule"
	"shuttle/internal/domain/gamesession"
	"shuttle/internal/domain/scheduling"
	"shuttle/internal/domain/semester"
)

// ErrScheduleNotInSemester is returned when a schedule is asked to generate
// sessions for a semester it does not belong to.
var ErrScheduleNotInSemester = errors.New("schedule does not belong to semester")

// SemesterGetter loads a semester by ID.
type SemesterGetter interface {
	GetByID(ctx context.Context, id string) (semester.Semester, error)
}

// ScheduleGetter loads a game schedule by ID.
type ScheduleGetter interface {
	GetByID(ctx context.Context, id string) (gameschedule.GameSchedule, error)
}

// SessionReplacer swaps a schedule's stored sessions for a new set.
type SessionReplacer interface {
	ReplaceForSchedule(ctx context.Context, scheduleID string, sessions []gamesession.GameSession) error
}

// GenerateSessionsInput carries input for the generate sessions orchestrator.
// SemesterID is optional; when set it must match the schedule's semester.
type GenerateSessionsInput struct {
	SemesterID string
	ScheduleID string
}

// GenerateSessionsDeps holds dependencies for GenerateSessions.
type GenerateSessionsDeps struct {
	SemesterStore SemesterGetter
	ScheduleStore ScheduleGetter
	SessionStore  SessionReplacer
	GenerateID    func() string
}

// ExecuteGenerateSessions materialises every session of a weekly schedule
// for its semester and replaces whatever was stored for that schedule.
// PRE: ScheduleID names a stored schedule whose semester exists
// POST: The schedule's stored sessions are exactly one per session date,
// ordered by start, each with its booking-open instant
func ExecuteGenerateSessions(ctx context.Context, input GenerateSessionsInput, deps GenerateSessionsDeps) ([]gamesession.GameSession, error) {
	sched, err := deps.ScheduleStore.GetByID(ctx, input.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	if input.SemesterID != "" && input.SemesterID != sched.SemesterID {
		return nil, invalid(ErrScheduleNotInSemester)
	}
	sem, err := deps.SemesterStore.GetByID(ctx, sched.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("load semester: %w", err)
	}

	sessions, err := buildSessions(sem, sched, deps.GenerateID)
	if err != nil {
		return nil, err
	}
	if err := deps.SessionStore.ReplaceForSchedule(ctx, sched.ID, sessions); err != nil {
		return nil, fmt.Errorf("replace sessions: %w", err)
	}

	slog.Info("sessions_generated",
		"semester_id", sem.ID,
		"schedule_id", sched.ID,
		"day", sched.Day,
		"count", len(sessions),
	)
	return sessions, nil
}

func buildSessions(sem semester.Semester, sched gameschedule.GameSchedule, generateID func() string) ([]gamesession.GameSession, error) {
	policy, err := sem.Policy()
	if err != nil {
		return nil, invalid(err)
	}
	spec, err := sched.TimeSpec()
	if err != nil {
		return nil, invalid(err)
	}

	occurrences := scheduling.Occurrences(sched.Day, sem.Window(), spec)
	sessions := make([]gamesession.GameSession, 0, len(occurrences))
	for _, occ := range occurrences {
		gs := gamesession.GameSession{
			ID:             generateID(),
			SemesterID:     sem.ID,
			ScheduleID:     sched.ID,
			StartTime:      occ.Start,
			EndTime:        occ.End,
			BookingOpensAt: scheduling.BookingOpensAt(policy, occ.Start),
		}
		if err := gs.Validate(); err != nil {
			return nil, invalid(err)
		}
		sessions = append(sessions, gs)
	}
	return sessions, nil
}
