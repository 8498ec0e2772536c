package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"shuttle/internal/domain/gameschedule"
	"shuttle/internal/domain/gamesession"
	"shuttle/internal/domain/scheduling"
)

// ScheduleLister lists the schedules of a semester.
type ScheduleLister interface {
	ListBySemesterID(ctx context.Context, semesterID string) ([]gameschedule.GameSchedule, error)
}

// SessionStoreForRecompute reads a schedule's sessions and rewrites their
// booking-open instants.
type SessionStoreForRecompute interface {
	ListByScheduleID(ctx context.Context, scheduleID string) ([]gamesession.GameSession, error)
	UpdateBookingOpens(ctx context.Context, sessions []gamesession.GameSession) error
}

// RecomputeBookingOpenInput carries input for the recompute orchestrator.
type RecomputeBookingOpenInput struct {
	SemesterID string
}

// RecomputeBookingOpenDeps holds dependencies for RecomputeBookingOpen.
type RecomputeBookingOpenDeps struct {
	SemesterStore SemesterGetter
	ScheduleStore ScheduleLister
	SessionStore  SessionStoreForRecompute
}

// ExecuteRecomputeBookingOpen re-derives BookingOpensAt for every stored
// session of a semester from its current booking policy.
// PRE: SemesterID names a stored semester
// POST: Every session's BookingOpensAt matches the policy; returns how many changed
func ExecuteRecomputeBookingOpen(ctx context.Context, input RecomputeBookingOpenInput, deps RecomputeBookingOpenDeps) (int, error) {
	sem, err := deps.SemesterStore.GetByID(ctx, input.SemesterID)
	if err != nil {
		return 0, fmt.Errorf("load semester: %w", err)
	}
	policy, err := sem.Policy()
	if err != nil {
		return 0, invalid(err)
	}
	schedules, err := deps.ScheduleStore.ListBySemesterID(ctx, sem.ID)
	if err != nil {
		return 0, fmt.Errorf("list schedules: %w", err)
	}

	var changed []gamesession.GameSession
	for _, sched := range schedules {
		sessions, err := deps.SessionStore.ListByScheduleID(ctx, sched.ID)
		if err != nil {
			return 0, fmt.Errorf("list sessions for %s: %w", sched.ID, err)
		}
		for _, gs := range sessions {
			opens := scheduling.BookingOpensAt(policy, gs.StartTime)
			if opens.Equal(gs.BookingOpensAt) {
				continue
			}
			gs.BookingOpensAt = opens
			changed = append(changed, gs)
		}
	}

	if len(changed) > 0 {
		if err := deps.SessionStore.UpdateBookingOpens(ctx, changed); err != nil {
			return 0, fmt.Errorf("update booking opens: %w", err)
		}
	}
	slog.Info("booking_open_recomputed", "semester_id", sem.ID, "changed", len(changed))
	return len(changed), nil
}
