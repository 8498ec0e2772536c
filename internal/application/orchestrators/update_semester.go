package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shuttle/internal/domain/gameschedule"
	"shuttle/internal/domain/gamesession"
	"shuttle/internal/domain/scheduling"
	"shuttle/internal/domain/semester"
)

// SemesterStoreForUpdate loads and saves semesters.
type SemesterStoreForUpdate interface {
	SemesterGetter
	SemesterSaver
}

// ScheduleStoreForUpdate loads one schedule or all of a semester's schedules.
type ScheduleStoreForUpdate interface {
	ScheduleGetter
	ScheduleLister
}

// SessionStoreForUpdate covers both regeneration and recompute.
type SessionStoreForUpdate interface {
	SessionReplacer
	SessionStoreForRecompute
}

// UpdateSemesterInput carries input for the update semester orchestrator.
type UpdateSemesterInput struct {
	ID string
	CreateSemesterInput
}

// UpdateSemesterDeps holds dependencies for UpdateSemester.
type UpdateSemesterDeps struct {
	SemesterStore SemesterStoreForUpdate
	ScheduleStore ScheduleStoreForUpdate
	SessionStore  SessionStoreForUpdate
	GenerateID    func() string
}

// UpdateSemesterResult reports what the update touched.
type UpdateSemesterResult struct {
	Semester    semester.Semester
	Regenerated int // schedules whose sessions were rebuilt
	Recomputed  int // sessions whose booking-open instant changed
}

// ExecuteUpdateSemester replaces a semester's fields and brings its stored
// sessions in line. A changed calendar window regenerates every schedule's
// sessions; a changed booking policy alone only recomputes booking-open
// instants.
// PRE: ID names a stored semester
// POST: Stored sessions reflect the new window and policy
// POST: On a storage failure after the save, the previous semester is put back
// and schedules already rebuilt are regenerated against it; restore failures
// are logged, and the original error is returned
func ExecuteUpdateSemester(ctx context.Context, input UpdateSemesterInput, deps UpdateSemesterDeps) (UpdateSemesterResult, error) {
	old, err := deps.SemesterStore.GetByID(ctx, input.ID)
	if err != nil {
		return UpdateSemesterResult{}, fmt.Errorf("load semester: %w", err)
	}
	updated, err := input.toSemester(old.ID)
	if err != nil {
		return UpdateSemesterResult{}, err
	}
	if err := deps.SemesterStore.Save(ctx, updated); err != nil {
		return UpdateSemesterResult{}, fmt.Errorf("save semester: %w", err)
	}

	result := UpdateSemesterResult{Semester: updated}
	switch {
	case !sameWindow(old.Window(), updated.Window()):
		schedules, err := deps.ScheduleStore.ListBySemesterID(ctx, updated.ID)
		if err != nil {
			restoreSemester(ctx, old, nil, deps)
			return UpdateSemesterResult{}, fmt.Errorf("list schedules: %w", err)
		}
		for i, sched := range schedules {
			if _, err := regenerate(ctx, sched, deps); err != nil {
				restoreSemester(ctx, old, schedules[:i], deps)
				return UpdateSemesterResult{}, err
			}
			result.Regenerated++
		}
	case !samePolicy(old, updated):
		n, err := ExecuteRecomputeBookingOpen(ctx, RecomputeBookingOpenInput{SemesterID: updated.ID}, RecomputeBookingOpenDeps{
			SemesterStore: deps.SemesterStore,
			ScheduleStore: deps.ScheduleStore,
			SessionStore:  deps.SessionStore,
		})
		if err != nil {
			restoreSemester(ctx, old, nil, deps)
			return UpdateSemesterResult{}, err
		}
		result.Recomputed = n
	}
	return result, nil
}

func regenerate(ctx context.Context, sched gameschedule.GameSchedule, deps UpdateSemesterDeps) ([]gamesession.GameSession, error) {
	return ExecuteGenerateSessions(ctx, GenerateSessionsInput{
		SemesterID: sched.SemesterID,
		ScheduleID: sched.ID,
	}, GenerateSessionsDeps{
		SemesterStore: deps.SemesterStore,
		ScheduleStore: deps.ScheduleStore,
		SessionStore:  deps.SessionStore,
		GenerateID:    deps.GenerateID,
	})
}

// restoreSemester saves old back and regenerates rebuilt against it.
func restoreSemester(ctx context.Context, old semester.Semester, rebuilt []gameschedule.GameSchedule, deps UpdateSemesterDeps) {
	if err := deps.SemesterStore.Save(ctx, old); err != nil {
		slog.Error("semester_restore_failed", "semester_id", old.ID, "error", err.Error())
		return
	}
	for _, sched := range rebuilt {
		if _, err := regenerate(ctx, sched, deps); err != nil {
			slog.Error("sessions_restore_failed", "semester_id", old.ID, "schedule_id", sched.ID, "error", err.Error())
		}
	}
}

func sameWindow(a, b scheduling.Window) bool {
	same := func(x, y time.Time) bool {
		if x.IsZero() || y.IsZero() {
			return x.IsZero() == y.IsZero()
		}
		return scheduling.DateOf(x).Equal(scheduling.DateOf(y))
	}
	return same(a.Start, b.Start) && same(a.End, b.End) &&
		same(a.BreakStart, b.BreakStart) && same(a.BreakEnd, b.BreakEnd)
}

func samePolicy(a, b semester.Semester) bool {
	pa, errA := a.Policy()
	pb, errB := b.Policy()
	if errA != nil || errB != nil {
		return false
	}
	return pa.Day == pb.Day && pa.Time.Equal(pb.Time)
}
