package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"shuttle/internal/domain/weekday"
)

func recomputeDeps(store *fakeClubStore) RecomputeBookingOpenDeps {
	return RecomputeBookingOpenDeps{
		SemesterStore: fakeSemesters{store},
		ScheduleStore: fakeSchedules{store},
		SessionStore:  fakeSessions{store},
	}
}

// TestExecuteRecomputeBookingOpen_PolicyChange verifies instants follow a new policy.
func TestExecuteRecomputeBookingOpen_PolicyChange(t *testing.T) {
	store := newFakeClubStore()
	store.semesters["sem-1"] = springSemester()
	store.schedules["sched-mon"] = mondaySchedule()
	ctx := context.Background()
	if _, err := ExecuteGenerateSessions(ctx, GenerateSessionsInput{ScheduleID: "sched-mon"}, generateDeps(store)); err != nil {
		t.Fatalf("generate: %v", err)
	}

	sem := store.semesters["sem-1"]
	sem.BookingOpenDay = weekday.Monday
	sem.BookingOpenTime = "20:00"
	store.semesters["sem-1"] = sem

	n, err := ExecuteRecomputeBookingOpen(ctx, RecomputeBookingOpenInput{SemesterID: "sem-1"}, recomputeDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("changed = %d, want 4", n)
	}
	// Monday 20:00 is after an 18:00 Monday start, so booking opens the week before.
	first := store.sessions["sched-mon"][0]
	want := time.Date(2025, 2, 24, 20, 0, 0, 0, time.UTC)
	if !first.BookingOpensAt.Equal(want) {
		t.Errorf("first opens = %s, want %s", first.BookingOpensAt, want)
	}
}

// TestExecuteRecomputeBookingOpen_NoChange verifies an unchanged policy writes nothing.
func TestExecuteRecomputeBookingOpen_NoChange(t *testing.T) {
	store := newFakeClubStore()
	store.semesters["sem-1"] = springSemester()
	store.schedules["sched-mon"] = mondaySchedule()
	ctx := context.Background()
	ExecuteGenerateSessions(ctx, GenerateSessionsInput{ScheduleID: "sched-mon"}, generateDeps(store))

	n, err := ExecuteRecomputeBookingOpen(ctx, RecomputeBookingOpenInput{SemesterID: "sem-1"}, recomputeDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || store.updates != 0 {
		t.Errorf("changed = %d, updates = %d, want 0", n, store.updates)
	}
}

// TestExecuteRecomputeBookingOpen_UnknownSemester verifies not-found propagates.
func TestExecuteRecomputeBookingOpen_UnknownSemester(t *testing.T) {
	_, err := ExecuteRecomputeBookingOpen(context.Background(), RecomputeBookingOpenInput{SemesterID: "nope"}, recomputeDeps(newFakeClubStore()))
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v, want sql.ErrNoRows", err)
	}
}
