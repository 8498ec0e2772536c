package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"shuttle/internal/domain/weekday"
)

func updateDeps(store *fakeClubStore) UpdateSemesterDeps {
	return UpdateSemesterDeps{
		SemesterStore: fakeSemesters{store},
		ScheduleStore: fakeSchedules{store},
		SessionStore:  fakeSessions{store},
		GenerateID:    sequentialIDs(),
	}
}

func seededStore(t *testing.T) *fakeClubStore {
	t.Helper()
	store := newFakeClubStore()
	store.semesters["sem-1"] = springSemester()
	store.schedules["sched-mon"] = mondaySchedule()
	if _, err := ExecuteGenerateSessions(context.Background(), GenerateSessionsInput{ScheduleID: "sched-mon"}, generateDeps(store)); err != nil {
		t.Fatalf("generate: %v", err)
	}
	return store
}

func springInput() CreateSemesterInput {
	s := springSemester()
	return CreateSemesterInput{
		Name:            s.Name,
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		BreakStart:      s.BreakStart,
		BreakEnd:        s.BreakEnd,
		BookingOpenDay:  string(s.BookingOpenDay),
		BookingOpenTime: s.BookingOpenTime,
	}
}

// TestExecuteUpdateSemester_WindowChange verifies sessions are regenerated.
func TestExecuteUpdateSemester_WindowChange(t *testing.T) {
	store := seededStore(t)
	in := springInput()
	in.BreakStart, in.BreakEnd = time.Time{}, time.Time{}

	res, err := ExecuteUpdateSemester(context.Background(), UpdateSemesterInput{ID: "sem-1", CreateSemesterInput: in}, updateDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Regenerated != 1 {
		t.Errorf("Regenerated = %d, want 1", res.Regenerated)
	}
	// Without the break 17 March is back.
	if got := len(store.sessions["sched-mon"]); got != 5 {
		t.Errorf("sessions = %d, want 5", got)
	}
}

// TestExecuteUpdateSemester_PolicyChange verifies only booking-open instants move.
func TestExecuteUpdateSemester_PolicyChange(t *testing.T) {
	store := seededStore(t)
	before := store.sessions["sched-mon"][0].ID
	in := springInput()
	in.BookingOpenDay = "sunday"

	res, err := ExecuteUpdateSemester(context.Background(), UpdateSemesterInput{ID: "sem-1", CreateSemesterInput: in}, updateDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Regenerated != 0 || res.Recomputed != 4 {
		t.Errorf("result = %+v, want 0 regenerated, 4 recomputed", res)
	}
	first := store.sessions["sched-mon"][0]
	if first.ID != before {
		t.Error("session IDs changed on a policy-only update")
	}
	if want := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC); !first.BookingOpensAt.Equal(want) {
		t.Errorf("opens = %s, want %s", first.BookingOpensAt, want)
	}
}

// TestExecuteUpdateSemester_NameOnly verifies a cosmetic change touches no sessions.
func TestExecuteUpdateSemester_NameOnly(t *testing.T) {
	store := seededStore(t)
	in := springInput()
	in.Name = "Spring term"

	res, err := ExecuteUpdateSemester(context.Background(), UpdateSemesterInput{ID: "sem-1", CreateSemesterInput: in}, updateDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Regenerated != 0 || res.Recomputed != 0 {
		t.Errorf("result = %+v, want nothing touched", res)
	}
	if store.semesters["sem-1"].Name != "Spring term" {
		t.Error("name not saved")
	}
}

// TestExecuteUpdateSemester_Errors covers unknown IDs and invalid input.
func TestExecuteUpdateSemester_Errors(t *testing.T) {
	store := seededStore(t)
	_, err := ExecuteUpdateSemester(context.Background(), UpdateSemesterInput{ID: "nope", CreateSemesterInput: springInput()}, updateDeps(store))
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("unknown ID error = %v, want sql.ErrNoRows", err)
	}

	in := springInput()
	in.Name = ""
	_, err = ExecuteUpdateSemester(context.Background(), UpdateSemesterInput{ID: "sem-1", CreateSemesterInput: in}, updateDeps(store))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("invalid input error = %v, want ErrInvalidInput", err)
	}
	if store.semesters["sem-1"].Name != "Spring 2025" {
		t.Error("invalid update was saved")
	}
}

// TestExecuteUpdateSemester_RestoresOnRegenerateFailure verifies a failed
// regeneration puts the previous window and its sessions back.
func TestExecuteUpdateSemester_RestoresOnRegenerateFailure(t *testing.T) {
	store := seededStore(t)
	wed := mondaySchedule()
	wed.ID, wed.Day = "sched-wed", weekday.Wednesday
	store.schedules[wed.ID] = wed
	if _, err := ExecuteGenerateSessions(context.Background(), GenerateSessionsInput{ScheduleID: wed.ID}, generateDeps(store)); err != nil {
		t.Fatalf("generate: %v", err)
	}
	diskFull := errors.New("disk full")
	store.replaceErr = map[string]error{wed.ID: diskFull}

	in := springInput()
	in.BreakStart, in.BreakEnd = time.Time{}, time.Time{}
	_, err := ExecuteUpdateSemester(context.Background(), UpdateSemesterInput{ID: "sem-1", CreateSemesterInput: in}, updateDeps(store))
	if !errors.Is(err, diskFull) {
		t.Fatalf("error = %v, want disk full", err)
	}
	if !store.semesters["sem-1"].BreakStart.Equal(utcDate(2025, 3, 15)) {
		t.Error("previous break not restored")
	}
	if got := len(store.sessions["sched-mon"]); got != 4 {
		t.Errorf("monday sessions = %d, want 4 (break excluded again)", got)
	}
	if got := len(store.sessions["sched-wed"]); got != 4 {
		t.Errorf("wednesday sessions = %d, want 4 (untouched)", got)
	}
}

// TestExecuteUpdateSemester_RestoresOnRecomputeFailure verifies a failed
// recompute leaves the previous booking policy stored.
func TestExecuteUpdateSemester_RestoresOnRecomputeFailure(t *testing.T) {
	store := seededStore(t)
	store.updateErr = errors.New("locked")

	in := springInput()
	in.BookingOpenDay = "sunday"
	if _, err := ExecuteUpdateSemester(context.Background(), UpdateSemesterInput{ID: "sem-1", CreateSemesterInput: in}, updateDeps(store)); err == nil {
		t.Fatal("expected error")
	}
	if got := store.semesters["sem-1"].BookingOpenDay; got != weekday.Friday {
		t.Errorf("BookingOpenDay = %s, want friday", got)
	}
}
