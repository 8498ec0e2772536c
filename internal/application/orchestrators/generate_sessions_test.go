package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"shuttle/internal/domain/weekday"
)

func generateDeps(store *fakeClubStore) GenerateSessionsDeps {
	return GenerateSessionsDeps{
		SemesterStore: fakeSemesters{store},
		ScheduleStore: fakeSchedules{store},
		SessionStore:  fakeSessions{store},
		GenerateID:    sequentialIDs(),
	}
}

// TestExecuteGenerateSessions_SkipsBreak verifies dates, times and booking-open instants.
func TestExecuteGenerateSessions_SkipsBreak(t *testing.T) {
	store := newFakeClubStore()
	store.semesters["sem-1"] = springSemester()
	store.schedules["sched-mon"] = mondaySchedule()

	sessions, err := ExecuteGenerateSessions(context.Background(), GenerateSessionsInput{ScheduleID: "sched-mon"}, generateDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mondays 3, 10, 24, 31 March; 17 March is in the break. Booking
	// opens the Friday before at 09:00.
	want := []struct{ start, opens time.Time }{
		{time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC), time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 24, 18, 0, 0, 0, time.UTC), time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC), time.Date(2025, 3, 28, 9, 0, 0, 0, time.UTC)},
	}
	if len(sessions) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(sessions), len(want))
	}
	for i, gs := range sessions {
		if !gs.StartTime.Equal(want[i].start) {
			t.Errorf("session %d start = %s, want %s", i, gs.StartTime, want[i].start)
		}
		if !gs.EndTime.Equal(want[i].start.Add(2 * time.Hour)) {
			t.Errorf("session %d end = %s", i, gs.EndTime)
		}
		if !gs.BookingOpensAt.Equal(want[i].opens) {
			t.Errorf("session %d opens = %s, want %s", i, gs.BookingOpensAt, want[i].opens)
		}
		if gs.SemesterID != "sem-1" || gs.ScheduleID != "sched-mon" || gs.ID == "" {
			t.Errorf("session %d identity = %+v", i, gs)
		}
	}
	if got := len(store.sessions["sched-mon"]); got != 4 {
		t.Errorf("stored %d sessions, want 4", got)
	}
}

// TestExecuteGenerateSessions_Overnight verifies sessions past midnight end the next day.
func TestExecuteGenerateSessions_Overnight(t *testing.T) {
	store := newFakeClubStore()
	store.semesters["sem-1"] = springSemester()
	late := mondaySchedule()
	late.Day = weekday.Saturday
	late.StartTime, late.EndTime = "22:00", "01:00"
	store.schedules[late.ID] = late

	sessions, err := ExecuteGenerateSessions(context.Background(), GenerateSessionsInput{ScheduleID: late.ID}, generateDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) == 0 {
		t.Fatal("no sessions generated")
	}
	first := sessions[0]
	if !first.StartTime.Equal(time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)) {
		t.Errorf("first start = %s", first.StartTime)
	}
	if !first.EndTime.Equal(time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC)) {
		t.Errorf("first end = %s", first.EndTime)
	}
}

// TestExecuteGenerateSessions_Replaces verifies a second run replaces the first.
func TestExecuteGenerateSessions_Replaces(t *testing.T) {
	store := newFakeClubStore()
	store.semesters["sem-1"] = springSemester()
	store.schedules["sched-mon"] = mondaySchedule()
	deps := generateDeps(store)
	ctx := context.Background()

	if _, err := ExecuteGenerateSessions(ctx, GenerateSessionsInput{ScheduleID: "sched-mon"}, deps); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := ExecuteGenerateSessions(ctx, GenerateSessionsInput{ScheduleID: "sched-mon"}, deps)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	stored := store.sessions["sched-mon"]
	if len(stored) != 4 || stored[0].ID != second[0].ID {
		t.Errorf("stored sessions not replaced by second run")
	}
}

// TestExecuteGenerateSessions_Errors covers missing records and mismatched semester.
func TestExecuteGenerateSessions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  GenerateSessionsInput
		seed   func(*fakeClubStore)
		wantIs error
	}{
		{
			name:   "schedule missing",
			input:  GenerateSessionsInput{ScheduleID: "nope"},
			seed:   func(*fakeClubStore) {},
			wantIs: sql.ErrNoRows,
		},
		{
			name:  "semester missing",
			input: GenerateSessionsInput{ScheduleID: "sched-mon"},
			seed: func(s *fakeClubStore) {
				s.schedules["sched-mon"] = mondaySchedule()
			},
			wantIs: sql.ErrNoRows,
		},
		{
			name:  "wrong semester",
			input: GenerateSessionsInput{SemesterID: "sem-2", ScheduleID: "sched-mon"},
			seed: func(s *fakeClubStore) {
				s.semesters["sem-1"] = springSemester()
				s.schedules["sched-mon"] = mondaySchedule()
			},
			wantIs: ErrScheduleNotInSemester,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeClubStore()
			tt.seed(store)
			_, err := ExecuteGenerateSessions(context.Background(), tt.input, generateDeps(store))
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

// TestExecuteGenerateSessions_EmptySemester verifies a semester with no matching day stores nothing.
func TestExecuteGenerateSessions_EmptySemester(t *testing.T) {
	store := newFakeClubStore()
	short := springSemester()
	short.StartDate, short.EndDate = utcDate(2025, 3, 4), utcDate(2025, 3, 8) // Tue..Sat
	short.BreakStart, short.BreakEnd = time.Time{}, time.Time{}
	store.semesters["sem-1"] = short
	store.schedules["sched-mon"] = mondaySchedule()
	store.sessions["sched-mon"] = nil

	sessions, err := ExecuteGenerateSessions(context.Background(), GenerateSessionsInput{ScheduleID: "sched-mon"}, generateDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions, want 0", len(sessions))
	}
}
