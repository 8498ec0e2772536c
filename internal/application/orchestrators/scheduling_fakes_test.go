package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"shuttle/internal/domain/gameschedule"
	"shuttle/internal/domain/gamesession"
	"shuttle/internal/domain/semester"
	"shuttle/internal/domain/weekday"
)

// fakeClubStore is an in-memory semester, schedule and session store.
type fakeClubStore struct {
	semesters  map[string]semester.Semester
	schedules  map[string]gameschedule.GameSchedule
	sessions   map[string][]gamesession.GameSession // by schedule ID
	saveErr    error
	updateErr  error
	replaceErr map[string]error // by schedule ID
	updates    int
}

func newFakeClubStore() *fakeClubStore {
	return &fakeClubStore{
		semesters: make(map[string]semester.Semester),
		schedules: make(map[string]gameschedule.GameSchedule),
		sessions:  make(map[string][]gamesession.GameSession),
	}
}

type fakeSemesters struct{ *fakeClubStore }
type fakeSchedules struct{ *fakeClubStore }
type fakeSessions struct{ *fakeClubStore }

func (f fakeSemesters) GetByID(_ context.Context, id string) (semester.Semester, error) {
	s, ok := f.semesters[id]
	if !ok {
		return semester.Semester{}, fmt.Errorf("semester not found: %w", sql.ErrNoRows)
	}
	return s, nil
}

func (f fakeSemesters) Save(_ context.Context, s semester.Semester) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.semesters[s.ID] = s
	return nil
}

func (f fakeSchedules) GetByID(_ context.Context, id string) (gameschedule.GameSchedule, error) {
	g, ok := f.schedules[id]
	if !ok {
		return gameschedule.GameSchedule{}, fmt.Errorf("game schedule not found: %w", sql.ErrNoRows)
	}
	return g, nil
}

func (f fakeSchedules) Save(_ context.Context, g gameschedule.GameSchedule) error {
	f.schedules[g.ID] = g
	return nil
}

func (f fakeSchedules) Delete(_ context.Context, id string) error {
	delete(f.schedules, id)
	delete(f.sessions, id)
	return nil
}

func (f fakeSchedules) ListBySemesterID(_ context.Context, semesterID string) ([]gameschedule.GameSchedule, error) {
	var out []gameschedule.GameSchedule
	for _, g := range f.schedules {
		if g.SemesterID == semesterID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeSessions) ReplaceForSchedule(_ context.Context, scheduleID string, sessions []gamesession.GameSession) error {
	if err := f.replaceErr[scheduleID]; err != nil {
		return err
	}
	f.sessions[scheduleID] = append([]gamesession.GameSession(nil), sessions...)
	return nil
}

func (f fakeSessions) ListByScheduleID(_ context.Context, scheduleID string) ([]gamesession.GameSession, error) {
	return append([]gamesession.GameSession(nil), f.sessions[scheduleID]...), nil
}

func (f fakeSessions) UpdateBookingOpens(_ context.Context, sessions []gamesession.GameSession) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.fakeClubStore.updates += len(sessions)
	for _, u := range sessions {
		list := f.sessions[u.ScheduleID]
		for i := range list {
			if list[i].ID == u.ID {
				list[i].BookingOpensAt = u.BookingOpensAt
			}
		}
	}
	return nil
}

// sequentialIDs returns a generator producing id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// springSemester runs 2025-03-01 (Saturday) to 2025-04-05 with a break
// over 2025-03-15..2025-03-21; booking opens Friday 09:00.
func springSemester() semester.Semester {
	return semester.Semester{
		ID:              "sem-1",
		Name:            "Spring 2025",
		StartDate:       utcDate(2025, 3, 1),
		EndDate:         utcDate(2025, 4, 5),
		BreakStart:      utcDate(2025, 3, 15),
		BreakEnd:        utcDate(2025, 3, 21),
		BookingOpenDay:  weekday.Friday,
		BookingOpenTime: "09:00",
	}
}

func mondaySchedule() gameschedule.GameSchedule {
	return gameschedule.GameSchedule{
		ID:         "sched-mon",
		SemesterID: "sem-1",
		Title:      "Monday club night",
		Day:        weekday.Monday,
		StartTime:  "18:00",
		EndTime:    "20:00",
	}
}
