package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"shuttle/internal/application/orchestrators"
	"shuttle/internal/application/projections"
	"shuttle/internal/domain/gameschedule"
	"shuttle/internal/domain/gamesession"
	"shuttle/internal/domain/scheduling"
	"shuttle/internal/domain/semester"
	"shuttle/internal/domain/weekday"
)

const dateLayout = "2006-01-02"

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeError maps orchestrator and projection errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrInvalidInput), errors.Is(err, projections.ErrInvalidQuery):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		internalError(w, err)
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode_response", "error", err.Error())
	}
}

// requireParam writes 400 and returns false when the query parameter is empty.
func requireParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		http.Error(w, name+" is required", http.StatusBadRequest)
		return "", false
	}
	return v, true
}

// --- JSON views ---

type semesterView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	BreakStart      string          `json:"break_start,omitempty"`
	BreakEnd        string          `json:"break_end,omitempty"`
	BookingOpenDay  weekday.Weekday `json:"booking_open_day"`
	BookingOpenTime string          `json:"booking_open_time"`
}

func toSemesterView(s semester.Semester) semesterView {
	v := semesterView{
		ID:              s.ID,
		Name:            s.Name,
		StartDate:       s.StartDate.Format(dateLayout),
		EndDate:         s.EndDate.Format(dateLayout),
		BookingOpenDay:  s.BookingOpenDay,
		BookingOpenTime: s.BookingOpenTime,
	}
	if s.HasBreak() {
		v.BreakStart = s.BreakStart.Format(dateLayout)
		v.BreakEnd = s.BreakEnd.Format(dateLayout)
	}
	return v
}

type scheduleView struct {
	ID         string          `json:"id"`
	SemesterID string          `json:"semester_id"`
	Title      string          `json:"title"`
	Day        weekday.Weekday `json:"day"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
}

func toScheduleView(g gameschedule.GameSchedule) scheduleView {
	return scheduleView{
		ID:         g.ID,
		SemesterID: g.SemesterID,
		Title:      g.Title,
		Day:        g.Day,
		StartTime:  g.StartTime,
		EndTime:    g.EndTime,
	}
}

type sessionView struct {
	ID             string    `json:"id"`
	ScheduleID     string    `json:"schedule_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	BookingOpensAt time.Time `json:"booking_opens_at"`
}

func toSessionViews(sessions []gamesession.GameSession) []sessionView {
	out := make([]sessionView, 0, len(sessions))
	for _, gs := range sessions {
		out = append(out, sessionView{
			ID:             gs.ID,
			ScheduleID:     gs.ScheduleID,
			StartTime:      gs.StartTime,
			EndTime:        gs.EndTime,
			BookingOpensAt: gs.BookingOpensAt,
		})
	}
	return out
}

// handleHealthz reports liveness.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// handleBookingOpen handles GET /api/booking-open?day=&time=&session_start=
// and computes a single booking-open instant without touching storage.
func handleBookingOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	day, err := weekday.Parse(q.Get("day"))
	if err != nil {
		http.Error(w, "day must be a day of the week", http.StatusBadRequest)
		return
	}
	clock, err := semester.ParseClock(q.Get("time"))
	if err != nil {
		http.Error(w, "time must be HH:MM or HH:MM:SS", http.StatusBadRequest)
		return
	}
	start, err := time.Parse(time.RFC3339, q.Get("session_start"))
	if err != nil {
		http.Error(w, "session_start must be RFC3339", http.StatusBadRequest)
		return
	}

	opens := scheduling.BookingOpensAt(scheduling.Policy{Day: day, Time: clock}, start)
	writeJSON(w, http.StatusOK, map[string]any{
		"session_start":    start.UTC(),
		"booking_opens_at": opens,
	})
}

// handlePerf handles GET /api/perf?minutes=&top= and returns the timing snapshot.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusServiceUnavailable)
		return
	}
	minutes := intParam(r, "minutes", 60)
	top := intParam(r, "top", 10)
	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, top))
}

func intParam(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
