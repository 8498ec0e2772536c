package web

import (
	"net/http"
	"time"

	"shuttle/internal/application/orchestrators"
)

type semesterInput struct {
	Name            string `json:"name"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	BreakStart      string `json:"break_start"`
	BreakEnd        string `json:"break_end"`
	BookingOpenDay  string `json:"booking_open_day"`
	BookingOpenTime string `json:"booking_open_time"`
}

// toCreateInput parses the dates; empty break dates mean no break.
func (in semesterInput) toCreateInput() (orchestrators.CreateSemesterInput, string) {
	out := orchestrators.CreateSemesterInput{
		Name:            in.Name,
		BookingOpenDay:  in.BookingOpenDay,
		BookingOpenTime: in.BookingOpenTime,
	}
	fields := []struct {
		name     string
		value    string
		dst      *time.Time
		optional bool
	}{
		{"start_date", in.StartDate, &out.StartDate, false},
		{"end_date", in.EndDate, &out.EndDate, false},
		{"break_start", in.BreakStart, &out.BreakStart, true},
		{"break_end", in.BreakEnd, &out.BreakEnd, true},
	}
	for _, f := range fields {
		if f.value == "" && f.optional {
			continue
		}
		d, err := time.Parse(dateLayout, f.value)
		if err != nil {
			return out, f.name + " must be YYYY-MM-DD"
		}
		*f.dst = d
	}
	return out, ""
}

// handleSemesters handles GET/POST/PUT/DELETE for /api/semesters
func handleSemesters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.SemesterStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]semesterView, 0, len(list))
		for _, s := range list {
			views = append(views, toSemesterView(s))
		}
		writeJSON(w, http.StatusOK, views)

	case "POST":
		var input semesterInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		create, msg := input.toCreateInput()
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		s, err := orchestrators.ExecuteCreateSemester(ctx, create, orchestrators.CreateSemesterDeps{
			SemesterStore: stores.SemesterStore,
			GenerateID:    generateID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSemesterView(s))

	case "PUT":
		id, ok := requireParam(w, r, "id")
		if !ok {
			return
		}
		var input semesterInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		update, msg := input.toCreateInput()
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		res, err := orchestrators.ExecuteUpdateSemester(ctx, orchestrators.UpdateSemesterInput{
			ID:                  id,
			CreateSemesterInput: update,
		}, orchestrators.UpdateSemesterDeps{
			SemesterStore: stores.SemesterStore,
			ScheduleStore: stores.ScheduleStore,
			SessionStore:  stores.SessionStore,
			GenerateID:    generateID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"semester":    toSemesterView(res.Semester),
			"regenerated": res.Regenerated,
			"recomputed":  res.Recomputed,
		})

	case "DELETE":
		id, ok := requireParam(w, r, "id")
		if !ok {
			return
		}
		if err := stores.SemesterStore.Delete(ctx, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}
