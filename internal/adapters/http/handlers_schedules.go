package web

import (
	"net/http"

	"shuttle/internal/application/orchestrators"
)

// handleSchedules handles GET/POST/DELETE for /api/schedules
func handleSchedules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		semesterID, ok := requireParam(w, r, "semester_id")
		if !ok {
			return
		}
		list, err := stores.ScheduleStore.ListBySemesterID(ctx, semesterID)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]scheduleView, 0, len(list))
		for _, g := range list {
			views = append(views, toScheduleView(g))
		}
		writeJSON(w, http.StatusOK, views)

	case "POST":
		var input struct {
			SemesterID string `json:"semester_id"`
			Title      string `json:"title"`
			Day        string `json:"day"`
			StartTime  string `json:"start_time"`
			EndTime    string `json:"end_time"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		res, err := orchestrators.ExecuteCreateGameSchedule(ctx, orchestrators.CreateGameScheduleInput{
			SemesterID: input.SemesterID,
			Title:      input.Title,
			Day:        input.Day,
			StartTime:  input.StartTime,
			EndTime:    input.EndTime,
		}, orchestrators.CreateGameScheduleDeps{
			SemesterStore: stores.SemesterStore,
			ScheduleStore: stores.ScheduleStore,
			SessionStore:  stores.SessionStore,
			GenerateID:    generateID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"schedule": toScheduleView(res.Schedule),
			"sessions": toSessionViews(res.Sessions),
		})

	case "DELETE":
		id, ok := requireParam(w, r, "id")
		if !ok {
			return
		}
		if err := stores.ScheduleStore.Delete(ctx, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handleGenerateSessions handles POST /api/schedules/generate?id=
func handleGenerateSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	id, ok := requireParam(w, r, "id")
	if !ok {
		return
	}
	sessions, err := orchestrators.ExecuteGenerateSessions(r.Context(), orchestrators.GenerateSessionsInput{
		ScheduleID: id,
	}, orchestrators.GenerateSessionsDeps{
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
		"schedule_id": id,
		"sessions":    toSessionViews(sessions),
	})
}
