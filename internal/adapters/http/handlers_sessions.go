package web

import (
	"net/http"
	"time"

	"shuttle/internal/application/listutil"
	"shuttle/internal/application/projections"
)

// handleSessions handles GET /api/sessions?semester_id=&page=&per_page=&at=
// Booking status is evaluated at the optional RFC3339 instant at, else now.
func handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	semesterID, ok := requireParam(w, r, "semester_id")
	if !ok {
		return
	}
	now := timeNow().UTC()
	if at := r.URL.Query().Get("at"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			http.Error(w, "at must be RFC3339", http.StatusBadRequest)
			return
		}
		now = t
	}

	res, err := projections.QueryListSessions(r.Context(), projections.ListSessionsQuery{
		SemesterID: semesterID,
		Page:       listutil.ParsePageParams(r.URL.Query()),
		Now:        now,
	}, projections.ListSessionsDeps{
		SemesterStore: stores.SemesterStore,
		SessionStore:  stores.SessionStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handlePreviewSessions handles GET /api/sessions/preview?semester_id=&day=
func handlePreviewSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	semesterID, ok := requireParam(w, r, "semester_id")
	if !ok {
		return
	}
	res, err := projections.QueryPreviewSessionDates(r.Context(), projections.PreviewSessionDatesQuery{
		SemesterID: semesterID,
		Day:        r.URL.Query().Get("day"),
	}, projections.PreviewSessionDatesDeps{
		SemesterStore: stores.SemesterStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
