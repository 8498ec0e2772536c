package projections

import (
	"context"
	"fmt"
	"time"

	"shuttle/internal/application/listutil"
	"shuttle/internal/domain/gamesession"
)

// ListSessionsSessionStore pages through a semester's sessions.
type ListSessionsSessionStore interface {
	ListBySemesterID(ctx context.Context, semesterID string, limit, offset int) ([]gamesession.GameSession, error)
	CountBySemesterID(ctx context.Context, semesterID string) (int, error)
}

// ListSessionsDeps holds dependencies for the projection.
type ListSessionsDeps struct {
	SemesterStore PreviewSemesterStore
	SessionStore  ListSessionsSessionStore
}

// ListSessionsQuery selects a page of a semester's sessions. Now is the
// instant booking status is evaluated against.
type ListSessionsQuery struct {
	SemesterID string
	Page       listutil.PageParams
	Now        time.Time
}

// SessionView is a stored session with its booking status at Now.
type SessionView struct {
	ID             string    `json:"id"`
	ScheduleID     string    `json:"schedule_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	BookingOpensAt time.Time `json:"booking_opens_at"`
	BookingOpen    bool      `json:"booking_open"`
	Started        bool      `json:"started"`
}

// ListSessionsResult is one page of sessions.
type ListSessionsResult struct {
	Sessions []SessionView     `json:"sessions"`
	Page     listutil.PageInfo `json:"page"`
}

// QueryListSessions returns a page of a semester's sessions ordered by start.
// PRE: SemesterID names a stored semester
// POST: Flags reflect query.Now; Page is clamped to existing pages
func QueryListSessions(ctx context.Context, query ListSessionsQuery, deps ListSessionsDeps) (ListSessionsResult, error) {
	if _, err := deps.SemesterStore.GetByID(ctx, query.SemesterID); err != nil {
		return ListSessionsResult{}, fmt.Errorf("load semester: %w", err)
	}
	total, err := deps.SessionStore.CountBySemesterID(ctx, query.SemesterID)
	if err != nil {
		return ListSessionsResult{}, fmt.Errorf("count sessions: %w", err)
	}
	page := listutil.NewPageInfo(query.Page, total)
	sessions, err := deps.SessionStore.ListBySemesterID(ctx, query.SemesterID, page.PerPage, page.Offset())
	if err != nil {
		return ListSessionsResult{}, fmt.Errorf("list sessions: %w", err)
	}

	views := make([]SessionView, 0, len(sessions))
	for _, gs := range sessions {
		views = append(views, SessionView{
			ID:             gs.ID,
			ScheduleID:     gs.ScheduleID,
			StartTime:      gs.StartTime,
			EndTime:        gs.EndTime,
			BookingOpensAt: gs.BookingOpensAt,
			BookingOpen:    gs.IsBookingOpen(query.Now),
			Started:        gs.HasStarted(query.Now),
		})
	}
	return ListSessionsResult{Sessions: views, Page: page}, nil
}
