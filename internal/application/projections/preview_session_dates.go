package projections

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shuttle/internal/domain/scheduling"
	"shuttle/internal/domain/semester"
	"shuttle/internal/domain/weekday"
)

// ErrInvalidQuery marks a malformed query parameter.
var ErrInvalidQuery = errors.New("invalid query")

// PreviewSemesterStore loads a semester by ID.
type PreviewSemesterStore interface {
	GetByID(ctx context.Context, id string) (semester.Semester, error)
}

// PreviewSessionDatesDeps holds dependencies for the projection.
type PreviewSessionDatesDeps struct {
	SemesterStore PreviewSemesterStore
}

// PreviewSessionDatesQuery names the semester and weekday to preview.
type PreviewSessionDatesQuery struct {
	SemesterID string
	Day        string
}

// PreviewSessionDatesResult lists the session dates a schedule on Day would
// get, plus the dates on Day that the break removes.
type PreviewSessionDatesResult struct {
	SemesterID string          `json:"semester_id"`
	Day        weekday.Weekday `json:"day"`
	Dates      []time.Time     `json:"dates"`
	Skipped    []time.Time     `json:"skipped"`
}

// QueryPreviewSessionDates enumerates session dates without persisting anything.
// PRE: SemesterID names a stored semester
// POST: Dates ascending; Skipped holds only dates inside the break
func QueryPreviewSessionDates(ctx context.Context, query PreviewSessionDatesQuery, deps PreviewSessionDatesDeps) (PreviewSessionDatesResult, error) {
	day, err := weekday.Parse(query.Day)
	if err != nil {
		return PreviewSessionDatesResult{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	sem, err := deps.SemesterStore.GetByID(ctx, query.SemesterID)
	if err != nil {
		return PreviewSessionDatesResult{}, fmt.Errorf("load semester: %w", err)
	}

	window := sem.Window()
	result := PreviewSessionDatesResult{
		SemesterID: sem.ID,
		Day:        day,
		Dates:      orEmpty(scheduling.SessionDates(day, window)),
		Skipped:    []time.Time{},
	}
	if sem.HasBreak() {
		full := window
		full.BreakStart, full.BreakEnd = time.Time{}, time.Time{}
		for _, d := range scheduling.SessionDates(day, full) {
			if window.InBreak(d) {
				result.Skipped = append(result.Skipped, d)
			}
		}
	}
	return result, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
