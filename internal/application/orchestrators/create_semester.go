package orchestrators

import (
	"context"
	"fmt"
	"time"

	"shuttle/internal/domain/semester"
	"shuttle/internal/domain/weekday"
)

// SemesterSaver is the store capability needed to create a semester.
type SemesterSaver interface {
	Save(ctx context.Context, s semester.Semester) error
}

// CreateSemesterInput carries input for the create semester orchestrator.
type CreateSemesterInput struct {
	Name            string
	StartDate       time.Time
	EndDate         time.Time
	BreakStart      time.Time
	BreakEnd        time.Time
	BookingOpenDay  string
	BookingOpenTime string
}

// CreateSemesterDeps holds dependencies for CreateSemester.
type CreateSemesterDeps struct {
	SemesterStore SemesterSaver
	GenerateID    func() string
}

// ExecuteCreateSemester validates and stores a new semester.
// PRE: none
// POST: On success the semester is persisted under a fresh ID; validation
// failures wrap ErrInvalidInput and persist nothing
func ExecuteCreateSemester(ctx context.Context, input CreateSemesterInput, deps CreateSemesterDeps) (semester.Semester, error) {
	s, err := input.toSemester(deps.GenerateID())
	if err != nil {
		return semester.Semester{}, err
	}
	if err := deps.SemesterStore.Save(ctx, s); err != nil {
		return semester.Semester{}, fmt.Errorf("save semester: %w", err)
	}
	return s, nil
}

func (in CreateSemesterInput) toSemester(id string) (semester.Semester, error) {
	day, err := weekday.Parse(in.BookingOpenDay)
	if err != nil {
		return semester.Semester{}, invalid(semester.ErrInvalidBookingDay)
	}
	s := semester.Semester{
		ID:              id,
		Name:            in.Name,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		BreakStart:      in.BreakStart,
		BreakEnd:        in.BreakEnd,
		BookingOpenDay:  day,
		BookingOpenTime: in.BookingOpenTime,
	}
	if err := s.Validate(); err != nil {
		return semester.Semester{}, invalid(err)
	}
	return s, nil
}
