package gameschedule

import (
	"context"

	domain "shuttle/internal/domain/gameschedule"
)

// Store persists GameSchedule state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.GameSchedule, error)
	Save(ctx context.Context, value domain.GameSchedule) error
	Delete(ctx context.Context, id string) error
	ListBySemesterID(ctx context.Context, semesterID string) ([]domain.GameSchedule, error)
}
