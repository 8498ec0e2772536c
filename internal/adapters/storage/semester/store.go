package semester

import (
	"context"

	domain "shuttle/internal/domain/semester"
)

// Store persists Semester state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Semester, error)
	Save(ctx context.Context, value domain.Semester) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Semester, error)
}
