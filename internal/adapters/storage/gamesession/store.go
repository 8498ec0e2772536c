package gamesession

import (
	"context"

	domain "shuttle/internal/domain/gamesession"
)

// Store persists GameSession state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.GameSession, error)
	ListBySemesterID(ctx context.Context, semesterID string, limit, offset int) ([]domain.GameSession, error)
	CountBySemesterID(ctx context.Context, semesterID string) (int, error)
	ListByScheduleID(ctx context.Context, scheduleID string) ([]domain.GameSession, error)
	ReplaceForSchedule(ctx context.Context, scheduleID string, sessions []domain.GameSession) error
	UpdateBookingOpens(ctx context.Context, sessions []domain.GameSession) error
}
