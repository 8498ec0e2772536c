package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"shuttle/internal/domain/gameschedule"
	"shuttle/internal/domain/gamesession"
	"shuttle/internal/domain/weekday"
)

// ScheduleStoreForCreate is the store capability needed to create a schedule.
type ScheduleStoreForCreate interface {
	ScheduleGetter
	Save(ctx context.Context, g gameschedule.GameSchedule) error
	Delete(ctx context.Context, id string) error
}

// CreateGameScheduleInput carries input for the create game schedule orchestrator.
type CreateGameScheduleInput struct {
	SemesterID string
	Title      string
	Day        string
	StartTime  string
	EndTime    string
}

// CreateGameScheduleDeps holds dependencies for CreateGameSchedule.
type CreateGameScheduleDeps struct {
	SemesterStore SemesterGetter
	ScheduleStore ScheduleStoreForCreate
	SessionStore  SessionReplacer
	GenerateID    func() string
}

// CreateGameScheduleResult is the stored schedule and its generated sessions.
type CreateGameScheduleResult struct {
	Schedule gameschedule.GameSchedule
	Sessions []gamesession.GameSession
}

// ExecuteCreateGameSchedule stores a weekly schedule in an existing semester
// and generates its sessions.
// PRE: SemesterID names a stored semester
// POST: Schedule persisted; its sessions replaced with a fresh set
// POST: If generation fails the schedule is deleted again
func ExecuteCreateGameSchedule(ctx context.Context, input CreateGameScheduleInput, deps CreateGameScheduleDeps) (CreateGameScheduleResult, error) {
	day, err := weekday.Parse(input.Day)
	if err != nil {
		return CreateGameScheduleResult{}, invalid(gameschedule.ErrInvalidDay)
	}
	g := gameschedule.GameSchedule{
		ID:         deps.GenerateID(),
		SemesterID: input.SemesterID,
		Title:      input.Title,
		Day:        day,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
	}
	if err := g.Validate(); err != nil {
		return CreateGameScheduleResult{}, invalid(err)
	}
	if _, err := deps.SemesterStore.GetByID(ctx, g.SemesterID); err != nil {
		return CreateGameScheduleResult{}, fmt.Errorf("load semester: %w", err)
	}
	if err := deps.ScheduleStore.Save(ctx, g); err != nil {
		return CreateGameScheduleResult{}, fmt.Errorf("save schedule: %w", err)
	}

	sessions, err := ExecuteGenerateSessions(ctx, GenerateSessionsInput{
		SemesterID: g.SemesterID,
		ScheduleID: g.ID,
	}, GenerateSessionsDeps{
		SemesterStore: deps.SemesterStore,
		ScheduleStore: deps.ScheduleStore,
		SessionStore:  deps.SessionStore,
		GenerateID:    deps.GenerateID,
	})
	if err != nil {
		if delErr := deps.ScheduleStore.Delete(ctx, g.ID); delErr != nil {
			slog.Error("schedule_rollback_failed", "schedule_id", g.ID, "error", delErr.Error())
		}
		return CreateGameScheduleResult{}, err
	}
	return CreateGameScheduleResult{Schedule: g, Sessions: sessions}, nil
}
