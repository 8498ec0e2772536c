package gameschedule

import (
	"context"
	"database/sql"
	"fmt"

	"shuttle/internal/adapters/storage"
	domain "shuttle/internal/domain/gameschedule"
	"shuttle/internal/domain/weekday"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new GameScheduleStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a GameSchedule by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.GameSchedule, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, semester_id, title, day, start_time, end_time FROM game_schedule WHERE id = ?", id)
	var entity domain.GameSchedule
	var day string
	err := row.Scan(&entity.ID, &entity.SemesterID, &entity.Title, &day, &entity.StartTime, &entity.EndTime)
	if err == sql.ErrNoRows {
		return domain.GameSchedule{}, fmt.Errorf("game schedule not found: %w", err)
	}
	entity.Day = weekday.Weekday(day)
	return entity, err
}

// Save persists a GameSchedule to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.GameSchedule) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO game_schedule (id, semester_id, title, day, start_time, end_time) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET semester_id=excluded.semester_id, title=excluded.title, day=excluded.day, start_time=excluded.start_time, end_time=excluded.end_time",
		entity.ID, entity.SemesterID, entity.Title, string(entity.Day), entity.StartTime, entity.EndTime,
	)
	return err
}

// Delete removes a GameSchedule; its sessions cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed, or an error wrapping sql.ErrNoRows
// is returned when no such entity exists
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM game_schedule WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("game schedule not found: %w", sql.ErrNoRows)
	}
	return nil
}

// ListBySemesterID retrieves a semester's schedules in weekday order.
// PRE: semesterID is non-empty
// POST: Returns matching entities ordered Monday-first, then by start time
func (s *SQLiteStore) ListBySemesterID(ctx context.Context, semesterID string) ([]domain.GameSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, semester_id, title, day, start_time, end_time FROM game_schedule
		WHERE semester_id = ?
		ORDER BY CASE day
			WHEN 'monday' THEN 0 WHEN 'tuesday' THEN 1 WHEN 'wednesday' THEN 2 WHEN 'thursday' THEN 3
			WHEN 'friday' THEN 4 WHEN 'saturday' THEN 5 ELSE 6 END, start_time`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.GameSchedule
	for rows.Next() {
		var entity domain.GameSchedule
		var day string
		if err := rows.Scan(&entity.ID, &entity.SemesterID, &entity.Title, &day, &entity.StartTime, &entity.EndTime); err != nil {
			return nil, err
		}
		entity.Day = weekday.Weekday(day)
		results = append(results, entity)
	}
	return results, rows.Err()
}
