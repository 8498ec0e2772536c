package gamesession

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shuttle/internal/adapters/storage"
	domain "shuttle/internal/domain/gamesession"
)

const selectColumns = "SELECT id, semester_id, schedule_id, start_time, end_time, booking_opens_at FROM game_session"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new GameSessionStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.GameSession, error) {
	var entity domain.GameSession
	var startStr, endStr, opensStr string
	if err := row.Scan(&entity.ID, &entity.SemesterID, &entity.ScheduleID, &startStr, &endStr, &opensStr); err != nil {
		return domain.GameSession{}, err
	}
	var err error
	if entity.StartTime, err = time.Parse(time.RFC3339, startStr); err != nil {
		return domain.GameSession{}, fmt.Errorf("failed to parse start_time: %w", err)
	}
	if entity.EndTime, err = time.Parse(time.RFC3339, endStr); err != nil {
		return domain.GameSession{}, fmt.Errorf("failed to parse end_time: %w", err)
	}
	if entity.BookingOpensAt, err = time.Parse(time.RFC3339, opensStr); err != nil {
		return domain.GameSession{}, fmt.Errorf("failed to parse booking_opens_at: %w", err)
	}
	return entity, nil
}

func collect(rows *sql.Rows) ([]domain.GameSession, error) {
	defer rows.Close()
	var results []domain.GameSession
	for rows.Next() {
		entity, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// instant formats t as RFC3339 UTC so lexical order matches time order.
func instant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// GetByID retrieves a GameSession by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.GameSession, error) {
	entity, err := scanSession(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return domain.GameSession{}, fmt.Errorf("game session not found: %w", err)
	}
	return entity, err
}

// ListBySemesterID retrieves one page of a semester's sessions by start time.
// PRE: limit > 0, offset >= 0
// POST: Returns at most limit entities
func (s *SQLiteStore) ListBySemesterID(ctx context.Context, semesterID string, limit, offset int) ([]domain.GameSession, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE semester_id = ? ORDER BY start_time, id LIMIT ? OFFSET ?", semesterID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// CountBySemesterID returns the number of sessions in a semester.
func (s *SQLiteStore) CountBySemesterID(ctx context.Context, semesterID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM game_session WHERE semester_id = ?", semesterID).Scan(&n)
	return n, err
}

// ListByScheduleID retrieves every session of a schedule by start time.
func (s *SQLiteStore) ListByScheduleID(ctx context.Context, scheduleID string) ([]domain.GameSession, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE schedule_id = ? ORDER BY start_time", scheduleID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ReplaceForSchedule atomically swaps a schedule's sessions for the given set.
// PRE: every session belongs to scheduleID and has been validated
// POST: Exactly the given sessions exist for scheduleID, or nothing changed on error
func (s *SQLiteStore) ReplaceForSchedule(ctx context.Context, scheduleID string, sessions []domain.GameSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM game_session WHERE schedule_id = ?", scheduleID); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO game_session (id, semester_id, schedule_id, start_time, end_time, booking_opens_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, gs := range sessions {
		if gs.ScheduleID != scheduleID {
			return fmt.Errorf("session %s belongs to schedule %s, not %s", gs.ID, gs.ScheduleID, scheduleID)
		}
		if _, err := stmt.ExecContext(ctx, gs.ID, gs.SemesterID, gs.ScheduleID, instant(gs.StartTime), instant(gs.EndTime), instant(gs.BookingOpensAt)); err != nil {
			return fmt.Errorf("failed to insert session %s: %w", gs.ID, err)
		}
	}
	return tx.Commit()
}

// UpdateBookingOpens rewrites booking_opens_at for each given session.
// PRE: sessions exist
// POST: All updates applied in one transaction
func (s *SQLiteStore) UpdateBookingOpens(ctx context.Context, sessions []domain.GameSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, gs := range sessions {
		if _, err := tx.ExecContext(ctx, "UPDATE game_session SET booking_opens_at = ? WHERE id = ?", instant(gs.BookingOpensAt), gs.ID); err != nil {
			return fmt.Errorf("failed to update session %s: %w", gs.ID, err)
		}
	}
	return tx.Commit()
}
