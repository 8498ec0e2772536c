package semester

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shuttle/internal/adapters/storage"
	domain "shuttle/internal/domain/semester"
	"shuttle/internal/domain/weekday"
)

const dateFormat = "2006-01-02"

const selectColumns = "SELECT id, name, start_date, end_date, break_start, break_end, booking_open_day, booking_open_time FROM semester"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SemesterStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSemester(row rowScanner) (domain.Semester, error) {
	var entity domain.Semester
	var startStr, endStr, day string
	var breakStart, breakEnd sql.NullString
	if err := row.Scan(&entity.ID, &entity.Name, &startStr, &endStr, &breakStart, &breakEnd, &day, &entity.BookingOpenTime); err != nil {
		return domain.Semester{}, err
	}
	entity.BookingOpenDay = weekday.Weekday(day)

	var err error
	if entity.StartDate, err = time.Parse(dateFormat, startStr); err != nil {
		return domain.Semester{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	if entity.EndDate, err = time.Parse(dateFormat, endStr); err != nil {
		return domain.Semester{}, fmt.Errorf("failed to parse end_date: %w", err)
	}
	if breakStart.Valid {
		if entity.BreakStart, err = time.Parse(dateFormat, breakStart.String); err != nil {
			return domain.Semester{}, fmt.Errorf("failed to parse break_start: %w", err)
		}
	}
	if breakEnd.Valid {
		if entity.BreakEnd, err = time.Parse(dateFormat, breakEnd.String); err != nil {
			return domain.Semester{}, fmt.Errorf("failed to parse break_end: %w", err)
		}
	}
	return entity, nil
}

// nullableDate formats t as a date, or NULL when t is zero.
func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(dateFormat)
}

// GetByID retrieves a Semester by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Semester, error) {
	entity, err := scanSemester(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return domain.Semester{}, fmt.Errorf("semester not found: %w", err)
	}
	return entity, err
}

// Save persists a Semester to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Semester) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO semester (id, name, start_date, end_date, break_start, break_end, booking_open_day, booking_open_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, start_date=excluded.start_date, end_date=excluded.end_date,
		break_start=excluded.break_start, break_end=excluded.break_end,
		booking_open_day=excluded.booking_open_day, booking_open_time=excluded.booking_open_time`,
		entity.ID, entity.Name,
		entity.StartDate.UTC().Format(dateFormat), entity.EndDate.UTC().Format(dateFormat),
		nullableDate(entity.BreakStart), nullableDate(entity.BreakEnd),
		string(entity.BookingOpenDay), entity.BookingOpenTime,
	)
	return err
}

// Delete removes a Semester; its schedules and sessions cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed, or an error wrapping sql.ErrNoRows
// is returned when no such entity exists
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM semester WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("semester not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves all Semesters ordered by start date.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Semester, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY start_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Semester
	for rows.Next() {
		entity, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
