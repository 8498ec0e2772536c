package storage

import (
	"context"
	"testing"
	"time"

	"shuttle/internal/adapters/http/perf"
)

func openTimedTestDB(t *testing.T, collector *perf.Collector) *TimedDB {
	t.Helper()
	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE test (id TEXT PRIMARY KEY, val TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return NewTimedDB(db, collector, 0)
}

// TestTimedDB_RecordsEachCall verifies every wrapped call reaches the collector.
func TestTimedDB_RecordsEachCall(t *testing.T) {
	collector := perf.NewCollector(100)
	tdb := openTimedTestDB(t, collector)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}

	rows, err := tdb.QueryContext(ctx, "SELECT id, val FROM test")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	count := 0
	for rows.Next() {
		count++
	}
	rows.Close()
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	var val string
	if err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "1").Scan(&val); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	if val != "hello" {
		t.Errorf("val = %q, want hello", val)
	}

	tx, err := tdb.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	tx.Rollback()

	if got := collector.TotalRecorded(); got != 4 {
		t.Errorf("TotalRecorded = %d, want 4", got)
	}
}

// TestTimedDB_NilCollector verifies the wrapper works without a collector.
func TestTimedDB_NilCollector(t *testing.T) {
	tdb := openTimedTestDB(t, nil)
	if _, err := tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES (?, ?)", "1", "x"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
}

// TestNewTimedDB_DefaultThreshold verifies a zero threshold falls back to the default.
func TestNewTimedDB_DefaultThreshold(t *testing.T) {
	tdb := NewTimedDB(openTestDB(t), nil, 0)
	if tdb.slow != DefaultSlowQuery {
		t.Errorf("slow = %v, want %v", tdb.slow, DefaultSlowQuery)
	}
	tdb = NewTimedDB(openTestDB(t), nil, 5*time.Millisecond)
	if tdb.slow != 5*time.Millisecond {
		t.Errorf("slow = %v, want 5ms", tdb.slow)
	}
}

// TestFirstLine tests statement trimming for grouping.
func TestFirstLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT id\nFROM x", "SELECT id"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	long := "SELECT id, semester_id, schedule_id, start_time, end_time FROM game_session"
	if got := firstLine(long); len(got) != 48 {
		t.Errorf("firstLine(long) length = %d, want 48", len(got))
	}
}
