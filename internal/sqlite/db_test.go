package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertWorkspace(t *testing.T, db *DB, id, userID string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO workspaces (id, user_id, name, tick, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, userID, "Workspace "+id, 0, time.Now().UTC())
	require.NoError(t, err)
}

func insertTask(t *testing.T, db *DB, id, workspaceID, userID string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO tasks (id, user_id, workspace_id, title, status, tick, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, workspaceID, "Task "+id, "pending", 1, now, now)
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"workspaces",
		"tasks",
		"tasks_fts",
		"time_blocks",
		"activity_log",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	// Re-running against an existing schema is a no-op.
	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestTimeBlocksTable verifies the time_blocks constraints
func TestTimeBlocksTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertWorkspace(t, db, "ws1", "user1")

	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	insert := func(id, workspaceID string, end time.Time, day int) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO time_blocks (id, user_id, workspace_id, title, color, start_time, end_time, day_of_week, tick)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, "user1", workspaceID, "Focus", "#3366cc", start, end, day, 1)
		return err
	}

	require.NoError(t, insert("b1", "ws1", start.Add(time.Hour), 2))
	require.Error(t, insert("b2", "missing", start.Add(time.Hour), 2), "should fail with invalid workspace_id")
	require.Error(t, insert("b3", "ws1", start, 2), "should fail with empty range")
	require.Error(t, insert("b4", "ws1", start.Add(time.Hour), 7), "should fail with invalid day_of_week")
}
