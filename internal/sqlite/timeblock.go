package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/repository"
)

// TimeBlockRepository implements timeblock.Repository for SQLite. Times are
// stored in UTC so that range comparisons order correctly.
type TimeBlockRepository struct {
	db *DB
}

// NewTimeBlockRepository creates a new TimeBlockRepository
func NewTimeBlockRepository(db *DB) *TimeBlockRepository {
	return &TimeBlockRepository{db: db}
}

const timeBlockColumns = `
	id, user_id, workspace_id, title, color, start_time, end_time,
	day_of_week, task_id, tick, created_at, updated_at
`

// Create inserts a new block
func (r *TimeBlockRepository) Create(ctx context.Context, userID string, block *timeblock.TimeBlock) error {
	query := `INSERT INTO time_blocks (` + timeBlockColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		block.ID,
		userID,
		block.WorkspaceID,
		block.Title,
		block.Color,
		block.StartTime.UTC(),
		block.EndTime.UTC(),
		block.DayOfWeek,
		block.TaskID,
		block.Tick,
		block.CreatedAt.UTC(),
		block.UpdatedAt.UTC(),
	)
	switch {
	case isForeignKeyViolation(err):
		return repository.ErrForeignKeyViolation
	case isUniqueViolation(err):
		return repository.ErrDuplicate
	case err != nil:
		return fmt.Errorf("failed to create time block: %w", err)
	}

	block.UserID = userID
	return nil
}

// Get retrieves a block by ID
func (r *TimeBlockRepository) Get(ctx context.Context, userID, id string) (*timeblock.TimeBlock, error) {
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE id = ? AND user_id = ?`

	block, err := scanTimeBlock(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time block: %w", err)
	}
	return block, nil
}

// Update overwrites the mutable fields of a block
func (r *TimeBlockRepository) Update(ctx context.Context, userID string, block *timeblock.TimeBlock) error {
	query := `
		UPDATE time_blocks
		SET title = ?, color = ?, start_time = ?, end_time = ?, day_of_week = ?,
		    task_id = ?, tick = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		block.Title,
		block.Color,
		block.StartTime.UTC(),
		block.EndTime.UTC(),
		block.DayOfWeek,
		block.TaskID,
		block.Tick,
		block.UpdatedAt.UTC(),
		block.ID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time block: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a block
func (r *TimeBlockRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM time_blocks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete time block: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns blocks matching the options ordered by start time
func (r *TimeBlockRepository) List(ctx context.Context, userID string, opts timeblock.ListOptions) ([]timeblock.TimeBlock, error) {
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE user_id = ?`
	args := []any{userID}
	conditions := []string{}

	if opts.WorkspaceID != "" {
		conditions = append(conditions, "workspace_id = ?")
		args = append(args, opts.WorkspaceID)
	}
	if opts.To != nil {
		conditions = append(conditions, "start_time < ?")
		args = append(args, opts.To.UTC())
	}
	if opts.From != nil {
		conditions = append(conditions, "end_time > ?")
		args = append(args, opts.From.UTC())
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time blocks: %w", err)
	}
	defer rows.Close()

	var blocks []timeblock.TimeBlock
	for rows.Next() {
		block, err := scanTimeBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time block: %w", err)
		}
		blocks = append(blocks, *block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time block rows: %w", err)
	}

	return blocks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimeBlock(row rowScanner) (*timeblock.TimeBlock, error) {
	var block timeblock.TimeBlock
	var taskID sql.NullString
	var start, end time.Time
	err := row.Scan(
		&block.ID,
		&block.UserID,
		&block.WorkspaceID,
		&block.Title,
		&block.Color,
		&start,
		&end,
		&block.DayOfWeek,
		&taskID,
		&block.Tick,
		&block.CreatedAt,
		&block.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	block.StartTime = start.UTC()
	block.EndTime = end.UTC()
	if taskID.Valid {
		block.TaskID = &taskID.String
	}
	return &block, nil
}
