package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	id, user_id, workspace_id, title, status, category, tick, created_at, updated_at
`

// Create inserts tasks in one transaction
func (r *TaskRepository) Create(ctx context.Context, userID string, tasks []*task.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		_, err := stmt.ExecContext(ctx,
			t.ID,
			userID,
			t.WorkspaceID,
			t.Title,
			t.Status,
			t.Category,
			t.Tick,
			t.CreatedAt.UTC(),
			t.UpdatedAt.UTC(),
		)
		switch {
		case isForeignKeyViolation(err):
			return repository.ErrForeignKeyViolation
		case isUniqueViolation(err):
			return repository.ErrDuplicate
		case err != nil:
			return fmt.Errorf("failed to create task: %w", err)
		}
		t.UserID = userID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}
	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, userID, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// Update overwrites the mutable fields of a task
func (r *TaskRepository) Update(ctx context.Context, userID string, t *task.Task) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, status = ?, category = ?, tick = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`,
		t.Title,
		t.Status,
		t.Category,
		t.Tick,
		t.UpdatedAt.UTC(),
		t.ID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
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

// Delete removes the listed tasks of a workspace and returns how many were
// removed. Linked blocks keep existing with their task cleared.
func (r *TaskRepository) Delete(ctx context.Context, userID, workspaceID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	in, args := inClause(ids)
	query := `DELETE FROM tasks WHERE user_id = ? AND workspace_id = ? AND id IN (` + in + `)`

	result, err := r.db.ExecContext(ctx, query, append([]any{userID, workspaceID}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}
	return result.RowsAffected()
}

// SetCategory sets the category of the listed tasks of a workspace and
// returns how many were changed.
func (r *TaskRepository) SetCategory(ctx context.Context, userID, workspaceID string, ids []string, category *string, tick int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	in, args := inClause(ids)
	query := `
		UPDATE tasks SET category = ?, tick = ?, updated_at = ?
		WHERE user_id = ? AND workspace_id = ? AND id IN (` + in + `)`

	head := []any{category, tick, time.Now().UTC(), userID, workspaceID}
	result, err := r.db.ExecContext(ctx, query, append(head, args...)...)
	if err != nil {
		return 0, fmt.Errorf("failed to set task category: %w", err)
	}
	return result.RowsAffected()
}

// List returns tasks matching the options in creation order
func (r *TaskRepository) List(ctx context.Context, userID string, opts task.ListOptions) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []any{userID}
	conditions := []string{}

	if opts.WorkspaceID != "" {
		conditions = append(conditions, "workspace_id = ?")
		args = append(args, opts.WorkspaceID)
	}
	if !opts.ShowCompleted {
		conditions = append(conditions, "status != ?")
		args = append(args, task.StatusCompleted)
	}
	if opts.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *opts.Category)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, rowid ASC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		if opts.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// Categories returns the distinct categories of a workspace in name order
func (r *TaskRepository) Categories(ctx context.Context, userID, workspaceID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM tasks
		WHERE user_id = ? AND workspace_id = ? AND category IS NOT NULL
		ORDER BY category
	`, userID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var category sql.NullString
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.WorkspaceID,
		&t.Title,
		&t.Status,
		&category,
		&t.Tick,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if category.Valid {
		t.Category = &category.String
	}
	return &t, nil
}

func inClause(ids []string) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ","), args
}
