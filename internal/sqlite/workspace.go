package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/repository"
)

// WorkspaceRepository implements workspace.Repository for SQLite
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, userID string, ws *workspace.Workspace) error {
	query := `
		INSERT INTO workspaces (id, user_id, name, description, tick, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		ws.ID,
		userID,
		ws.Name,
		ws.Description,
		ws.Tick,
		ws.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// Get retrieves a workspace by ID
func (r *WorkspaceRepository) Get(ctx context.Context, userID, id string) (*workspace.Workspace, error) {
	query := `
		SELECT id, user_id, name, COALESCE(description, ''), tick, created_at
		FROM workspaces
		WHERE id = ? AND user_id = ?
	`

	var ws workspace.Workspace
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&ws.ID,
		&ws.UserID,
		&ws.Name,
		&ws.Description,
		&ws.Tick,
		&ws.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &ws, nil
}

// GetDefault retrieves the first workspace a user created
func (r *WorkspaceRepository) GetDefault(ctx context.Context, userID string) (*workspace.Workspace, error) {
	query := `
		SELECT id, user_id, name, COALESCE(description, ''), tick, created_at
		FROM workspaces
		WHERE user_id = ?
		ORDER BY created_at ASC
		LIMIT 1
	`

	var ws workspace.Workspace
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&ws.ID,
		&ws.UserID,
		&ws.Name,
		&ws.Description,
		&ws.Tick,
		&ws.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default workspace: %w", err)
	}

	return &ws, nil
}

// List returns all workspaces for a user with block counts
func (r *WorkspaceRepository) List(ctx context.Context, userID string) ([]workspace.WorkspaceSummary, error) {
	query := `
		SELECT
			w.id,
			w.name,
			COALESCE(w.description, ''),
			w.tick,
			w.created_at,
			COUNT(b.id) as block_count
		FROM workspaces w
		LEFT JOIN time_blocks b ON b.workspace_id = w.id AND b.user_id = w.user_id
		WHERE w.user_id = ?
		GROUP BY w.id, w.name, w.description, w.tick, w.created_at
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var summaries []workspace.WorkspaceSummary
	for rows.Next() {
		var summary workspace.WorkspaceSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Description,
			&summary.Tick,
			&summary.CreatedAt,
			&summary.BlockCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", err)
	}

	return summaries, nil
}

// IncrementTick atomically increments the workspace tick and returns the new value
func (r *WorkspaceRepository) IncrementTick(ctx context.Context, userID, workspaceID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE workspaces SET tick = tick + 1 WHERE id = ? AND user_id = ?`,
		workspaceID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to increment tick: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return 0, repository.ErrNotFound
	}

	var newTick int64
	err = tx.QueryRowContext(ctx,
		`SELECT tick FROM workspaces WHERE id = ? AND user_id = ?`,
		workspaceID, userID).Scan(&newTick)
	if err != nil {
		return 0, fmt.Errorf("failed to get new tick: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newTick, nil
}
