package task

import (
	"context"

	"github.com/rpggio/weekgrid/internal/domain/activity"
)

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, userID string, tasks []*Task) error
	Get(ctx context.Context, userID, id string) (*Task, error)
	Update(ctx context.Context, userID string, t *Task) error
	Delete(ctx context.Context, userID, workspaceID string, ids []string) (int64, error)
	SetCategory(ctx context.Context, userID, workspaceID string, ids []string, category *string, tick int64) (int64, error)
	List(ctx context.Context, userID string, opts ListOptions) ([]Task, error)
	Categories(ctx context.Context, userID, workspaceID string) ([]string, error)
}

// SearchRepository performs full-text search over tasks.
type SearchRepository interface {
	Search(ctx context.Context, userID, workspaceID, query string, opts SearchOptions) ([]SearchResult, error)
}

// WorkspaceRepository advances the workspace tick on writes.
type WorkspaceRepository interface {
	IncrementTick(ctx context.Context, userID, workspaceID string) (int64, error)
}

// ActivityRepository records task writes.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}
