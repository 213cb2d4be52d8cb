package timeblock

import (
	"context"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
)

// Repository provides persistence for time blocks.
type Repository interface {
	Create(ctx context.Context, userID string, block *TimeBlock) error
	Get(ctx context.Context, userID, id string) (*TimeBlock, error)
	Update(ctx context.Context, userID string, block *TimeBlock) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, opts ListOptions) ([]TimeBlock, error)
}

// WorkspaceRepository advances the workspace tick on writes.
type WorkspaceRepository interface {
	IncrementTick(ctx context.Context, userID, workspaceID string) (int64, error)
}

// ActivityRepository records block mutations.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}

// TaskRepository resolves the tasks blocks link to.
type TaskRepository interface {
	Get(ctx context.Context, userID, id string) (*task.Task, error)
}
