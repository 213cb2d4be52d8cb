package workspace

import (
	"context"

	"github.com/rpggio/weekgrid/internal/domain/activity"
)

// Repository provides persistence for workspaces.
type Repository interface {
	Create(ctx context.Context, userID string, ws *Workspace) error
	Get(ctx context.Context, userID, id string) (*Workspace, error)
	GetDefault(ctx context.Context, userID string) (*Workspace, error)
	List(ctx context.Context, userID string) ([]WorkspaceSummary, error)
	IncrementTick(ctx context.Context, userID, workspaceID string) (int64, error)
}

// ActivityRepository records workspace lifecycle events.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}
