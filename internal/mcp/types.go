package mcp

import (
	"time"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
)

type CreateWorkspaceParams struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type GetWorkspaceParams struct {
	ID string `json:"id,omitempty"`
}

type ListTimeBlocksParams struct {
	WorkspaceID string     `json:"workspace_id,omitempty"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
}

type GetTimeBlockParams struct {
	ID string `json:"id"`
}

type CreateTimeBlockParams struct {
	WorkspaceID string    `json:"workspace_id,omitempty"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Color       string    `json:"color,omitempty"`
	TaskID      *string   `json:"task_id,omitempty"`
}

type UpdateTimeBlockParams struct {
	ID        string     `json:"id"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Title     *string    `json:"title,omitempty"`
	Color     *string    `json:"color,omitempty"`
}

type DuplicateTimeBlockParams struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type DeleteTimeBlockParams struct {
	ID string `json:"id"`
}

type AssignTaskParams struct {
	ID     string  `json:"id"`
	TaskID *string `json:"task_id"`
}

type CreateTaskParams struct {
	WorkspaceID string  `json:"workspace_id,omitempty"`
	Title       string  `json:"title"`
	Category    *string `json:"category,omitempty"`
}

type CreateTasksParams struct {
	WorkspaceID string   `json:"workspace_id,omitempty"`
	Titles      []string `json:"titles"`
	Category    *string  `json:"category,omitempty"`
}

type ListTasksParams struct {
	WorkspaceID   string  `json:"workspace_id,omitempty"`
	ShowCompleted bool    `json:"show_completed,omitempty"`
	Category      *string `json:"category,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	Offset        int     `json:"offset,omitempty"`
}

type SearchTasksParams struct {
	WorkspaceID   string `json:"workspace_id,omitempty"`
	Query         string `json:"query"`
	ShowCompleted bool   `json:"show_completed,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

type TaskIDParams struct {
	ID string `json:"id"`
}

type UpdateTaskParams struct {
	ID       string       `json:"id"`
	Title    *string      `json:"title,omitempty"`
	Status   *task.Status `json:"status,omitempty"`
	Category *string      `json:"category,omitempty"`
}

type SetTaskCategoryParams struct {
	WorkspaceID string   `json:"workspace_id,omitempty"`
	IDs         []string `json:"ids"`
	Category    string   `json:"category"`
}

type DeleteTasksParams struct {
	WorkspaceID string   `json:"workspace_id,omitempty"`
	IDs         []string `json:"ids"`
}

type ListTaskCategoriesParams struct {
	WorkspaceID string `json:"workspace_id,omitempty"`
}

type ExportICSParams struct {
	WorkspaceID string     `json:"workspace_id,omitempty"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
}

type GetRecentActivityParams struct {
	WorkspaceID string                 `json:"workspace_id,omitempty"`
	BlockID     *string                `json:"block_id,omitempty"`
	TaskID      *string                `json:"task_id,omitempty"`
	Type        *activity.ActivityType `json:"type,omitempty"`
	Limit       int                    `json:"limit,omitempty"`
}

type ListTimeBlocksResponse struct {
	WorkspaceID string                `json:"workspace_id"`
	Tick        int64                 `json:"tick"`
	Blocks      []timeblock.TimeBlock `json:"blocks"`
}

type ListTasksResponse struct {
	WorkspaceID string      `json:"workspace_id"`
	Tasks       []task.Task `json:"tasks"`
}

type SearchTasksResponse struct {
	WorkspaceID string              `json:"workspace_id"`
	Results     []task.SearchResult `json:"results"`
}

type BulkTaskResponse struct {
	WorkspaceID string `json:"workspace_id"`
	Affected    int64  `json:"affected"`
}

type DeleteTimeBlockResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ExportICSResponse struct {
	WorkspaceID string `json:"workspace_id"`
	EventCount  int    `json:"event_count"`
	Calendar    string `json:"calendar"`
}

type ActivityEntryResponse struct {
	Timestamp time.Time             `json:"timestamp"`
	Type      activity.ActivityType `json:"type"`
	BlockID   *string               `json:"block_id,omitempty"`
	TaskID    *string               `json:"task_id,omitempty"`
	Summary   string                `json:"summary"`
	Details   string                `json:"details,omitempty"`
	Tick      int64                 `json:"tick"`
}
