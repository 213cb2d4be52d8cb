package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeWorkspaceCreated    ActivityType = "workspace_created"
	TypeTimeBlockCreated    ActivityType = "time_block_created"
	TypeTimeBlockUpdated    ActivityType = "time_block_updated"
	TypeTimeBlockDuplicated ActivityType = "time_block_duplicated"
	TypeTimeBlockDeleted    ActivityType = "time_block_deleted"
	TypeTaskAssigned        ActivityType = "task_assigned"
	TypeTaskCreated         ActivityType = "task_created"
	TypeTaskUpdated         ActivityType = "task_updated"
	TypeTaskDeleted         ActivityType = "task_deleted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id"`
	WorkspaceID  string       `json:"workspace_id"`
	BlockID      *string      `json:"block_id,omitempty"`
	TaskID       *string      `json:"task_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
	Tick         int64        `json:"tick"`
}
