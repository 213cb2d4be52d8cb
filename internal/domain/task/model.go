package task

import "time"

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is a unit of work that time blocks can be scheduled against.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WorkspaceID string    `json:"workspace_id"`
	Title       string    `json:"title"`
	Status      Status    `json:"status"`
	Category    *string   `json:"category,omitempty"`
	Tick        int64     `json:"tick"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchResult is a search hit. Lower ranks match better.
type SearchResult struct {
	Task Task    `json:"task"`
	Rank float64 `json:"rank"`
}
