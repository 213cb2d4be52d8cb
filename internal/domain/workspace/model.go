package workspace

import "time"

// Workspace groups time blocks and carries a monotonic tick that advances on
// every block write.
type Workspace struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Tick        int64     `json:"tick"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkspaceSummary is a lightweight representation for listing
type WorkspaceSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Tick        int64     `json:"tick"`
	BlockCount  int       `json:"block_count"`
	CreatedAt   time.Time `json:"created_at"`
}
