package timeblock

import "time"

// TimeBlock is a titled interval on the weekly calendar.
type TimeBlock struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WorkspaceID string    `json:"workspace_id"`
	Title       string    `json:"title"`
	Color       string    `json:"color"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DayOfWeek   int       `json:"day_of_week"`
	TaskID      *string   `json:"task_id,omitempty"`
	Tick        int64     `json:"tick"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DayOfWeek derives a block's weekday from its start time in the location
// the caller supplied it in. Times read back from storage are UTC and must
// not be used for this.
func DayOfWeek(start time.Time) int {
	return int(start.Weekday())
}

// Duration returns the length of the block.
func (b TimeBlock) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Set indexes blocks by ID.
type Set map[string]TimeBlock

// NewSet builds a Set from a block list.
func NewSet(blocks []TimeBlock) Set {
	set := make(Set, len(blocks))
	for _, b := range blocks {
		set[b.ID] = b
	}
	return set
}

// Lookup returns the block with the given ID.
func (s Set) Lookup(id string) (TimeBlock, bool) {
	b, ok := s[id]
	return b, ok
}
