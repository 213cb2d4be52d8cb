package timeblock

import "time"

// ListOptions filters block listings. From and To select blocks overlapping
// [From, To) when set.
type ListOptions struct {
	WorkspaceID string
	From        *time.Time
	To          *time.Time
}
