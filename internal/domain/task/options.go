package task

// ListOptions filters task listings. Completed tasks are left out unless
// ShowCompleted is set.
type ListOptions struct {
	WorkspaceID   string
	ShowCompleted bool
	Category      *string
	Limit         int
	Offset        int
}

// SearchOptions filters search results.
type SearchOptions struct {
	ShowCompleted bool
	Limit         int
}
