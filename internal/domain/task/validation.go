package task

import "strings"

// ValidateCreateInput validates fields required to create tasks.
func ValidateCreateInput(workspaceID string, titles []string) error {
	if strings.TrimSpace(workspaceID) == "" || len(titles) == 0 {
		return ErrInvalidInput
	}
	for _, title := range titles {
		if strings.TrimSpace(title) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// ValidateStatus accepts pending and completed.
func ValidateStatus(s Status) error {
	switch s {
	case StatusPending, StatusCompleted:
		return nil
	}
	return ErrInvalidStatus
}

// normalizeCategory trims a category and maps blank to nil.
func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	c := strings.TrimSpace(*category)
	if c == "" {
		return nil
	}
	return &c
}
