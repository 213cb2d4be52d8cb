package timeblock

import (
	"strings"
	"time"
)

// ValidateCreateInput validates fields required to create a block.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.WorkspaceID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	return ValidateRange(req.StartTime, req.EndTime)
}

// ValidateRange requires both times to be set and end to be after start.
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrInvalidInput
	}
	if !end.After(start) {
		return ErrInvalidRange
	}
	return nil
}
