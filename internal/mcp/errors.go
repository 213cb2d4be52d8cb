package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, timeblock.ErrTimeBlockNotFound):
		return &APIError{Code: "TIME_BLOCK_NOT_FOUND", Message: "time block not found", RecoveryHint: "List blocks to find a valid ID"}
	case errors.Is(err, task.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Use search_tasks or list_tasks to find a valid ID"}
	case errors.Is(err, task.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: "status must be pending or completed", RecoveryHint: "Send status pending or completed"}
	case errors.Is(err, workspace.ErrWorkspaceNotFound):
		return &APIError{Code: "WORKSPACE_NOT_FOUND", Message: "workspace not found", RecoveryHint: "Omit workspace_id to use the default workspace"}
	case errors.Is(err, timeblock.ErrInvalidRange):
		return &APIError{Code: "INVALID_RANGE", Message: "end time must be after start time", RecoveryHint: "Send RFC 3339 times with end after start"}
	case errors.Is(err, timeblock.ErrInvalidInput),
		errors.Is(err, workspace.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check required fields"}
	case errors.Is(err, repository.ErrDuplicate):
		return &APIError{Code: "ALREADY_EXISTS", Message: "an item with this ID already exists", RecoveryHint: "Omit the ID to have one generated"}
	default:
		return nil
	}
}

func invalidInput(format string, args ...any) *APIError {
	return &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf(format, args...), RecoveryHint: "Check the tool's input schema"}
}
