package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidStatus indicates a status other than pending or completed.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidInput indicates invalid input for task operations.
	ErrInvalidInput = errors.New("invalid task input")
)
