package timeblock

import "errors"

var (
	// ErrTimeBlockNotFound indicates the time block doesn't exist.
	ErrTimeBlockNotFound = errors.New("time block not found")
	// ErrInvalidRange indicates an end time that is not after the start time.
	ErrInvalidRange = errors.New("time block end must be after start")
	// ErrInvalidInput indicates invalid input for time block operations.
	ErrInvalidInput = errors.New("invalid time block input")
)
