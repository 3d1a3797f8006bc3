package tempfile

import "errors"

var (
	// ErrResourceExhausted is returned when every slot of the table is in use
	ErrResourceExhausted = errors.New("temporary file capacity reached")

	// ErrFileIO is returned when a temporary file cannot be created or removed
	ErrFileIO = errors.New("temporary file i/o failure")

	// ErrUnknownPath is returned when releasing a path the table does not hold
	ErrUnknownPath = errors.New("path is not held by the temporary file table")

	// ErrInvalidCapacity is returned when the capacity leaves no usable slot
	ErrInvalidCapacity = errors.New("invalid temporary file capacity (must be >= 2)")
)
