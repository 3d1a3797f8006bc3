package gnuplot

import (
	"errors"

	"github.com/harun/plotpipe/pkg/tempfile"
)

var (
	// ErrSpawnFailure is returned when the engine process cannot be started
	ErrSpawnFailure = errors.New("engine process could not be started")

	// ErrCloseFailure is returned when stopping the engine reports an error
	ErrCloseFailure = errors.New("engine teardown failed")

	// ErrSessionClosed is returned when a closed session is used
	ErrSessionClosed = errors.New("session is closed")

	// ErrEmptyInput is returned when a series has no points
	ErrEmptyInput = errors.New("series has no points")

	// ErrMismatchedSeries is returned when aligned sequences differ in length
	ErrMismatchedSeries = errors.New("series lengths differ")

	// ErrDispatch is returned when a command cannot be written to the engine
	ErrDispatch = errors.New("engine command could not be written")

	// ErrNilFunction is returned when a function entry has no function
	ErrNilFunction = errors.New("function is nil")

	// ErrEngineVersion is returned when the engine is older than required
	ErrEngineVersion = errors.New("engine version not supported")

	// ErrResourceExhausted is returned when the temporary file table is full
	ErrResourceExhausted = tempfile.ErrResourceExhausted

	// ErrFileIO is returned when a temporary file cannot be created or written
	ErrFileIO = tempfile.ErrFileIO
)
