package plotspec

import "errors"

var (
	// ErrInvalidFigure is returned when a descriptor fails schema validation
	ErrInvalidFigure = errors.New("invalid figure descriptor")

	// ErrUnsupportedFormat is returned for descriptor files that are neither JSON nor YAML
	ErrUnsupportedFormat = errors.New("unsupported descriptor format")

	// ErrUnknownFunction is returned when a function plot names no builtin
	ErrUnknownFunction = errors.New("unknown function")

	// ErrDataFile is returned when a data file cannot be parsed
	ErrDataFile = errors.New("malformed data file")
)
