package parser

import "errors"

var (
	// ErrUnsupportedFormat is returned when no reader is registered for the
	// magic tag of a file.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyInput is returned when a file is too short to carry a tag.
	ErrEmptyInput = errors.New("empty input")
)
