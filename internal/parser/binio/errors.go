package binio

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a field requires.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidLength is returned when a length or count field is negative.
	ErrInvalidLength = errors.New("invalid length field")
)

// TruncatedError describes a short read.
type TruncatedError struct {
	Offset    int
	Need      int
	Remaining int
}

// Error implements the error interface.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated input: need %d bytes at offset %d, %d remaining", e.Need, e.Offset, e.Remaining)
}

// Is reports whether target is ErrTruncated.
func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// LengthError describes a negative length or count.
type LengthError struct {
	Offset int
	Length int64
}

// Error implements the error interface.
func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid length %d at offset %d", e.Length, e.Offset)
}

// Is reports whether target is ErrInvalidLength.
func (e *LengthError) Is(target error) bool {
	return target == ErrInvalidLength
}
