package prof

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic is returned when the file tag does not match the format.
	ErrInvalidMagic = errors.New("invalid magic")

	// ErrUnsupportedVersion is returned when the version is not the supported one.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrUnknownCategory is returned for a PA event category outside the table.
	ErrUnknownCategory = errors.New("unknown PA event category")

	// ErrNotLoaded is returned by reader accessors before a successful read.
	ErrNotLoaded = errors.New("profile not loaded")

	// ErrCountMismatch is returned when a declared count disagrees with the
	// number of decoded records.
	ErrCountMismatch = errors.New("declared count mismatch")

	// ErrInvalidIndex is returned when a record references a table entry that
	// does not exist.
	ErrInvalidIndex = errors.New("index out of range")
)

// MagicError reports the tag found in place of the expected one.
type MagicError struct {
	Want string
	Got  []byte
}

// Error implements the error interface.
func (e *MagicError) Error() string {
	return fmt.Sprintf("invalid magic: want %q, got %q", e.Want, e.Got)
}

// Is reports whether target is ErrInvalidMagic.
func (e *MagicError) Is(target error) bool {
	return target == ErrInvalidMagic
}

// VersionError reports a version other than the single supported one.
type VersionError struct {
	Format    string
	Found     int16
	Supported int16
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported %s version: file=%#04x supported=%#04x", e.Format, uint16(e.Found), uint16(e.Supported))
}

// Is reports whether target is ErrUnsupportedVersion.
func (e *VersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// CategoryError reports a PA event category missing from the width table.
type CategoryError struct {
	Name string
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	return fmt.Sprintf("unknown PA event category %q", e.Name)
}

// Is reports whether target is ErrUnknownCategory.
func (e *CategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// CountMismatch builds an ErrCountMismatch for the named list.
func CountMismatch(what string, declared, decoded int) error {
	return fmt.Errorf("%s: declared %d, decoded %d: %w", what, declared, decoded, ErrCountMismatch)
}

// fmtField wraps a read failure with the field name.
func fmtField(field string, err error) error {
	return fmt.Errorf("failed to read %s: %w", field, err)
}

// IndexError reports a reference to a table entry that does not exist.
type IndexError struct {
	Field string
	Index int32
	Len   int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Field, e.Index, e.Len)
}

// Is reports whether target is ErrInvalidIndex.
func (e *IndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// CheckIndex returns an IndexError unless 0 <= idx < n. When allowNone is set
// the value -1 is accepted as well.
func CheckIndex(field string, idx int32, n int, allowNone bool) error {
	if allowNone && idx == -1 {
		return nil
	}
	if idx < 0 || int(idx) >= n {
		return &IndexError{Field: field, Index: idx, Len: n}
	}
	return nil
}
