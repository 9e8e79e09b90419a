package service

import (
	"errors"
	"os"
	"strings"

	"github.com/hpcprof/internal/parser"
	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
	"github.com/hpcprof/internal/repository"
	"github.com/hpcprof/internal/storage"
	apperrors "github.com/hpcprof/pkg/errors"
)

// decodeCode returns the application code of a rejected profile file.
func decodeCode(err error) string {
	switch {
	case errors.Is(err, binio.ErrTruncated), errors.Is(err, parser.ErrEmptyInput):
		return apperrors.CodeTruncated
	case errors.Is(err, binio.ErrInvalidLength), errors.Is(err, prof.ErrCountMismatch):
		return apperrors.CodeInvalidLength
	case errors.Is(err, prof.ErrInvalidMagic), errors.Is(err, parser.ErrUnsupportedFormat):
		return apperrors.CodeInvalidMagic
	case errors.Is(err, prof.ErrUnsupportedVersion):
		return apperrors.CodeUnsupportedVersion
	case errors.Is(err, prof.ErrUnknownCategory):
		return apperrors.CodeUnknownCategory
	case errors.Is(err, prof.ErrInvalidIndex):
		return apperrors.CodeInvalidIndex
	case errors.Is(err, prof.ErrNotLoaded):
		return apperrors.CodeNotLoaded
	case errors.Is(err, os.ErrNotExist):
		return apperrors.CodeNotFound
	default:
		return apperrors.CodeUnknown
	}
}

// wrapDecode wraps a reader failure for path. An unknown PA category lists
// the known ones.
func wrapDecode(path string, err error) error {
	code := decodeCode(err)
	message := "failed to decode " + path
	if code == apperrors.CodeUnknownCategory {
		message += " (known categories: " + strings.Join(prof.Categories(), ", ") + ")"
	}
	return apperrors.Wrap(code, message, err)
}

// wrapStorage wraps a storage failure for key.
func wrapStorage(key string, err error) error {
	if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, os.ErrNotExist) {
		return apperrors.Wrap(apperrors.CodeNotFound, "profile object "+key+" not found", err)
	}
	return apperrors.Wrap(apperrors.CodeStorageError, "failed to fetch "+key, err)
}

// wrapDatabase wraps a repository failure.
func wrapDatabase(message string, err error) error {
	if errors.Is(err, repository.ErrProfileNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, message, err)
	}
	return apperrors.Wrap(apperrors.CodeDatabaseError, message, err)
}
