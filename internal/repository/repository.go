// Package repository persists imported profile summaries and their
// presentation rows.
package repository

import (
	"context"
	"errors"

	"github.com/hpcprof/pkg/model"
)

// ErrProfileNotFound is returned when no stored profile matches.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRecordSet is everything stored for one imported file.
type ProfileRecordSet struct {
	Summary *model.ProfileSummary
	Events  []model.ProfilerEprofData
	Costs   []model.ProfilerDprofData
}

// ProfileRepository defines the persistence operations for imported profiles.
type ProfileRepository interface {
	// Save stores the set in one transaction and returns the new profile id.
	Save(ctx context.Context, set *ProfileRecordSet) (int64, error)

	// Get retrieves a profile summary by its ID.
	Get(ctx context.Context, id int64) (*model.ProfileSummary, error)

	// FindBySourceKey returns the most recent import of key.
	FindBySourceKey(ctx context.Context, key string) (*model.ProfileSummary, error)

	// List returns up to limit summaries, newest first.
	List(ctx context.Context, limit int) ([]*model.ProfileSummary, error)

	// EventCounters returns the event counter rows of a profile in file order.
	EventCounters(ctx context.Context, id int64) ([]model.ProfilerEprofData, error)

	// Costs returns the cost or call-graph rows of a profile with the given
	// info type, in file order.
	Costs(ctx context.Context, id int64, infoType model.InfoType) ([]model.ProfilerDprofData, error)

	// Delete removes a profile and its rows.
	Delete(ctx context.Context, id int64) error
}
