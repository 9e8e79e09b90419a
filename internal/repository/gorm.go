package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hpcprof/pkg/model"
)

// insertBatchSize bounds the rows per INSERT statement.
const insertBatchSize = 500

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// AutoMigrate creates or updates the profile tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ProfileRecord{}, &EventCounterRecord{}, &CostRecord{}); err != nil {
		return fmt.Errorf("failed to migrate profile tables: %w", err)
	}
	return nil
}

// Save stores the summary and its rows in one transaction.
func (r *GormProfileRepository) Save(ctx context.Context, set *ProfileRecordSet) (int64, error) {
	if set == nil || set.Summary == nil {
		return 0, fmt.Errorf("profile summary is required")
	}

	record := newProfileRecord(set.Summary)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}

		if len(set.Events) > 0 {
			events := make([]*EventCounterRecord, 0, len(set.Events))
			for i, row := range set.Events {
				rec, err := newEventCounterRecord(record.ID, i, row)
				if err != nil {
					return err
				}
				events = append(events, rec)
			}
			if err := tx.CreateInBatches(events, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert event counters: %w", err)
			}
		}

		if len(set.Costs) > 0 {
			costs := make([]*CostRecord, 0, len(set.Costs))
			for i, row := range set.Costs {
				costs = append(costs, newCostRecord(record.ID, i, row))
			}
			if err := tx.CreateInBatches(costs, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert costs: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	set.Summary.ID = record.ID
	set.Summary.ImportedAt = record.ImportedAt
	return record.ID, nil
}

// Get retrieves a profile summary by its ID.
func (r *GormProfileRepository) Get(ctx context.Context, id int64) (*model.ProfileSummary, error) {
	var record ProfileRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProfileNotFound, id)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return record.ToModel(), nil
}

// FindBySourceKey returns the most recent import of key.
func (r *GormProfileRepository) FindBySourceKey(ctx context.Context, key string) (*model.ProfileSummary, error) {
	var record ProfileRecord
	err := r.db.WithContext(ctx).
		Where("source_key = ?", key).
		Order("id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: key %s", ErrProfileNotFound, key)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return record.ToModel(), nil
}

// List returns up to limit summaries, newest first. A non-positive limit
// returns all of them.
func (r *GormProfileRepository) List(ctx context.Context, limit int) ([]*model.ProfileSummary, error) {
	var records []ProfileRecord
	query := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	result := make([]*model.ProfileSummary, len(records))
	for i := range records {
		result[i] = records[i].ToModel()
	}
	return result, nil
}

// EventCounters returns the event counter rows of a profile in file order.
func (r *GormProfileRepository) EventCounters(ctx context.Context, id int64) ([]model.ProfilerEprofData, error) {
	var records []EventCounterRecord
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", id).
		Order("seq ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query event counters: %w", err)
	}

	rows := make([]model.ProfilerEprofData, 0, len(records))
	for i := range records {
		row, err := records[i].ToModel()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Costs returns the rows of a profile with the given info type in file order.
func (r *GormProfileRepository) Costs(ctx context.Context, id int64, infoType model.InfoType) ([]model.ProfilerDprofData, error) {
	var records []CostRecord
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND info_type = ?", id, infoType).
		Order("seq ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query costs: %w", err)
	}

	rows := make([]model.ProfilerDprofData, len(records))
	for i := range records {
		rows[i] = records[i].ToModel()
	}
	return rows, nil
}

// Delete removes a profile and its rows.
func (r *GormProfileRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", id).Delete(&CostRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete costs: %w", err)
		}
		if err := tx.Where("profile_id = ?", id).Delete(&EventCounterRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete event counters: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&ProfileRecord{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: id %d", ErrProfileNotFound, id)
		}
		return nil
	})
}
