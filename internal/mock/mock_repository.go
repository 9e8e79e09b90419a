package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hpcprof/internal/repository"
	"github.com/hpcprof/pkg/model"
)

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

// Save mocks the Save method.
func (m *MockProfileRepository) Save(ctx context.Context, set *repository.ProfileRecordSet) (int64, error) {
	args := m.Called(ctx, set)
	return args.Get(0).(int64), args.Error(1)
}

// Get mocks the Get method.
func (m *MockProfileRepository) Get(ctx context.Context, id int64) (*model.ProfileSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileSummary), args.Error(1)
}

// FindBySourceKey mocks the FindBySourceKey method.
func (m *MockProfileRepository) FindBySourceKey(ctx context.Context, key string) (*model.ProfileSummary, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileSummary), args.Error(1)
}

// List mocks the List method.
func (m *MockProfileRepository) List(ctx context.Context, limit int) ([]*model.ProfileSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ProfileSummary), args.Error(1)
}

// EventCounters mocks the EventCounters method.
func (m *MockProfileRepository) EventCounters(ctx context.Context, id int64) ([]model.ProfilerEprofData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProfilerEprofData), args.Error(1)
}

// Costs mocks the Costs method.
func (m *MockProfileRepository) Costs(ctx context.Context, id int64, infoType model.InfoType) ([]model.ProfilerDprofData, error) {
	args := m.Called(ctx, id, infoType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProfilerDprofData), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockProfileRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.ProfileRepository = (*MockProfileRepository)(nil)
