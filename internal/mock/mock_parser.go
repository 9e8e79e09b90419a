// Package mock provides mock implementations for testing.
package mock

import (
	"github.com/stretchr/testify/mock"

	"github.com/hpcprof/internal/parser"
	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/pkg/model"
)

// MockProfilerReader is a mock implementation of parser.ProfilerReader.
type MockProfilerReader struct {
	mock.Mock
}

// ReadFile mocks the ReadFile method.
func (m *MockProfilerReader) ReadFile(path string, endian binio.Endian) error {
	args := m.Called(path, endian)
	return args.Error(0)
}

// Read mocks the Read method.
func (m *MockProfilerReader) Read(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// ReadImage mocks the ReadImage method.
func (m *MockProfilerReader) ReadImage(path string, data []byte, endian binio.Endian) error {
	args := m.Called(path, data, endian)
	return args.Error(0)
}

// SetEndian mocks the SetEndian method.
func (m *MockProfilerReader) SetEndian(endian binio.Endian) {
	m.Called(endian)
}

// Endian mocks the Endian method.
func (m *MockProfilerReader) Endian() binio.Endian {
	args := m.Called()
	return args.Get(0).(binio.Endian)
}

// ResolvedEndian mocks the ResolvedEndian method.
func (m *MockProfilerReader) ResolvedEndian() (binio.Endian, error) {
	args := m.Called()
	return args.Get(0).(binio.Endian), args.Error(1)
}

// FileType mocks the FileType method.
func (m *MockProfilerReader) FileType() string {
	args := m.Called()
	return args.String(0)
}

// ProfFile mocks the ProfFile method.
func (m *MockProfilerReader) ProfFile() string {
	args := m.Called()
	return args.String(0)
}

// PaEventName mocks the PaEventName method.
func (m *MockProfilerReader) PaEventName() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// EventCounterInfo mocks the EventCounterInfo method.
func (m *MockProfilerReader) EventCounterInfo() ([]model.ProfilerEprofData, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProfilerEprofData), args.Error(1)
}

// CostInfoLine mocks the CostInfoLine method.
func (m *MockProfilerReader) CostInfoLine() ([]model.ProfilerDprofData, error) {
	return m.dprofRows(m.Called())
}

// CostInfoLoop mocks the CostInfoLoop method.
func (m *MockProfilerReader) CostInfoLoop() ([]model.ProfilerDprofData, error) {
	return m.dprofRows(m.Called())
}

// CostInfoProcedure mocks the CostInfoProcedure method.
func (m *MockProfilerReader) CostInfoProcedure() ([]model.ProfilerDprofData, error) {
	return m.dprofRows(m.Called())
}

// CallGraphInfo mocks the CallGraphInfo method.
func (m *MockProfilerReader) CallGraphInfo() ([]model.ProfilerDprofData, error) {
	return m.dprofRows(m.Called())
}

// Summary mocks the Summary method.
func (m *MockProfilerReader) Summary() (*model.ProfileSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileSummary), args.Error(1)
}

func (m *MockProfilerReader) dprofRows(args mock.Arguments) ([]model.ProfilerDprofData, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProfilerDprofData), args.Error(1)
}

// ExpectEmptyRows stubs every row accessor with an empty result.
func (m *MockProfilerReader) ExpectEmptyRows() {
	m.On("EventCounterInfo").Return([]model.ProfilerEprofData{}, nil)
	for _, method := range []string{"CostInfoProcedure", "CostInfoLoop", "CostInfoLine", "CallGraphInfo"} {
		m.On(method).Return([]model.ProfilerDprofData{}, nil)
	}
}

var _ parser.ProfilerReader = (*MockProfilerReader)(nil)
