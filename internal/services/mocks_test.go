package services

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"
)

// MockSource is a mock for dataset.Source
type MockSource struct {
	mock.Mock
	calls atomic.Int32
}

func (m *MockSource) Name() string {
	return "mock"
}

func (m *MockSource) Rows(ctx context.Context) ([][]string, error) {
	m.calls.Add(1)
	args := m.Called(ctx)
	rows, _ := args.Get(0).([][]string)
	return rows, args.Error(1)
}

// Loads returns how many times Rows was called
func (m *MockSource) Loads() int {
	return int(m.calls.Load())
}
