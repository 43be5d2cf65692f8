package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// TestifyMockMetrics is a mock of service.Metrics for use with testify/mock.
type TestifyMockMetrics struct {
	mock.Mock
}

// RecordComputation is a mock implementation of Metrics.RecordComputation
func (m *TestifyMockMetrics) RecordComputation(operation string, elapsed time.Duration, err error) {
	m.Called(operation, elapsed, err)
}

// RecordCacheLookup is a mock implementation of Metrics.RecordCacheLookup
func (m *TestifyMockMetrics) RecordCacheLookup(backend, result string) {
	m.Called(backend, result)
}

// RecordHouseFallback is a mock implementation of Metrics.RecordHouseFallback
func (m *TestifyMockMetrics) RecordHouseFallback() {
	m.Called()
}

// RecordBatch is a mock implementation of Metrics.RecordBatch
func (m *TestifyMockMetrics) RecordBatch(size int) {
	m.Called(size)
}
