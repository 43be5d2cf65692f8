package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/domain/astro"
)

// TestifyMockEngine is a mock of astro.Engine for use with testify/mock.
// Params returns the defaults unless ParamsValue is set.
type TestifyMockEngine struct {
	mock.Mock
	ParamsValue *astro.Params
}

var _ astro.Engine = (*TestifyMockEngine)(nil)

// ComputeChart is a mock implementation of astro.Engine.ComputeChart
func (m *TestifyMockEngine) ComputeChart(birth domain.BirthData, opts ...astro.ChartOption) (*domain.BirthChart, error) {
	args := m.Called(birth)
	if chart, ok := args.Get(0).(*domain.BirthChart); ok {
		return chart, args.Error(1)
	}
	return nil, args.Error(1)
}

// ComputeCompatibility is a mock implementation of astro.Engine.ComputeCompatibility
func (m *TestifyMockEngine) ComputeCompatibility(a, b *domain.BirthChart) (*domain.CompatibilityResult, error) {
	args := m.Called(a, b)
	if result, ok := args.Get(0).(*domain.CompatibilityResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

// ComputeCurrentTransits is a mock implementation of astro.Engine.ComputeCurrentTransits
func (m *TestifyMockEngine) ComputeCurrentTransits(jd float64) ([]domain.BodyPosition, error) {
	args := m.Called(jd)
	if positions, ok := args.Get(0).([]domain.BodyPosition); ok {
		return positions, args.Error(1)
	}
	return nil, args.Error(1)
}

// ComputeTransits is a mock implementation of astro.Engine.ComputeTransits
func (m *TestifyMockEngine) ComputeTransits(natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error) {
	args := m.Called(natal, at)
	if report, ok := args.Get(0).(*domain.TransitReport); ok {
		return report, args.Error(1)
	}
	return nil, args.Error(1)
}

// ComputeDailyHoroscope is a mock implementation of astro.Engine.ComputeDailyHoroscope
func (m *TestifyMockEngine) ComputeDailyHoroscope(sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error) {
	args := m.Called(sign, date)
	if h, ok := args.Get(0).(*domain.DailyHoroscope); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

// Params returns ParamsValue or the engine defaults.
func (m *TestifyMockEngine) Params() astro.Params {
	if m.ParamsValue != nil {
		return *m.ParamsValue
	}
	return *astro.NewDefaultParams()
}
