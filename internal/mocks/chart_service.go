package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/service"
)

// MockChartService implements service.ChartService for testing
type MockChartService struct {
	ComputeChartFn     func(ctx context.Context, req service.ChartRequest) (*domain.BirthChart, error)
	ComputeBatchFn     func(ctx context.Context, reqs []service.ChartRequest) ([]service.BatchResult, error)
	CompatibilityFn    func(ctx context.Context, a, b service.ChartRequest) (*domain.CompatibilityResult, error)
	CompatibilityOfFn  func(ctx context.Context, a, b *domain.BirthChart) (*domain.CompatibilityResult, error)
	CurrentPositionsFn func(ctx context.Context, at time.Time) ([]domain.BodyPosition, error)
	PersonalTransitsFn func(ctx context.Context, req service.ChartRequest, at time.Time) (*domain.TransitReport, error)
	TransitsForFn      func(ctx context.Context, natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error)
	DailyHoroscopeFn   func(ctx context.Context, sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error)

	// Default return values
	Chart        *domain.BirthChart
	DefaultError error
}

var _ service.ChartService = (*MockChartService)(nil)

// ComputeChart implements the ChartService.ComputeChart method
func (m *MockChartService) ComputeChart(ctx context.Context, req service.ChartRequest) (*domain.BirthChart, error) {
	if m.ComputeChartFn != nil {
		return m.ComputeChartFn(ctx, req)
	}
	return m.Chart, m.DefaultError
}

// ComputeBatch implements the ChartService.ComputeBatch method
func (m *MockChartService) ComputeBatch(ctx context.Context, reqs []service.ChartRequest) ([]service.BatchResult, error) {
	if m.ComputeBatchFn != nil {
		return m.ComputeBatchFn(ctx, reqs)
	}
	return nil, m.DefaultError
}

// Compatibility implements the ChartService.Compatibility method
func (m *MockChartService) Compatibility(ctx context.Context, a, b service.ChartRequest) (*domain.CompatibilityResult, error) {
	if m.CompatibilityFn != nil {
		return m.CompatibilityFn(ctx, a, b)
	}
	return nil, m.DefaultError
}

// CompatibilityOf implements the ChartService.CompatibilityOf method
func (m *MockChartService) CompatibilityOf(ctx context.Context, a, b *domain.BirthChart) (*domain.CompatibilityResult, error) {
	if m.CompatibilityOfFn != nil {
		return m.CompatibilityOfFn(ctx, a, b)
	}
	return nil, m.DefaultError
}

// CurrentPositions implements the ChartService.CurrentPositions method
func (m *MockChartService) CurrentPositions(ctx context.Context, at time.Time) ([]domain.BodyPosition, error) {
	if m.CurrentPositionsFn != nil {
		return m.CurrentPositionsFn(ctx, at)
	}
	return nil, m.DefaultError
}

// PersonalTransits implements the ChartService.PersonalTransits method
func (m *MockChartService) PersonalTransits(ctx context.Context, req service.ChartRequest, at time.Time) (*domain.TransitReport, error) {
	if m.PersonalTransitsFn != nil {
		return m.PersonalTransitsFn(ctx, req, at)
	}
	return nil, m.DefaultError
}

// TransitsFor implements the ChartService.TransitsFor method
func (m *MockChartService) TransitsFor(ctx context.Context, natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error) {
	if m.TransitsForFn != nil {
		return m.TransitsForFn(ctx, natal, at)
	}
	return nil, m.DefaultError
}

// DailyHoroscope implements the ChartService.DailyHoroscope method
func (m *MockChartService) DailyHoroscope(ctx context.Context, sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error) {
	if m.DailyHoroscopeFn != nil {
		return m.DailyHoroscopeFn(ctx, sign, date)
	}
	return nil, m.DefaultError
}
