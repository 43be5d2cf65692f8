package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/service"
)

// MockProfileService implements service.ProfileService for testing
type MockProfileService struct {
	CreateProfileFn        func(ctx context.Context, name string, birth domain.BirthData) (*service.ProfileWithChart, error)
	GetProfileFn           func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListProfilesFn         func(ctx context.Context, limit, offset int) ([]*domain.Profile, error)
	ProfileChartFn         func(ctx context.Context, id uuid.UUID) (*domain.BirthChart, error)
	ProfileTransitsFn      func(ctx context.Context, id uuid.UUID, at time.Time) (*domain.TransitReport, error)
	ProfileCompatibilityFn func(ctx context.Context, a, b uuid.UUID) (*domain.CompatibilityResult, error)
	DeleteProfileFn        func(ctx context.Context, id uuid.UUID) error

	DefaultError error
}

var _ service.ProfileService = (*MockProfileService)(nil)

// CreateProfile implements the ProfileService.CreateProfile method
func (m *MockProfileService) CreateProfile(ctx context.Context, name string, birth domain.BirthData) (*service.ProfileWithChart, error) {
	if m.CreateProfileFn != nil {
		return m.CreateProfileFn(ctx, name, birth)
	}
	return nil, m.DefaultError
}

// GetProfile implements the ProfileService.GetProfile method
func (m *MockProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, id)
	}
	return nil, m.DefaultError
}

// ListProfiles implements the ProfileService.ListProfiles method
func (m *MockProfileService) ListProfiles(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	if m.ListProfilesFn != nil {
		return m.ListProfilesFn(ctx, limit, offset)
	}
	return nil, m.DefaultError
}

// ProfileChart implements the ProfileService.ProfileChart method
func (m *MockProfileService) ProfileChart(ctx context.Context, id uuid.UUID) (*domain.BirthChart, error) {
	if m.ProfileChartFn != nil {
		return m.ProfileChartFn(ctx, id)
	}
	return nil, m.DefaultError
}

// ProfileTransits implements the ProfileService.ProfileTransits method
func (m *MockProfileService) ProfileTransits(ctx context.Context, id uuid.UUID, at time.Time) (*domain.TransitReport, error) {
	if m.ProfileTransitsFn != nil {
		return m.ProfileTransitsFn(ctx, id, at)
	}
	return nil, m.DefaultError
}

// ProfileCompatibility implements the ProfileService.ProfileCompatibility method
func (m *MockProfileService) ProfileCompatibility(ctx context.Context, a, b uuid.UUID) (*domain.CompatibilityResult, error) {
	if m.ProfileCompatibilityFn != nil {
		return m.ProfileCompatibilityFn(ctx, a, b)
	}
	return nil, m.DefaultError
}

// DeleteProfile implements the ProfileService.DeleteProfile method
func (m *MockProfileService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if m.DeleteProfileFn != nil {
		return m.DeleteProfileFn(ctx, id)
	}
	return m.DefaultError
}
