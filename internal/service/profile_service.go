package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/store"
)

// ProfileWithChart is a stored profile together with its latest chart.
type ProfileWithChart struct {
	Profile *domain.Profile
	Chart   *domain.BirthChart
}

// ProfileService manages stored birth profiles and their chart snapshots.
type ProfileService interface {
	// CreateProfile validates and stores a profile, then computes and
	// snapshots its chart in the same transaction.
	CreateProfile(ctx context.Context, name string, birth domain.BirthData) (*ProfileWithChart, error)

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// ListProfiles returns a page of profiles, newest first.
	ListProfiles(ctx context.Context, limit, offset int) ([]*domain.Profile, error)

	// ProfileChart returns the latest snapshot of a profile's chart,
	// computing and saving one when none exists.
	ProfileChart(ctx context.Context, id uuid.UUID) (*domain.BirthChart, error)

	// ProfileTransits compares the sky at an instant with a profile's chart.
	ProfileTransits(ctx context.Context, id uuid.UUID, at time.Time) (*domain.TransitReport, error)

	// ProfileCompatibility scores the charts of two stored profiles.
	ProfileCompatibility(ctx context.Context, a, b uuid.UUID) (*domain.CompatibilityResult, error)

	// DeleteProfile removes a profile and its snapshots.
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

type profileServiceImpl struct {
	profiles store.ProfileStore
	charts   store.ChartStore
	db       store.TxBeginner
	chartSvc ChartService
	logger   *slog.Logger
}

// NewProfileService creates a ProfileService. When db is nil the stores are
// used directly, which suits stores without transactions such as memstore.
func NewProfileService(
	profiles store.ProfileStore,
	charts store.ChartStore,
	db store.TxBeginner,
	chartSvc ChartService,
	logger *slog.Logger,
) (ProfileService, error) {
	if profiles == nil || charts == nil {
		return nil, &ChartServiceError{
			Operation: "create_service",
			Message:   "profile and chart stores cannot be nil",
		}
	}
	if chartSvc == nil {
		return nil, &ChartServiceError{
			Operation: "create_service",
			Message:   "chart service cannot be nil",
		}
	}
	if logger == nil {
		return nil, &ChartServiceError{
			Operation: "create_service",
			Message:   "logger cannot be nil",
		}
	}

	return &profileServiceImpl{
		profiles: profiles,
		charts:   charts,
		db:       db,
		chartSvc: chartSvc,
		logger:   logger.With(slog.String("component", "profile_service")),
	}, nil
}

// withStores runs fn against transaction-bound stores when a database is
// configured, and against the plain stores otherwise.
func (s *profileServiceImpl) withStores(
	ctx context.Context,
	fn func(ctx context.Context, profiles store.ProfileStore, charts store.ChartStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.profiles, s.charts)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.profiles.WithTx(tx), s.charts.WithTx(tx))
	})
}

// CreateProfile implements ProfileService.CreateProfile
func (s *profileServiceImpl) CreateProfile(
	ctx context.Context,
	name string,
	birth domain.BirthData,
) (*ProfileWithChart, error) {
	profile, err := domain.NewProfile(name, birth)
	if err != nil {
		s.logger.Debug("rejected profile", slog.String("error", err.Error()))
		return nil, err
	}

	chart, err := s.chartSvc.ComputeChart(ctx, ChartRequest{Birth: birth, Name: profile.Name})
	if err != nil {
		return nil, err
	}

	err = s.withStores(ctx, func(ctx context.Context, profiles store.ProfileStore, charts store.ChartStore) error {
		if err := profiles.Create(ctx, profile); err != nil {
			return err
		}
		return charts.Save(ctx, profile.ID, chart)
	})
	if err != nil {
		s.logger.Error("failed to store profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return nil, NewChartServiceError("create_profile", "failed to store profile", err)
	}

	s.logger.Info("profile created",
		slog.String("profile_id", profile.ID.String()),
		slog.String("chart_id", chart.ID.String()))
	return &ProfileWithChart{Profile: profile, Chart: chart}, nil
}

// GetProfile implements ProfileService.GetProfile
func (s *profileServiceImpl) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("profile not found", slog.String("profile_id", id.String()))
		} else {
			s.logger.Error("failed to retrieve profile",
				slog.String("error", err.Error()),
				slog.String("profile_id", id.String()))
		}
		return nil, NewChartServiceError("get_profile", "failed to retrieve profile", err)
	}
	return profile, nil
}

// ListProfiles implements ProfileService.ListProfiles
func (s *profileServiceImpl) ListProfiles(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	profiles, err := s.profiles.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, NewChartServiceError("list_profiles", "failed to list profiles", err)
	}
	return profiles, nil
}

// ProfileChart implements ProfileService.ProfileChart
func (s *profileServiceImpl) ProfileChart(ctx context.Context, id uuid.UUID) (*domain.BirthChart, error) {
	chart, err := s.charts.Latest(ctx, id)
	if err == nil {
		return chart, nil
	}
	if !errors.Is(err, store.ErrChartNotFound) {
		s.logger.Error("failed to load chart snapshot",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, NewChartServiceError("profile_chart", "failed to load chart snapshot", err)
	}

	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	chart, err = s.chartSvc.ComputeChart(ctx, ChartRequest{Birth: profile.BirthData, Name: profile.Name})
	if err != nil {
		return nil, err
	}
	if err := s.charts.Save(ctx, id, chart); err != nil {
		return nil, NewChartServiceError("profile_chart", "failed to save chart snapshot", err)
	}

	s.logger.Info("chart snapshot computed on demand",
		slog.String("profile_id", id.String()),
		slog.String("chart_id", chart.ID.String()))
	return chart, nil
}

// ProfileTransits implements ProfileService.ProfileTransits
func (s *profileServiceImpl) ProfileTransits(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) (*domain.TransitReport, error) {
	chart, err := s.ProfileChart(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.chartSvc.TransitsFor(ctx, chart, at)
}

// ProfileCompatibility implements ProfileService.ProfileCompatibility
func (s *profileServiceImpl) ProfileCompatibility(
	ctx context.Context,
	a, b uuid.UUID,
) (*domain.CompatibilityResult, error) {
	first, err := s.ProfileChart(ctx, a)
	if err != nil {
		return nil, err
	}
	second, err := s.ProfileChart(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.chartSvc.CompatibilityOf(ctx, first, second)
}

// DeleteProfile implements ProfileService.DeleteProfile
func (s *profileServiceImpl) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	var removed int
	err := s.withStores(ctx, func(ctx context.Context, profiles store.ProfileStore, charts store.ChartStore) error {
		var err error
		if removed, err = charts.DeleteByProfile(ctx, id); err != nil {
			return err
		}
		return profiles.Delete(ctx, id)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete profile",
				slog.String("error", err.Error()),
				slog.String("profile_id", id.String()))
		}
		return NewChartServiceError("delete_profile", "failed to delete profile", err)
	}

	s.logger.Info("profile deleted",
		slog.String("profile_id", id.String()),
		slog.Int("snapshots_removed", removed))
	return nil
}
