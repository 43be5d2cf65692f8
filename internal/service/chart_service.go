package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/domain/astro"
	"github.com/phrazzld/astral-api/internal/platform/cache"
	"github.com/phrazzld/astral-api/internal/platform/logger"
	"github.com/phrazzld/astral-api/internal/platform/metrics"
	"github.com/phrazzld/astral-api/internal/redact"
)

// MaxBatchSize bounds the number of charts in one batch request.
const MaxBatchSize = 20

// cacheKeyNamespace scopes request cache keys.
var cacheKeyNamespace = uuid.MustParse("0b7e3c1a-8f2d-4e6b-9c5a-3d1f7a2e9b40")

// Metrics receives service-level measurements.
type Metrics interface {
	RecordComputation(operation string, elapsed time.Duration, err error)
	RecordCacheLookup(backend, result string)
	RecordHouseFallback()
	RecordBatch(size int)
}

// ChartRequest describes one natal chart computation.
type ChartRequest struct {
	Birth       domain.BirthData
	Name        string
	HouseSystem domain.HouseSystem
	// IncludeMinorAspects overrides the engine default when set.
	IncludeMinorAspects *bool
}

// BatchResult is the outcome of one item in a batch, at its request index.
type BatchResult struct {
	Index int
	Chart *domain.BirthChart
	Err   error
}

// ChartService provides chart computation with caching and metrics.
type ChartService interface {
	// ComputeChart returns the natal chart for req, from the cache when possible.
	ComputeChart(ctx context.Context, req ChartRequest) (*domain.BirthChart, error)

	// ComputeBatch computes up to MaxBatchSize charts concurrently. Item
	// failures are reported per result; the returned error is reserved for
	// invalid batches and cancellation.
	ComputeBatch(ctx context.Context, reqs []ChartRequest) ([]BatchResult, error)

	// Compatibility computes both charts and scores their synastry.
	Compatibility(ctx context.Context, a, b ChartRequest) (*domain.CompatibilityResult, error)

	// CompatibilityOf scores two already computed charts.
	CompatibilityOf(ctx context.Context, a, b *domain.BirthChart) (*domain.CompatibilityResult, error)

	// CurrentPositions returns the planets at an instant.
	CurrentPositions(ctx context.Context, at time.Time) ([]domain.BodyPosition, error)

	// PersonalTransits compares the sky at an instant with the natal chart of req.
	PersonalTransits(ctx context.Context, req ChartRequest, at time.Time) (*domain.TransitReport, error)

	// TransitsFor compares the sky at an instant with a computed chart.
	TransitsFor(ctx context.Context, natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error)

	// DailyHoroscope returns the reading for a sign on a calendar date.
	DailyHoroscope(ctx context.Context, sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error)
}

// ChartServiceConfig holds the tunables of the chart service.
type ChartServiceConfig struct {
	CacheTTL     time.Duration
	BatchWorkers int
}

type chartServiceImpl struct {
	engine  astro.Engine
	cache   cache.ChartCache
	metrics Metrics
	cfg     ChartServiceConfig
	now     func() time.Time
	logger  *slog.Logger
}

// NewChartService creates a ChartService. A nil cache disables caching and a
// nil metrics recorder discards measurements.
func NewChartService(
	engine astro.Engine,
	chartCache cache.ChartCache,
	recorder Metrics,
	cfg ChartServiceConfig,
	logger *slog.Logger,
) (ChartService, error) {
	if engine == nil {
		return nil, &ChartServiceError{
			Operation: "create_service",
			Message:   "engine cannot be nil",
		}
	}
	if logger == nil {
		return nil, &ChartServiceError{
			Operation: "create_service",
			Message:   "logger cannot be nil",
		}
	}
	if chartCache == nil {
		chartCache = cache.Noop{}
	}
	if recorder == nil {
		recorder = discardMetrics{}
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = 4
	}

	return &chartServiceImpl{
		engine:  engine,
		cache:   chartCache,
		metrics: recorder,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.With(slog.String("component", "chart_service")),
	}, nil
}

// ComputeChart implements ChartService.ComputeChart
func (s *chartServiceImpl) ComputeChart(ctx context.Context, req ChartRequest) (*domain.BirthChart, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := req.Birth.Validate(); err != nil {
		log.Debug("rejected birth data", slog.String("error", err.Error()))
		return nil, err
	}

	key := s.cacheKey(req)
	if chart, ok := s.cached(ctx, log, key); ok {
		// The cached chart carries the birth data of whoever computed it
		chart.BirthData = req.Birth
		chart.Name = strings.TrimSpace(req.Name)
		return chart, nil
	}

	start := time.Now()
	chart, err := s.engine.ComputeChart(req.Birth, s.chartOptions(req)...)
	s.metrics.RecordComputation("chart", time.Since(start), err)
	if err != nil {
		log.Warn("chart computation failed",
			slog.String("error", redact.Error(err)),
			slog.String("location", redact.Coordinates(req.Birth.Latitude, req.Birth.Longitude)))
		return nil, NewChartServiceError("compute_chart", "engine failed", err)
	}

	if chart.HouseFallback {
		s.metrics.RecordHouseFallback()
		log.Warn("quadrant houses degenerate, using equal houses",
			slog.String("error", astro.ErrDegenerateHouseGeometry.Error()),
			slog.String("requested_system", string(s.requestedSystem(req))),
			slog.String("location", redact.Coordinates(req.Birth.Latitude, req.Birth.Longitude)))
	}
	chart.CreatedAt = s.now()

	if err := s.cache.Set(ctx, key, chart, s.cfg.CacheTTL); err != nil {
		log.Warn("failed to cache chart",
			slog.String("cache", s.cache.Kind()),
			slog.String("error", err.Error()))
	}

	log.Debug("chart computed",
		slog.String("chart_id", chart.ID.String()),
		slog.String("house_system", string(chart.HouseSystem)),
		slog.Int("aspects", len(chart.Aspects)))
	return chart, nil
}

// cached looks key up, treating every cache failure as a miss.
func (s *chartServiceImpl) cached(ctx context.Context, log *slog.Logger, key string) (*domain.BirthChart, bool) {
	chart, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.RecordCacheLookup(s.cache.Kind(), metrics.CacheHit)
		return chart, true
	case errors.Is(err, cache.ErrCacheMiss):
		s.metrics.RecordCacheLookup(s.cache.Kind(), metrics.CacheMiss)
	default:
		s.metrics.RecordCacheLookup(s.cache.Kind(), metrics.CacheError)
		log.Warn("chart cache unavailable, computing directly",
			slog.String("cache", s.cache.Kind()),
			slog.String("error", err.Error()))
	}
	return nil, false
}

// ComputeBatch implements ChartService.ComputeBatch
func (s *chartServiceImpl) ComputeBatch(ctx context.Context, reqs []ChartRequest) ([]BatchResult, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(reqs) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d charts, at most %d", ErrBatchTooLarge, len(reqs), MaxBatchSize)
	}
	s.metrics.RecordBatch(len(reqs))

	results := make([]BatchResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchWorkers)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chart, err := s.ComputeChart(gctx, req)
			results[i] = BatchResult{Index: i, Chart: chart, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Compatibility implements ChartService.Compatibility
func (s *chartServiceImpl) Compatibility(ctx context.Context, a, b ChartRequest) (*domain.CompatibilityResult, error) {
	var first, second *domain.BirthChart
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		first, err = s.ComputeChart(gctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		second, err = s.ComputeChart(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.CompatibilityOf(ctx, first, second)
}

// CompatibilityOf implements ChartService.CompatibilityOf
func (s *chartServiceImpl) CompatibilityOf(ctx context.Context, a, b *domain.BirthChart) (*domain.CompatibilityResult, error) {
	start := time.Now()
	result, err := s.engine.ComputeCompatibility(a, b)
	s.metrics.RecordComputation("compatibility", time.Since(start), err)
	if err != nil {
		return nil, NewChartServiceError("compatibility", "engine failed", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("compatibility computed",
		slog.Float64("score", result.Score),
		slog.Int("aspects", len(result.Aspects)))
	return result, nil
}

// CurrentPositions implements ChartService.CurrentPositions
func (s *chartServiceImpl) CurrentPositions(ctx context.Context, at time.Time) ([]domain.BodyPosition, error) {
	start := time.Now()
	positions, err := s.engine.ComputeCurrentTransits(astro.JulianDayFromTime(at))
	s.metrics.RecordComputation("positions", time.Since(start), err)
	if err != nil {
		return nil, NewChartServiceError("current_positions", "engine failed", err)
	}
	return positions, nil
}

// PersonalTransits implements ChartService.PersonalTransits
func (s *chartServiceImpl) PersonalTransits(ctx context.Context, req ChartRequest, at time.Time) (*domain.TransitReport, error) {
	natal, err := s.ComputeChart(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.TransitsFor(ctx, natal, at)
}

// TransitsFor implements ChartService.TransitsFor
func (s *chartServiceImpl) TransitsFor(ctx context.Context, natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error) {
	start := time.Now()
	report, err := s.engine.ComputeTransits(natal, at)
	s.metrics.RecordComputation("transits", time.Since(start), err)
	if err != nil {
		return nil, NewChartServiceError("transits", "engine failed", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("transits computed",
		slog.Int("transits", len(report.Transits)),
		slog.Int("ingresses", len(report.Ingresses)))
	return report, nil
}

// DailyHoroscope implements ChartService.DailyHoroscope
func (s *chartServiceImpl) DailyHoroscope(ctx context.Context, sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error) {
	start := time.Now()
	h, err := s.engine.ComputeDailyHoroscope(sign, date)
	s.metrics.RecordComputation("horoscope", time.Since(start), err)
	if err != nil {
		return nil, NewChartServiceError("daily_horoscope", "engine failed", err)
	}
	return h, nil
}

func (s *chartServiceImpl) requestedSystem(req ChartRequest) domain.HouseSystem {
	if req.HouseSystem != "" {
		return req.HouseSystem
	}
	return s.engine.Params().HouseSystem
}

func (s *chartServiceImpl) includeMinor(req ChartRequest) bool {
	if req.IncludeMinorAspects != nil {
		return *req.IncludeMinorAspects
	}
	return s.engine.Params().IncludeMinorAspects
}

func (s *chartServiceImpl) chartOptions(req ChartRequest) []astro.ChartOption {
	return []astro.ChartOption{
		astro.WithName(req.Name),
		astro.WithHouseSystem(s.requestedSystem(req)),
		astro.WithMinorAspects(s.includeMinor(req)),
	}
}

// cacheKey identifies a request by every input that shapes the chart.
func (s *chartServiceImpl) cacheKey(req ChartRequest) string {
	b := req.Birth
	raw := strings.Join([]string{
		b.DateTime.String(),
		strings.TrimSpace(b.TimeZone),
		strconv.FormatFloat(b.Latitude, 'f', -1, 64),
		strconv.FormatFloat(b.Longitude, 'f', -1, 64),
		strconv.FormatBool(b.IsTimeExact),
		strings.TrimSpace(b.PlaceName),
		string(s.requestedSystem(req)),
		strconv.FormatBool(s.includeMinor(req)),
		strings.TrimSpace(req.Name),
	}, "|")
	return "chart:" + uuid.NewSHA1(cacheKeyNamespace, []byte(raw)).String()
}

type discardMetrics struct{}

func (discardMetrics) RecordComputation(string, time.Duration, error) {}
func (discardMetrics) RecordCacheLookup(string, string)               {}
func (discardMetrics) RecordHouseFallback()                           {}
func (discardMetrics) RecordBatch(int)                                {}
