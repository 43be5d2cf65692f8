package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/domain/astro"
	"github.com/phrazzld/astral-api/internal/mocks"
	"github.com/phrazzld/astral-api/internal/platform/cache"
	"github.com/phrazzld/astral-api/internal/platform/logger"
	"github.com/phrazzld/astral-api/internal/service"
)

func birthAt(year int, month time.Month, day, hour, minute int, zone string, lat, lon float64) domain.BirthData {
	return domain.BirthData{
		DateTime:    domain.LocalDateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute},
		TimeZone:    zone,
		Latitude:    lat,
		Longitude:   lon,
		IsTimeExact: true,
	}
}

func londonBirth() domain.BirthData {
	return birthAt(2000, time.January, 1, 12, 0, "Europe/London", 51.5074, -0.1278)
}

func newYorkBirth() domain.BirthData {
	return birthAt(1990, time.June, 15, 14, 30, "America/New_York", 40.7128, -74.0060)
}

func newChartService(
	t *testing.T,
	engine astro.Engine,
	chartCache cache.ChartCache,
	recorder service.Metrics,
) (service.ChartService, *logger.TestLogBuffer) {
	t.Helper()
	log, buf := logger.GetTestLogger(t)
	svc, err := service.NewChartService(engine, chartCache, recorder,
		service.ChartServiceConfig{CacheTTL: time.Hour, BatchWorkers: 4}, log)
	require.NoError(t, err)
	return svc, buf
}

// failingCache reports every operation as unavailable.
type failingCache struct{}

func (failingCache) Get(context.Context, string) (*domain.BirthChart, error) {
	return nil, cache.ErrUnavailable
}

func (failingCache) Set(context.Context, string, *domain.BirthChart, time.Duration) error {
	return cache.ErrUnavailable
}

func (failingCache) Delete(context.Context, ...string) error { return cache.ErrUnavailable }
func (failingCache) Kind() string                            { return "failing" }
func (failingCache) Close() error                            { return nil }

func TestNewChartServiceValidation(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)

	_, err := service.NewChartService(nil, nil, nil, service.ChartServiceConfig{}, log)
	require.Error(t, err)
	var svcErr *service.ChartServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_service", svcErr.Operation)

	_, err = service.NewChartService(astro.NewDefault(), nil, nil, service.ChartServiceConfig{}, nil)
	require.Error(t, err)

	svc, err := service.NewChartService(astro.NewDefault(), nil, nil, service.ChartServiceConfig{}, log)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestComputeChartCachesResult(t *testing.T) {
	t.Parallel()

	recorder := &mocks.TestifyMockMetrics{}
	recorder.On("RecordCacheLookup", "memory", "miss").Once()
	recorder.On("RecordCacheLookup", "memory", "hit").Once()
	recorder.On("RecordComputation", "chart", mock.AnythingOfType("time.Duration"), nil).Once()

	memCache := cache.NewMemoryCache(10)
	svc, _ := newChartService(t, astro.NewDefault(), memCache, recorder)

	ctx := context.Background()
	req := service.ChartRequest{Birth: londonBirth(), Name: "Millennium"}

	first, err := svc.ComputeChart(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Millennium", first.Name)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, domain.Capricorn, first.Summary.SunSign)
	assert.Equal(t, 1, memCache.Len())

	second, err := svc.ComputeChart(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Summary, second.Summary)

	recorder.AssertExpectations(t)
}

func TestComputeChartCacheKeyDependsOnOptions(t *testing.T) {
	t.Parallel()

	memCache := cache.NewMemoryCache(10)
	svc, _ := newChartService(t, astro.NewDefault(), memCache, nil)
	ctx := context.Background()
	minor := true

	requests := []service.ChartRequest{
		{Birth: londonBirth()},
		{Birth: londonBirth(), HouseSystem: domain.HouseSystemEqual},
		{Birth: londonBirth(), IncludeMinorAspects: &minor},
		{Birth: londonBirth(), Name: "Someone"},
		{Birth: newYorkBirth()},
	}
	for _, req := range requests {
		_, err := svc.ComputeChart(ctx, req)
		require.NoError(t, err)
	}
	assert.Equal(t, len(requests), memCache.Len())

	// The default system named explicitly is the same request as no system.
	_, err := svc.ComputeChart(ctx, service.ChartRequest{
		Birth:       londonBirth(),
		HouseSystem: domain.HouseSystemPorphyry,
	})
	require.NoError(t, err)
	assert.Equal(t, len(requests), memCache.Len())
}

func TestComputeChartKeepsRequestPlaceName(t *testing.T) {
	t.Parallel()

	memCache := cache.NewMemoryCache(10)
	svc, _ := newChartService(t, astro.NewDefault(), memCache, nil)
	ctx := context.Background()

	london := londonBirth()
	london.PlaceName = "London"
	greenwich := londonBirth()
	greenwich.PlaceName = "Greenwich"

	first, err := svc.ComputeChart(ctx, service.ChartRequest{Birth: london})
	require.NoError(t, err)
	second, err := svc.ComputeChart(ctx, service.ChartRequest{Birth: greenwich})
	require.NoError(t, err)

	assert.Equal(t, "London", first.BirthData.PlaceName)
	assert.Equal(t, "Greenwich", second.BirthData.PlaceName)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, 2, memCache.Len())

	again, err := svc.ComputeChart(ctx, service.ChartRequest{Birth: london})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "London", again.BirthData.PlaceName)
}

func TestCreateProfileSnapshotsOwnPlaceName(t *testing.T) {
	t.Parallel()

	svc, mem := newProfileService(t, nil)
	ctx := context.Background()

	home := londonBirth()
	home.PlaceName = "London"
	away := londonBirth()
	away.PlaceName = "Greenwich"

	first, err := svc.CreateProfile(ctx, "Ada", home)
	require.NoError(t, err)
	second, err := svc.CreateProfile(ctx, "Ada", away)
	require.NoError(t, err)

	snapshot, err := mem.Charts().Latest(ctx, second.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greenwich", snapshot.BirthData.PlaceName)
	assert.Equal(t, "London", first.Chart.BirthData.PlaceName)
}

func TestComputeChartHouseSystemOption(t *testing.T) {
	t.Parallel()

	svc, _ := newChartService(t, astro.NewDefault(), nil, nil)
	chart, err := svc.ComputeChart(context.Background(), service.ChartRequest{
		Birth:       londonBirth(),
		HouseSystem: domain.HouseSystemEqual,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.HouseSystemEqual, chart.HouseSystem)
}

func TestComputeChartRejectsInvalidBirthData(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		birth   domain.BirthData
		wantErr error
	}{
		{
			name:    "latitude out of range",
			birth:   birthAt(2000, time.January, 1, 12, 0, "UTC", 95, 0),
			wantErr: domain.ErrInvalidLocation,
		},
		{
			name:    "longitude out of range",
			birth:   birthAt(2000, time.January, 1, 12, 0, "UTC", 0, 181),
			wantErr: domain.ErrInvalidLocation,
		},
		{
			name:    "unknown time zone",
			birth:   birthAt(2000, time.January, 1, 12, 0, "Mars/Olympus_Mons", 0, 0),
			wantErr: domain.ErrUnknownTimeZone,
		},
		{
			name:    "impossible date",
			birth:   birthAt(2001, time.February, 29, 12, 0, "UTC", 0, 0),
			wantErr: domain.ErrInvalidDateTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			engine := &mocks.TestifyMockEngine{}
			svc, _ := newChartService(t, engine, nil, nil)

			chart, err := svc.ComputeChart(context.Background(), service.ChartRequest{Birth: tc.birth})
			assert.Nil(t, chart)
			assert.ErrorIs(t, err, tc.wantErr)
			engine.AssertNotCalled(t, "ComputeChart", mock.Anything)
		})
	}
}

func TestComputeChartEngineFailure(t *testing.T) {
	t.Parallel()

	engine := &mocks.TestifyMockEngine{}
	engine.On("ComputeChart", mock.Anything).Return(nil, errors.New("ephemeris unavailable"))

	recorder := &mocks.TestifyMockMetrics{}
	recorder.On("RecordCacheLookup", "noop", "miss").Once()
	recorder.On("RecordComputation", "chart", mock.AnythingOfType("time.Duration"), mock.Anything).Once()

	svc, buf := newChartService(t, engine, nil, recorder)

	_, err := svc.ComputeChart(context.Background(), service.ChartRequest{Birth: londonBirth()})
	require.Error(t, err)

	var svcErr *service.ChartServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "compute_chart", svcErr.Operation)
	assert.Contains(t, err.Error(), "ephemeris unavailable")

	entry, found := logger.FindEntry(t, buf, "chart computation failed")
	require.True(t, found)
	assert.Equal(t, "51.5,-0.1", entry["location"])

	engine.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestComputeChartHouseFallbackIsLogged(t *testing.T) {
	t.Parallel()

	recorder := &mocks.TestifyMockMetrics{}
	recorder.On("RecordCacheLookup", mock.Anything, mock.Anything).Maybe()
	recorder.On("RecordComputation", mock.Anything, mock.Anything, mock.Anything).Maybe()
	recorder.On("RecordHouseFallback").Once()

	svc, buf := newChartService(t, astro.NewDefault(), nil, recorder)

	chart, err := svc.ComputeChart(context.Background(), service.ChartRequest{
		Birth: birthAt(2000, time.January, 1, 12, 0, "UTC", 70, 0),
	})
	require.NoError(t, err)
	assert.True(t, chart.HouseFallback)
	assert.Equal(t, domain.HouseSystemEqual, chart.HouseSystem)

	entry, found := logger.FindEntry(t, buf, "quadrant houses degenerate, using equal houses")
	require.True(t, found)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "porphyry", entry["requested_system"])
	assert.Equal(t, "70.0,0.0", entry["location"])

	recorder.AssertExpectations(t)
}

func TestComputeChartSurvivesCacheOutage(t *testing.T) {
	t.Parallel()

	recorder := &mocks.TestifyMockMetrics{}
	recorder.On("RecordCacheLookup", "failing", "error").Once()
	recorder.On("RecordComputation", "chart", mock.Anything, nil).Once()

	svc, buf := newChartService(t, astro.NewDefault(), failingCache{}, recorder)

	chart, err := svc.ComputeChart(context.Background(), service.ChartRequest{Birth: londonBirth()})
	require.NoError(t, err)
	assert.NotNil(t, chart)

	_, found := logger.FindEntry(t, buf, "chart cache unavailable, computing directly")
	assert.True(t, found)
	_, found = logger.FindEntry(t, buf, "failed to cache chart")
	assert.True(t, found)

	recorder.AssertExpectations(t)
}

func TestComputeBatch(t *testing.T) {
	t.Parallel()

	recorder := &mocks.TestifyMockMetrics{}
	recorder.On("RecordBatch", 3).Once()
	recorder.On("RecordCacheLookup", mock.Anything, mock.Anything).Maybe()
	recorder.On("RecordComputation", mock.Anything, mock.Anything, mock.Anything).Maybe()

	svc, _ := newChartService(t, astro.NewDefault(), cache.NewMemoryCache(10), recorder)

	results, err := svc.ComputeBatch(context.Background(), []service.ChartRequest{
		{Birth: londonBirth(), Name: "first"},
		{Birth: birthAt(2000, time.January, 1, 12, 0, "UTC", 95, 0)},
		{Birth: newYorkBirth(), Name: "third"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	require.NoError(t, results[0].Err)
	assert.Equal(t, "first", results[0].Chart.Name)
	assert.ErrorIs(t, results[1].Err, domain.ErrInvalidLocation)
	assert.Nil(t, results[1].Chart)
	require.NoError(t, results[2].Err)
	assert.Equal(t, "third", results[2].Chart.Name)

	recorder.AssertExpectations(t)
}

func TestComputeBatchLimits(t *testing.T) {
	t.Parallel()

	svc, _ := newChartService(t, astro.NewDefault(), nil, nil)
	ctx := context.Background()

	_, err := svc.ComputeBatch(ctx, nil)
	assert.ErrorIs(t, err, service.ErrEmptyBatch)

	tooMany := make([]service.ChartRequest, service.MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = service.ChartRequest{Birth: londonBirth()}
	}
	_, err = svc.ComputeBatch(ctx, tooMany)
	assert.ErrorIs(t, err, service.ErrBatchTooLarge)

	results, err := svc.ComputeBatch(ctx, tooMany[:service.MaxBatchSize])
	require.NoError(t, err)
	assert.Len(t, results, service.MaxBatchSize)
}

func TestComputeBatchCancelled(t *testing.T) {
	t.Parallel()

	svc, _ := newChartService(t, astro.NewDefault(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := svc.ComputeBatch(ctx, []service.ChartRequest{
		{Birth: londonBirth()},
		{Birth: newYorkBirth()},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestCompatibility(t *testing.T) {
	t.Parallel()

	svc, _ := newChartService(t, astro.NewDefault(), nil, nil)
	ctx := context.Background()

	result, err := svc.Compatibility(ctx,
		service.ChartRequest{Birth: londonBirth()},
		service.ChartRequest{Birth: newYorkBirth()})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	assert.NotEmpty(t, result.Interpretation)

	_, err = svc.Compatibility(ctx,
		service.ChartRequest{Birth: londonBirth()},
		service.ChartRequest{Birth: birthAt(2000, time.January, 1, 12, 0, "Nowhere/City", 0, 0)})
	assert.ErrorIs(t, err, domain.ErrUnknownTimeZone)

	_, err = svc.CompatibilityOf(ctx, nil, nil)
	assert.ErrorIs(t, err, astro.ErrNilChart)
}

func TestCurrentPositions(t *testing.T) {
	t.Parallel()

	svc, _ := newChartService(t, astro.NewDefault(), nil, nil)
	positions, err := svc.CurrentPositions(context.Background(),
		time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, positions, len(domain.Planets()))

	for _, p := range positions {
		assert.GreaterOrEqual(t, p.Longitude, 0.0)
		assert.Less(t, p.Longitude, 360.0)
	}
	sun := positions[0]
	assert.Equal(t, domain.Sun, sun.Body)
	assert.InDelta(t, 0.0, astro.AngularSeparation(sun.Longitude, 0), 1.5)
}

func TestPersonalTransits(t *testing.T) {
	t.Parallel()

	svc, _ := newChartService(t, astro.NewDefault(), nil, nil)
	at := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	report, err := svc.PersonalTransits(context.Background(), service.ChartRequest{Birth: newYorkBirth()}, at)
	require.NoError(t, err)
	assert.True(t, report.At.Equal(at))
	assert.Len(t, report.Positions, len(domain.Planets()))

	_, err = svc.TransitsFor(context.Background(), nil, at)
	assert.ErrorIs(t, err, astro.ErrNilChart)
}

func TestDailyHoroscope(t *testing.T) {
	t.Parallel()

	svc, _ := newChartService(t, astro.NewDefault(), nil, nil)
	date := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	h, err := svc.DailyHoroscope(context.Background(), domain.Aries, date)
	require.NoError(t, err)
	assert.Equal(t, domain.Aries, h.Sign)
	assert.NotEmpty(t, h.Summary)

	again, err := svc.DailyHoroscope(context.Background(), domain.Aries, date)
	require.NoError(t, err)
	assert.Equal(t, h.LuckyNumbers, again.LuckyNumbers)

	_, err = svc.DailyHoroscope(context.Background(), domain.ZodiacSign(99), date)
	assert.ErrorIs(t, err, domain.ErrInvalidSign)
}
