//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/astral-api/internal/ciutil"
	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/domain/astro"
	"github.com/phrazzld/astral-api/internal/platform/postgres"
	"github.com/phrazzld/astral-api/internal/store"
)

// testDB is shared by every test in this file; migrations run once.
var testDB *sql.DB

func TestMain(m *testing.M) {
	dbURL := ciutil.TestDatabaseURL(slog.Default())
	if dbURL == "" {
		fmt.Println("ASTRAL_TEST_DATABASE_URL not set, skipping postgres integration tests")
		os.Exit(0)
	}

	var err error
	testDB, err = sql.Open("pgx", dbURL)
	if err != nil {
		fmt.Printf("Failed to open database connection: %v\n", err)
		os.Exit(1)
	}
	testDB.SetMaxOpenConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := testDB.PingContext(ctx); err != nil {
		fmt.Printf("Failed to ping database: %v\n", err)
		os.Exit(1)
	}

	if err := postgres.Migrate(testDB, "up", nil); err != nil {
		fmt.Printf("Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	_ = testDB.Close()
	os.Exit(code)
}

// withTx runs fn inside a transaction that is always rolled back.
func withTx(t *testing.T, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := testDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	fn(tx)
}

func newTestProfile(t *testing.T) *domain.Profile {
	t.Helper()

	dt, err := domain.NewLocalDateTime(1990, time.June, 15, 14, 30, 0)
	require.NoError(t, err)
	birth, err := domain.NewBirthData(dt, "America/New_York", 40.7128, -74.0060, "New York", true)
	require.NoError(t, err)
	p, err := domain.NewProfile("Test Person", birth)
	require.NoError(t, err)
	return p
}

func TestProfileStoreRoundTrip(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		profiles := postgres.NewPostgresProfileStore(tx, nil)

		p := newTestProfile(t)
		require.NoError(t, profiles.Create(ctx, p))

		got, err := profiles.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.BirthData.DateTime, got.BirthData.DateTime)
		assert.Equal(t, p.BirthData.TimeZone, got.BirthData.TimeZone)
		assert.InDelta(t, p.BirthData.Latitude, got.BirthData.Latitude, 1e-9)

		err = profiles.Create(ctx, p)
		assert.ErrorIs(t, err, store.ErrProfileExists)

		list, err := profiles.List(ctx, 10, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, list)

		require.NoError(t, profiles.Delete(ctx, p.ID))
		_, err = profiles.GetByID(ctx, p.ID)
		assert.ErrorIs(t, err, store.ErrProfileNotFound)
		assert.ErrorIs(t, profiles.Delete(ctx, p.ID), store.ErrProfileNotFound)
	})
}

func TestChartStoreSnapshots(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		profiles := postgres.NewPostgresProfileStore(tx, nil)
		charts := postgres.NewPostgresChartStore(tx, nil)

		p := newTestProfile(t)
		require.NoError(t, profiles.Create(ctx, p))

		_, err := charts.Latest(ctx, p.ID)
		assert.ErrorIs(t, err, store.ErrChartNotFound)

		chart, err := astro.NewDefault().ComputeChart(p.BirthData)
		require.NoError(t, err)
		chart.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

		require.NoError(t, charts.Save(ctx, p.ID, chart))
		require.NoError(t, charts.Save(ctx, p.ID, chart), "saving the same chart replaces it")

		got, err := charts.Latest(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, chart.ID, got.ID)
		assert.Equal(t, chart.Summary, got.Summary)
		assert.Len(t, got.Houses, domain.HouseCount)

		err = charts.Save(ctx, uuid.New(), chart)
		assert.ErrorIs(t, err, store.ErrProfileNotFound)

		n, err := charts.DeleteByProfile(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestRunInTransaction(t *testing.T) {
	ctx := context.Background()
	p := newTestProfile(t)

	sentinel := fmt.Errorf("abort")
	err := store.RunInTransaction(ctx, testDB, func(ctx context.Context, tx *sql.Tx) error {
		if err := postgres.NewPostgresProfileStore(tx, nil).Create(ctx, p); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	_, err = postgres.NewPostgresProfileStore(testDB, nil).GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrProfileNotFound, "rolled back profile must not exist")

	err = store.RunInTransaction(ctx, testDB, func(ctx context.Context, tx *sql.Tx) error {
		return postgres.NewPostgresProfileStore(tx, nil).Create(ctx, p)
	})
	require.NoError(t, err)
	defer func() { _ = postgres.NewPostgresProfileStore(testDB, nil).Delete(ctx, p.ID) }()

	_, err = postgres.NewPostgresProfileStore(testDB, nil).GetByID(ctx, p.ID)
	assert.NoError(t, err)
}
