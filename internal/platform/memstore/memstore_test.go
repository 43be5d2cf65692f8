package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/platform/memstore"
	"github.com/phrazzld/astral-api/internal/store"
)

func newProfile(t *testing.T, name string, created time.Time) *domain.Profile {
	t.Helper()

	dt, err := domain.NewLocalDateTime(1990, time.June, 15, 14, 30, 0)
	require.NoError(t, err)
	birth, err := domain.NewBirthData(dt, "Europe/London", 51.5074, -0.1278, "London", true)
	require.NoError(t, err)
	p, err := domain.NewProfile(name, birth)
	require.NoError(t, err)
	p.CreatedAt = created
	return p
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	profiles := memstore.New().Profiles()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := newProfile(t, "First", base)
	second := newProfile(t, "Second", base.Add(time.Hour))
	require.NoError(t, profiles.Create(ctx, first))
	require.NoError(t, profiles.Create(ctx, second))

	assert.ErrorIs(t, profiles.Create(ctx, first), store.ErrProfileExists)

	invalid := newProfile(t, "Invalid", base)
	invalid.Name = ""
	assert.ErrorIs(t, profiles.Create(ctx, invalid), store.ErrInvalidEntity)

	got, err := profiles.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)

	got.Name = "Mutated"
	again, err := profiles.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", again.Name, "callers receive copies")

	list, err := profiles.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name, "newest first")

	page, err := profiles.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "First", page[0].Name)

	empty, err := profiles.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, profiles.Delete(ctx, first.ID))
	_, err = profiles.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
	assert.ErrorIs(t, profiles.Delete(ctx, first.ID), store.ErrProfileNotFound)
}

func TestCharts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()
	profiles, charts := s.Profiles(), s.Charts()

	p := newProfile(t, "Owner", time.Now().UTC())
	require.NoError(t, profiles.Create(ctx, p))

	_, err := charts.Latest(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrChartNotFound)

	older := &domain.BirthChart{ID: uuid.New(), Name: "older"}
	newer := &domain.BirthChart{ID: uuid.New(), Name: "newer"}
	require.NoError(t, charts.Save(ctx, p.ID, older))
	require.NoError(t, charts.Save(ctx, p.ID, newer))

	latest, err := charts.Latest(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "newer", latest.Name)

	require.NoError(t, charts.Save(ctx, p.ID, older), "re-saving moves a snapshot to the front")
	latest, err = charts.Latest(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "older", latest.Name)

	assert.ErrorIs(t, charts.Save(ctx, uuid.New(), older), store.ErrProfileNotFound)

	require.NoError(t, profiles.Delete(ctx, p.ID))
	n, err := charts.DeleteByProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "profile deletion already removed the snapshots")
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memstore.New()
	profiles, charts := s.Profiles(), s.Charts()

	batch := make([]*domain.Profile, 20)
	for i := range batch {
		batch[i] = newProfile(t, "Concurrent", time.Now().UTC())
	}

	var wg sync.WaitGroup
	for _, p := range batch {
		wg.Add(1)
		go func(p *domain.Profile) {
			defer wg.Done()
			if err := profiles.Create(ctx, p); err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if err := charts.Save(ctx, p.ID, &domain.BirthChart{ID: uuid.New()}); err != nil {
				t.Errorf("save: %v", err)
			}
		}(p)
	}
	wg.Wait()

	list, err := profiles.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
