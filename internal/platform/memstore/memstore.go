package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/store"
)

type snapshot struct {
	chart   *domain.BirthChart
	savedAt time.Time
	seq     uint64
}

// Store holds profiles and their chart snapshots behind one mutex, so that
// deleting a profile and its snapshots is atomic.
type Store struct {
	mu        sync.RWMutex
	profiles  map[uuid.UUID]*domain.Profile
	snapshots map[uuid.UUID]map[uuid.UUID]snapshot
	seq       uint64
	now       func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		profiles:  make(map[uuid.UUID]*domain.Profile),
		snapshots: make(map[uuid.UUID]map[uuid.UUID]snapshot),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Profiles returns the store.ProfileStore view of s.
func (s *Store) Profiles() store.ProfileStore { return profileView{s} }

// Charts returns the store.ChartStore view of s.
func (s *Store) Charts() store.ChartStore { return chartView{s} }

type profileView struct{ s *Store }

var _ store.ProfileStore = profileView{}

func (v profileView) Create(ctx context.Context, profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, exists := v.s.profiles[profile.ID]; exists {
		return store.ErrProfileExists
	}
	cp := *profile
	v.s.profiles[profile.ID] = &cp
	return nil
}

func (v profileView) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	p, ok := v.s.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (v profileView) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	v.s.mu.RLock()
	all := make([]*domain.Profile, 0, len(v.s.profiles))
	for _, p := range v.s.profiles {
		cp := *p
		all = append(all, &cp)
	}
	v.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*domain.Profile{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (v profileView) Delete(ctx context.Context, id uuid.UUID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.profiles[id]; !ok {
		return store.ErrProfileNotFound
	}
	delete(v.s.profiles, id)
	delete(v.s.snapshots, id)
	return nil
}

func (v profileView) WithTx(*sql.Tx) store.ProfileStore { return v }

type chartView struct{ s *Store }

var _ store.ChartStore = chartView{}

func (v chartView) Save(ctx context.Context, profileID uuid.UUID, chart *domain.BirthChart) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.profiles[profileID]; !ok {
		return store.ErrProfileNotFound
	}
	byChart, ok := v.s.snapshots[profileID]
	if !ok {
		byChart = make(map[uuid.UUID]snapshot)
		v.s.snapshots[profileID] = byChart
	}
	v.s.seq++
	cp := *chart
	byChart[chart.ID] = snapshot{chart: &cp, savedAt: v.s.now(), seq: v.s.seq}
	return nil
}

func (v chartView) Latest(ctx context.Context, profileID uuid.UUID) (*domain.BirthChart, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var (
		latest snapshot
		found  bool
	)
	for _, snap := range v.s.snapshots[profileID] {
		if !found || snap.seq > latest.seq {
			latest, found = snap, true
		}
	}
	if !found {
		return nil, store.ErrChartNotFound
	}
	cp := *latest.chart
	return &cp, nil
}

func (v chartView) DeleteByProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	n := len(v.s.snapshots[profileID])
	delete(v.s.snapshots, profileID)
	return n, nil
}

func (v chartView) WithTx(*sql.Tx) store.ChartStore { return v }
