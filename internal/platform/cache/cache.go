// Package cache stores computed charts keyed by their request inputs. A
// Redis implementation serves multi-instance deployments and an in-process
// LRU serves single instances and tests.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/phrazzld/astral-api/internal/domain"
)

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrUnavailable is returned while the backing cache is failing and the
	// circuit breaker rejects calls.
	ErrUnavailable = errors.New("cache: backend unavailable")
)

// ChartCache defines chart cache operations.
type ChartCache interface {
	Get(ctx context.Context, key string) (*domain.BirthChart, error)
	Set(ctx context.Context, key string, chart *domain.BirthChart, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Kind names the backend for logs and metric labels.
	Kind() string
	Close() error
}

// Noop is a ChartCache that never stores anything.
type Noop struct{}

var _ ChartCache = Noop{}

func (Noop) Get(context.Context, string) (*domain.BirthChart, error) { return nil, ErrCacheMiss }

func (Noop) Set(context.Context, string, *domain.BirthChart, time.Duration) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }

func (Noop) Kind() string { return "noop" }

func (Noop) Close() error { return nil }
