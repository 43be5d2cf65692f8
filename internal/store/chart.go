package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
)

// ChartStore persists computed chart snapshots keyed by profile.
type ChartStore interface {
	// Save stores the chart as the latest snapshot of the profile. Saving the
	// same chart ID twice replaces the earlier snapshot.
	// Returns ErrProfileNotFound if the profile does not exist.
	Save(ctx context.Context, profileID uuid.UUID, chart *domain.BirthChart) error

	// Latest returns the most recently saved snapshot for the profile.
	// Returns ErrChartNotFound if there is none.
	Latest(ctx context.Context, profileID uuid.UUID) (*domain.BirthChart, error)

	// DeleteByProfile removes every snapshot of the profile and reports how
	// many were removed.
	DeleteByProfile(ctx context.Context, profileID uuid.UUID) (int, error)

	// WithTx returns a new ChartStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ChartStore
}
