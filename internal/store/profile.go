package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
)

// ProfileStore defines the interface for birth profile persistence.
type ProfileStore interface {
	// Create saves a new profile. The profile is validated first.
	// Returns ErrProfileExists if the ID is already taken and
	// ErrInvalidEntity for invalid profiles.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile by its ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// List returns up to limit profiles ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.Profile, error)

	// Delete removes a profile by ID. Chart snapshots of the profile are
	// removed with it.
	// Returns ErrProfileNotFound if the profile does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProfileStore instance that uses the provided transaction.
	// Implementations without transactions return themselves.
	WithTx(tx *sql.Tx) ProfileStore
}
