package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/platform/logger"
	"github.com/phrazzld/astral-api/internal/store"
)

const defaultListLimit = 50

// PostgresProfileStore implements store.ProfileStore using PostgreSQL.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a profile store over a connection or
// transaction owned by the caller. If logger is nil, the default is used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProfileStore.Create
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO profiles (id, name, local_datetime, time_zone, latitude, longitude,
			place_name, is_time_exact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	birth := profile.BirthData
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Name,
		birth.DateTime.String(),
		birth.TimeZone,
		birth.Latitude,
		birth.Longitude,
		birth.PlaceName,
		birth.IsTimeExact,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("profile already exists", slog.String("profile_id", profile.ID.String()))
			return MapUniqueViolation(err, "profile", store.ErrProfileExists)
		}
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return MapError(err)
	}

	log.Info("profile created successfully", slog.String("profile_id", profile.ID.String()))
	return nil
}

// GetByID implements store.ProfileStore.GetByID
func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, local_datetime, time_zone, latitude, longitude,
			place_name, is_time_exact, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("profile_id", id.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile by ID",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, err
	}
	return profile, nil
}

// List implements store.ProfileStore.List
func (s *PostgresProfileStore) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, local_datetime, time_zone, latitude, longitude,
			place_name, is_time_exact, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	profiles := []*domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("failed to scan profile row", slog.String("error", err.Error()))
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return profiles, nil
}

// Delete implements store.ProfileStore.Delete. Snapshots go with the
// profile through ON DELETE CASCADE.
func (s *PostgresProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrProfileNotFound); err != nil {
		return err
	}

	log.Info("profile deleted successfully", slog.String("profile_id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		p        domain.Profile
		localRaw string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&localRaw,
		&p.BirthData.TimeZone,
		&p.BirthData.Latitude,
		&p.BirthData.Longitude,
		&p.BirthData.PlaceName,
		&p.BirthData.IsTimeExact,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	dt, err := domain.ParseLocalDateTime(localRaw)
	if err != nil {
		return nil, fmt.Errorf("stored profile %s: %w", p.ID, err)
	}
	p.BirthData.DateTime = dt
	return &p, nil
}
