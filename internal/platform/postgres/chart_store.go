package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/platform/logger"
	"github.com/phrazzld/astral-api/internal/store"
)

// PostgresChartStore implements store.ChartStore. Charts are stored as JSONB
// snapshots so that schema changes in the chart type don't need migrations.
type PostgresChartStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChartStore creates a chart snapshot store.
func NewPostgresChartStore(db store.DBTX, logger *slog.Logger) *PostgresChartStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChartStore{
		db:     db,
		logger: logger.With(slog.String("component", "chart_store")),
	}
}

var _ store.ChartStore = (*PostgresChartStore)(nil)

// WithTx implements store.ChartStore.WithTx
func (s *PostgresChartStore) WithTx(tx *sql.Tx) store.ChartStore {
	return &PostgresChartStore{
		db:     tx,
		logger: s.logger,
	}
}

// Save implements store.ChartStore.Save
func (s *PostgresChartStore) Save(ctx context.Context, profileID uuid.UUID, chart *domain.BirthChart) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload, err := json.Marshal(chart)
	if err != nil {
		return store.NewStoreError("chart", "save", "failed to encode chart", err)
	}

	createdAt := chart.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO chart_snapshots (profile_id, chart_id, house_system, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id, chart_id)
		DO UPDATE SET house_system = EXCLUDED.house_system,
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at
	`
	_, err = s.db.ExecContext(ctx, query, profileID, chart.ID, string(chart.HouseSystem), payload, createdAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("chart snapshot for unknown profile",
				slog.String("profile_id", profileID.String()))
			return store.ErrProfileNotFound
		}
		log.Error("failed to save chart snapshot",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()),
			slog.String("chart_id", chart.ID.String()))
		return MapError(err)
	}

	log.Debug("chart snapshot saved",
		slog.String("profile_id", profileID.String()),
		slog.String("chart_id", chart.ID.String()))
	return nil
}

// Latest implements store.ChartStore.Latest
func (s *PostgresChartStore) Latest(ctx context.Context, profileID uuid.UUID) (*domain.BirthChart, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT payload
		FROM chart_snapshots
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, profileID).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrChartNotFound
		}
		log.Error("failed to load chart snapshot",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, err
	}

	var chart domain.BirthChart
	if err := json.Unmarshal(payload, &chart); err != nil {
		return nil, store.NewStoreError("chart", "latest", "failed to decode chart", err)
	}
	return &chart, nil
}

// DeleteByProfile implements store.ChartStore.DeleteByProfile
func (s *PostgresChartStore) DeleteByProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM chart_snapshots WHERE profile_id = $1`, profileID)
	if err != nil {
		log.Error("failed to delete chart snapshots",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return 0, MapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
