package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/astral-api/internal/platform/postgres"
	"github.com/phrazzld/astral-api/internal/store"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "profiles",
		ColumnName:     "name",
		ConstraintName: "profiles_pkey",
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, nil }

func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), want: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), want: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514"), want: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), want: store.ErrInvalidEntity},
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("exec: %w", newPgError("23505")),
			want: store.ErrDuplicate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, postgres.MapError(tc.err), tc.want)
		})
	}

	assert.NoError(t, postgres.MapError(nil))
	other := errors.New("connection reset")
	assert.Equal(t, other, postgres.MapError(other), "unmapped errors pass through")
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.False(t, postgres.IsUniqueViolation(nil))
	assert.True(t, postgres.IsForeignKeyViolation(fmt.Errorf("wrap: %w", newPgError("23503"))))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("generic")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrProfileNotFound))
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrProfileNotFound),
		store.ErrProfileNotFound)
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{}, nil), store.ErrNotFound)

	resultErr := errors.New("driver does not support RowsAffected")
	err := postgres.CheckRowsAffected(mockResult{err: resultErr}, nil)
	assert.ErrorIs(t, err, resultErr)

	assert.Error(t, postgres.CheckRowsAffected(nil, nil))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	err := postgres.MapUniqueViolation(newPgError("23505"), "profile", store.ErrProfileExists)
	assert.ErrorIs(t, err, store.ErrProfileExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	err = postgres.MapUniqueViolation(newPgError("23505"), "profile", nil)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.Contains(t, err.Error(), "profile already exists")

	other := newPgError("23503")
	assert.Equal(t, error(other), postgres.MapUniqueViolation(other, "profile", nil))
}

func TestMigrationFiles(t *testing.T) {
	t.Parallel()

	files, err := postgres.MigrationFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00001_create_profiles.sql",
		"00002_create_chart_snapshots.sql",
	}, files)
}
