package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrProfileNotFound",
			err:      ErrProfileNotFound,
			expected: true,
		},
		{
			name:     "ErrChartNotFound wrapped in StoreError",
			err:      NewStoreError("chart", "latest", "no snapshot", ErrChartNotFound),
			expected: true,
		},
		{
			name:     "ErrProfileExists",
			err:      ErrProfileExists,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: true,
		},
		{
			name:     "wrapped ErrProfileExists",
			err:      fmt.Errorf("failed to create profile: %w", ErrProfileExists),
			expected: true,
		},
		{
			name:     "ErrProfileNotFound",
			err:      ErrProfileNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsDuplicateError(tt.err); got != tt.expected {
				t.Errorf("IsDuplicateError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("profile", "create", "database error", originalErr)

	expectedErrorString := "create operation on profile failed: database error: database connection failed"
	if got := storeErr.Error(); got != expectedErrorString {
		t.Errorf("StoreError.Error() = %v, want %v", got, expectedErrorString)
	}

	if got := storeErr.Unwrap(); !errors.Is(got, originalErr) {
		t.Errorf("StoreError.Unwrap() not returning original error")
	}

	bare := NewStoreError("chart", "save", "marshal failed", nil)
	if got := bare.Error(); got != "save operation on chart failed: marshal failed" {
		t.Errorf("StoreError.Error() without cause = %v", got)
	}
}

func TestEntityErrorMessages(t *testing.T) {
	t.Parallel()

	if got := ErrProfileNotFound.Error(); got != "entity not found: profile" {
		t.Errorf("ErrProfileNotFound = %q", got)
	}
	if got := ErrProfileExists.Error(); got != "entity already exists: profile" {
		t.Errorf("ErrProfileExists = %q", got)
	}
}
