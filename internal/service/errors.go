package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/domain/astro"
	"github.com/phrazzld/astral-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ChartServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrProfileNotFound indicates that the requested profile does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrEmptyBatch is returned for a batch request without items.
	ErrEmptyBatch = errors.New("batch contains no charts")

	// ErrBatchTooLarge is returned when a batch exceeds MaxBatchSize.
	ErrBatchTooLarge = errors.New("batch too large")
)

// inputErrors are returned to callers unwrapped; they describe bad input
// rather than a failure of the service.
var inputErrors = []error{
	domain.ErrValidation,
	domain.ErrInvalidFormat,
	domain.ErrInvalidLocation,
	domain.ErrUnknownTimeZone,
	domain.ErrInvalidDateTime,
	domain.ErrInvalidBody,
	domain.ErrInvalidSign,
	domain.ErrInvalidHouseSystem,
	domain.ErrEmptyProfileName,
	domain.ErrProfileNameLong,
	astro.ErrNilChart,
	ErrEmptyBatch,
	ErrBatchTooLarge,
}

// ChartServiceError wraps errors from the service layer with context.
type ChartServiceError struct {
	// Operation is the operation that failed (e.g., "compute_chart", "create_profile")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ChartServiceError.
func (e *ChartServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chart service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("chart service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ChartServiceError) Unwrap() error {
	return e.Err
}

// NewChartServiceError wraps err for operation. Input errors and known
// sentinels are returned as they are, and store not-found errors for
// profiles become ErrProfileNotFound.
func NewChartServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrProfileNotFound) || errors.Is(err, store.ErrProfileNotFound) {
		return ErrProfileNotFound
	}

	for _, sentinel := range inputErrors {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	return &ChartServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
