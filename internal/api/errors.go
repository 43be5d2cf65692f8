package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/astral-api/internal/api/shared"
	"github.com/phrazzld/astral-api/internal/domain"
	"github.com/phrazzld/astral-api/internal/domain/astro"
	"github.com/phrazzld/astral-api/internal/platform/cache"
	"github.com/phrazzld/astral-api/internal/service"
	"github.com/phrazzld/astral-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK

	// Not found errors
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Input the engine cannot compute with
	case errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrUnknownTimeZone),
		errors.Is(err, domain.ErrInvalidDateTime):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidBody),
		errors.Is(err, domain.ErrInvalidSign),
		errors.Is(err, domain.ErrInvalidHouseSystem),
		errors.Is(err, domain.ErrEmptyProfileName),
		errors.Is(err, domain.ErrProfileNameLong),
		errors.Is(err, astro.ErrNilChart),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, cache.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)

	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, store.ErrChartNotFound):
		return "Chart not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Profile already exists"

	case errors.Is(err, domain.ErrInvalidLocation):
		return "Latitude must be within [-90, 90] and longitude within [-180, 180]"

	case errors.Is(err, domain.ErrUnknownTimeZone):
		return "Unknown time zone; use an IANA name such as Europe/London"

	case errors.Is(err, domain.ErrInvalidDateTime):
		return "Birth date-time does not exist"

	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid value format"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrInvalidSign):
		return "Unknown zodiac sign"

	case errors.Is(err, domain.ErrInvalidHouseSystem):
		return "Unsupported house system"

	case errors.Is(err, domain.ErrEmptyProfileName):
		return "Profile name is required"

	case errors.Is(err, domain.ErrProfileNameLong):
		return "Profile name is too long"

	case errors.Is(err, service.ErrEmptyBatch):
		return "Batch must contain at least one chart"

	case errors.Is(err, service.ErrBatchTooLarge):
		return fmt.Sprintf("Batch may contain at most %d charts", service.MaxBatchSize)

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, cache.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field, without echoing the submitted value.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	first := validationErrs[0]
	field := jsonFieldPath(first.Namespace())
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(first.Tag()))
}

// jsonFieldPath drops the root struct name from a validator namespace, so
// "ChartRequest.birth_data.latitude" becomes "birth_data.latitude".
func jsonFieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "lte":
		return "out of range"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid ID format"
	default:
		return "validation failed"
	}
}

// HandleAPIError maps err to a status and safe message and writes the
// response. fallback replaces the generic message for 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
