package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/astral-api/internal/api/shared"
	"github.com/phrazzld/astral-api/internal/domain"
)

// Paging bounds for list endpoints.
const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// decodeAndValidate decodes the JSON body into v and validates it, writing
// the error response itself. It reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

// parseInstant parses an RFC 3339 instant, returning fallback for an empty
// value.
func parseInstant(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: instant must be RFC 3339: %v", domain.ErrInvalidFormat, err)
	}
	return t.UTC(), nil
}

// parseDate parses a YYYY-MM-DD calendar date, returning fallback's date
// for an empty value.
func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := fallback.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD: %v", domain.ErrInvalidFormat, err)
	}
	return t, nil
}

// parsePage reads limit and offset query parameters.
func parsePage(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > maxPageLimit {
			return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, maxPageLimit)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("%w: offset must be non-negative", domain.ErrValidation)
		}
	}
	return limit, offset, nil
}
