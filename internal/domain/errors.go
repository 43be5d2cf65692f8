// Package domain defines the core value types and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain value fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidLocation is returned when latitude or longitude are out of range
	// or not finite numbers.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrUnknownTimeZone is returned when a time zone identifier cannot be resolved.
	ErrUnknownTimeZone = errors.New("unknown time zone")

	// ErrInvalidDateTime is returned when a civil date-time does not exist in
	// the proleptic Gregorian calendar (e.g. February 30).
	ErrInvalidDateTime = errors.New("invalid date-time")

	// ErrInvalidBody is returned when a body name cannot be parsed.
	ErrInvalidBody = errors.New("invalid body")

	// ErrInvalidSign is returned when a zodiac sign name or index is not valid.
	ErrInvalidSign = errors.New("invalid zodiac sign")

	// ErrInvalidAspectType is returned when an aspect type is not recognized.
	ErrInvalidAspectType = errors.New("invalid aspect type")

	// ErrInvalidHouseSystem is returned when a house system is not supported.
	ErrInvalidHouseSystem = errors.New("invalid house system")
)
