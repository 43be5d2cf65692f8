// Package redact removes sensitive details from strings before they are
// logged or returned to clients. Connection strings, credentials, file paths,
// SQL text and stack traces are replaced by placeholders, and birth locations
// are coarsened so a log line cannot pinpoint where someone was born.
package redact

import (
	"fmt"
	"math"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules consume text later ones would
// otherwise split.
var rules = []rule{
	{
		regexp.MustCompile(`(?s)goroutine \d+ \[[^\]]+\]:.*`),
		RedactedStackPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(?:postgres|postgresql|redis|rediss)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+['"]?`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(?:SELECT\s.+?\sFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b[^;]*`),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Coordinates renders a location rounded to one decimal place, roughly 11 km,
// for use in logs.
func Coordinates(latitude, longitude float64) string {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return RedactionPlaceholder
	}
	return fmt.Sprintf("%.1f,%.1f", latitude, longitude)
}
