package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/astral-api/internal/redact"
)

// Environment variables read by integration tests.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"

	// Database connection, preferred name first
	EnvTestDatabaseURL = "ASTRAL_TEST_DATABASE_URL"
	EnvDatabaseURL     = "ASTRAL_DATABASE_URL"

	// Redis address for cache integration tests
	EnvTestRedisAddr = "ASTRAL_TEST_REDIS_ADDR"
)

// IsCI reports whether the process runs under a CI provider.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty variable in
// envVars, or defaultValue. Using anything but the first name logs a warning
// with the value redacted.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("using fallback environment variable",
				slog.String("used_var", envVar),
				slog.String("preferred_var", envVars[0]),
				slog.String("value", redact.String(val)))
		}
		return val
	}
	return defaultValue
}

// TestDatabaseURL returns the PostgreSQL URL for integration tests, or "" when
// none is configured. Outside CI an empty result means the tests skip.
func TestDatabaseURL(logger *slog.Logger) string {
	url := GetEnvWithFallbacks([]string{EnvTestDatabaseURL, EnvDatabaseURL}, "", logger)
	if url == "" && IsCI() && logger != nil {
		logger.Error("no test database configured in CI",
			slog.String("checked_variable", EnvTestDatabaseURL))
	}
	return url
}

// TestRedisAddr returns the Redis address for integration tests, or "".
func TestRedisAddr() string {
	return os.Getenv(EnvTestRedisAddr)
}
