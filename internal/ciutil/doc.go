// Package ciutil resolves test infrastructure settings from the environment,
// so integration tests find the same database and Redis locally and in CI.
package ciutil
