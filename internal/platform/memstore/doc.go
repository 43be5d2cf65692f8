// Package memstore provides in-memory implementations of the store
// interfaces. They back the service when no database URL is configured and
// are used by service and handler tests.
package memstore
