// Package api exposes the chart engine and stored birth profiles over JSON
// HTTP: natal charts and batches, compatibility, transits, daily horoscopes
// and profile management. Handlers decode and validate requests, call the
// chart and profile services, and map service errors to status codes with
// messages that never echo internal details.
package api
