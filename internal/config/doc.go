// Package config loads the astral-api settings: the HTTP port and log level,
// the optional PostgreSQL database, the chart cache (Redis or in-process)
// and the chart engine defaults. Values come from ASTRAL_* environment
// variables over an optional config.yaml and are validated before use.
package config
