// Package service contains the application use cases built on the chart
// engine. It orchestrates the engine, the chart cache, metrics and the
// profile stores defined in internal/store.
//
// Key components:
//
//   - ChartService: cached chart computation, batches, compatibility,
//     transits and daily horoscopes
//   - ProfileService: stored birth profiles and their chart snapshots
//
// Services receive their dependencies through constructor injection and
// depend only on interfaces, never on a specific storage implementation.
package service
