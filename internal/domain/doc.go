// Package domain contains the value types of the chart engine: birth data,
// celestial bodies, zodiac signs, aspects, houses, charts and the derived
// compatibility, transit and horoscope results. The types are plain
// immutable values with JSON tags so that storage collaborators can
// round-trip them without a custom encoding.
package domain
