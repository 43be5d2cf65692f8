// Package astro implements the chart calculation engine: time and frame
// conversion, body positions, house cusps, aspect detection, chart
// assembly, synastry scoring and the transit and horoscope generators.
//
// Every exported computation is a synchronous, deterministic function of
// its explicit inputs. The package holds no mutable state, so an Engine may
// be shared by any number of goroutines.
package astro
