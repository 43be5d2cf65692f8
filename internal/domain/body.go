package domain

import (
	"fmt"
	"strings"
)

// Body identifies a tracked celestial body or a computed chart point.
// The numeric order is the canonical order of positions in a chart.
type Body int

// Tracked bodies followed by the computed points.
const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Ascendant
	Midheaven
)

var bodyNames = [...]string{
	Sun:       "sun",
	Moon:      "moon",
	Mercury:   "mercury",
	Venus:     "venus",
	Mars:      "mars",
	Jupiter:   "jupiter",
	Saturn:    "saturn",
	Uranus:    "uranus",
	Neptune:   "neptune",
	Pluto:     "pluto",
	Ascendant: "ascendant",
	Midheaven: "midheaven",
}

// Planets lists the bodies whose positions come from the ephemeris, in
// canonical order. The Sun and Moon are included as luminaries.
func Planets() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}
}

// AllBodies lists every body and point in canonical order.
func AllBodies() []Body {
	return append(Planets(), Ascendant, Midheaven)
}

// IsValid reports whether b is one of the declared bodies.
func (b Body) IsValid() bool {
	return b >= Sun && b <= Midheaven
}

// IsPoint reports whether b is a computed chart point rather than a body.
func (b Body) IsPoint() bool {
	return b == Ascendant || b == Midheaven
}

// String returns the lower-case body name.
func (b Body) String() string {
	if !b.IsValid() {
		return fmt.Sprintf("body(%d)", int(b))
	}
	return bodyNames[b]
}

// ParseBody converts a case-insensitive name into a Body.
func ParseBody(name string) (Body, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range bodyNames {
		if candidate == n {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBody, name)
}

// MarshalText implements encoding.TextMarshaler.
func (b Body) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBody, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
