package domain

import "fmt"

// AspectType names a significant angular separation between two bodies.
type AspectType string

// Major aspects.
const (
	AspectConjunction AspectType = "conjunction"
	AspectSextile     AspectType = "sextile"
	AspectSquare      AspectType = "square"
	AspectTrine       AspectType = "trine"
	AspectOpposition  AspectType = "opposition"
)

// Minor aspects, detected only when enabled.
const (
	AspectSemisextile    AspectType = "semisextile"
	AspectSemisquare     AspectType = "semisquare"
	AspectSesquiquadrate AspectType = "sesquiquadrate"
	AspectQuincunx       AspectType = "quincunx"
)

// Orb tolerances in degrees. They are shared by natal, synastry and transit
// detection; changing them changes every downstream score.
const (
	OrbConjunction = 8.0
	OrbOpposition  = 8.0
	OrbTrine       = 6.0
	OrbSquare      = 6.0
	OrbSextile     = 4.0
	OrbMinor       = 2.0
)

type aspectSpec struct {
	angle    float64
	orb      float64
	harmonic bool
	major    bool
}

var aspectSpecs = map[AspectType]aspectSpec{
	AspectConjunction:    {angle: 0, orb: OrbConjunction, harmonic: true, major: true},
	AspectSextile:        {angle: 60, orb: OrbSextile, harmonic: true, major: true},
	AspectSquare:         {angle: 90, orb: OrbSquare, harmonic: false, major: true},
	AspectTrine:          {angle: 120, orb: OrbTrine, harmonic: true, major: true},
	AspectOpposition:     {angle: 180, orb: OrbOpposition, harmonic: false, major: true},
	AspectSemisextile:    {angle: 30, orb: OrbMinor, harmonic: true},
	AspectSemisquare:     {angle: 45, orb: OrbMinor, harmonic: false},
	AspectSesquiquadrate: {angle: 135, orb: OrbMinor, harmonic: false},
	AspectQuincunx:       {angle: 150, orb: OrbMinor, harmonic: false},
}

// MajorAspects returns the five major aspect types ordered by angle.
func MajorAspects() []AspectType {
	return []AspectType{AspectConjunction, AspectSextile, AspectSquare, AspectTrine, AspectOpposition}
}

// MinorAspects returns the optional aspect types ordered by angle.
func MinorAspects() []AspectType {
	return []AspectType{AspectSemisextile, AspectSemisquare, AspectSesquiquadrate, AspectQuincunx}
}

// IsValid reports whether t is a known aspect type.
func (t AspectType) IsValid() bool {
	_, ok := aspectSpecs[t]
	return ok
}

// Angle is the exact separation in degrees.
func (t AspectType) Angle() float64 { return aspectSpecs[t].angle }

// Orb is the maximum allowed deviation from Angle.
func (t AspectType) Orb() float64 { return aspectSpecs[t].orb }

// IsHarmonic reports whether the aspect is classed as flowing rather than
// tense. Conjunctions count as harmonic.
func (t AspectType) IsHarmonic() bool { return aspectSpecs[t].harmonic }

// IsMajor reports whether t is one of the five Ptolemaic aspects.
func (t AspectType) IsMajor() bool { return aspectSpecs[t].major }

// ParseAspectType validates a type name.
func ParseAspectType(name string) (AspectType, error) {
	t := AspectType(name)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAspectType, name)
	}
	return t, nil
}

// Aspect is an angular relationship between two bodies. In a natal chart
// First precedes Second in canonical body order; in synastry First belongs
// to the first chart and Second to the second.
type Aspect struct {
	First      Body       `json:"first"`
	Second     Body       `json:"second"`
	Type       AspectType `json:"type"`
	Separation float64    `json:"separation"`
	Orb        float64    `json:"orb"`
	Harmonic   bool       `json:"harmonic"`
}

// Involves reports whether either side of the aspect is b.
func (a Aspect) Involves(b Body) bool {
	return a.First == b || a.Second == b
}

// Pair reports whether the aspect joins x and y in either order.
func (a Aspect) Pair(x, y Body) bool {
	return (a.First == x && a.Second == y) || (a.First == y && a.Second == x)
}
