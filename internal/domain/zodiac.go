package domain

import (
	"fmt"
	"math"
	"strings"
)

// ZodiacSign is one of the twelve 30° tropical signs, Aries = 0.
type ZodiacSign int

// The twelve signs in ecliptic order.
const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// DegreesPerSign is the width of a sign along the ecliptic.
const DegreesPerSign = 30.0

var signNames = [...]string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

// Element is the classical element of a sign.
type Element string

// Elements.
const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Elements lists the four elements in fixed order.
func Elements() []Element {
	return []Element{ElementFire, ElementEarth, ElementAir, ElementWater}
}

// Modality is the quality of a sign.
type Modality string

// Modalities.
const (
	ModalityCardinal Modality = "cardinal"
	ModalityFixed    Modality = "fixed"
	ModalityMutable  Modality = "mutable"
)

// Signs returns the twelve signs in order.
func Signs() []ZodiacSign {
	signs := make([]ZodiacSign, 12)
	for i := range signs {
		signs[i] = ZodiacSign(i)
	}
	return signs
}

// SignOf returns the sign containing a normalized longitude in [0,360).
func SignOf(longitude float64) ZodiacSign {
	idx := int(math.Floor(longitude / DegreesPerSign))
	// Guards the 360 edge produced by rounding in callers.
	return ZodiacSign(((idx % 12) + 12) % 12)
}

// DegreeInSign returns the offset of a normalized longitude within its sign,
// computed so that SignOf(l)*30 + DegreeInSign(l) reproduces l.
func DegreeInSign(longitude float64) float64 {
	return longitude - float64(SignOf(longitude))*DegreesPerSign
}

// IsValid reports whether s is one of the twelve signs.
func (s ZodiacSign) IsValid() bool {
	return s >= Aries && s <= Pisces
}

// StartLongitude is the ecliptic longitude of 0° of the sign.
func (s ZodiacSign) StartLongitude() float64 {
	return float64(s) * DegreesPerSign
}

// Element returns the sign's element: fire for Aries/Leo/Sagittarius,
// earth for Taurus/Virgo/Capricorn, air for Gemini/Libra/Aquarius and
// water for Cancer/Scorpio/Pisces.
func (s ZodiacSign) Element() Element {
	switch s % 4 {
	case 0:
		return ElementFire
	case 1:
		return ElementEarth
	case 2:
		return ElementAir
	default:
		return ElementWater
	}
}

// Modality returns cardinal, fixed or mutable.
func (s ZodiacSign) Modality() Modality {
	switch s % 3 {
	case 0:
		return ModalityCardinal
	case 1:
		return ModalityFixed
	default:
		return ModalityMutable
	}
}

// String returns the lower-case sign name.
func (s ZodiacSign) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("sign(%d)", int(s))
	}
	return signNames[s]
}

// Title returns the capitalized sign name for display text.
func (s ZodiacSign) Title() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseZodiacSign converts a case-insensitive sign name.
func ParseZodiacSign(name string) (ZodiacSign, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range signNames {
		if candidate == n {
			return ZodiacSign(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSign, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s ZodiacSign) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSign, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ZodiacSign) UnmarshalText(text []byte) error {
	parsed, err := ParseZodiacSign(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
