package astro

import (
	"fmt"
	"math"

	"github.com/phrazzld/astral-api/internal/domain"
)

// maxQuadrantLatitude is the highest absolute latitude at which quadrant
// house systems are attempted.
const maxQuadrantLatitude = 89.5

const geometryEpsilon = 1e-9

// HouseCusps is the result of a house computation. Cusps[0] is the first
// house cusp; longitudes increase with the house number.
type HouseCusps struct {
	Cusps     [domain.HouseCount]float64
	Ascendant float64
	Midheaven float64
	System    domain.HouseSystem

	// Fallback is set when the requested system could not be used and equal
	// houses from the Ascendant were substituted. FallbackReason then wraps
	// ErrDegenerateHouseGeometry.
	Fallback       bool
	FallbackReason error
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon.
// ramc, latitude and obliquity are in degrees.
func Ascendant(ramc, latitude, obliquity float64) float64 {
	y := cosDeg(ramc)
	x := -(sinDeg(ramc)*cosDeg(obliquity) + tanDeg(latitude)*sinDeg(obliquity))
	return NormalizeDegrees(atan2Deg(y, x))
}

// Midheaven returns the ecliptic longitude culminating on the meridian.
func Midheaven(ramc, obliquity float64) float64 {
	return NormalizeDegrees(atan2Deg(sinDeg(ramc), cosDeg(ramc)*cosDeg(obliquity)))
}

// ComputeHouses places the twelve cusps for the given sidereal angle and
// observer latitude. Unsupported systems return domain.ErrInvalidHouseSystem.
// Geometry the quadrant formula cannot handle is not an error: the result
// carries equal houses and Fallback is set.
func ComputeHouses(ramc, latitude, obliquity float64, system domain.HouseSystem) (HouseCusps, error) {
	if system == "" {
		system = domain.DefaultHouseSystem
	}
	if _, err := domain.ParseHouseSystem(string(system)); err != nil {
		return HouseCusps{}, err
	}
	if math.IsNaN(latitude) || math.IsNaN(ramc) || math.IsNaN(obliquity) {
		return HouseCusps{}, fmt.Errorf("%w: non-finite house input", domain.ErrInvalidLocation)
	}

	asc := Ascendant(ramc, latitude, obliquity)
	mc := Midheaven(ramc, obliquity)
	h := HouseCusps{Ascendant: asc, Midheaven: mc, System: system}

	if system == domain.HouseSystemEqual {
		h.Cusps = equalCusps(asc)
		return h, nil
	}

	if reason := quadrantProblem(asc, mc, latitude); reason != nil {
		h.Cusps = equalCusps(asc)
		h.System = domain.HouseSystemEqual
		h.Fallback = true
		h.FallbackReason = reason
		return h, nil
	}

	h.Cusps = porphyryCusps(asc, mc)
	return h, nil
}

func quadrantProblem(asc, mc, latitude float64) error {
	if math.Abs(latitude) > maxQuadrantLatitude {
		return fmt.Errorf("%w: latitude %.4f beyond %.1f", ErrDegenerateHouseGeometry, latitude, maxQuadrantLatitude)
	}
	d := NormalizeDegrees(asc - mc)
	if d < geometryEpsilon || d > 180-geometryEpsilon {
		return fmt.Errorf("%w: ascendant %.4f not east of midheaven %.4f", ErrDegenerateHouseGeometry, asc, mc)
	}
	return nil
}

func equalCusps(asc float64) [domain.HouseCount]float64 {
	var cusps [domain.HouseCount]float64
	for i := range cusps {
		cusps[i] = NormalizeDegrees(asc + float64(i)*30)
	}
	return cusps
}

// porphyryCusps trisects the four quadrants between the angles.
func porphyryCusps(asc, mc float64) [domain.HouseCount]float64 {
	ic := NormalizeDegrees(mc + 180)
	dsc := NormalizeDegrees(asc + 180)

	var cusps [domain.HouseCount]float64
	angles := [4]float64{asc, ic, dsc, mc}
	for q := 0; q < 4; q++ {
		start := angles[q]
		span := NormalizeDegrees(angles[(q+1)%4] - start)
		for k := 0; k < 3; k++ {
			cusps[q*3+k] = NormalizeDegrees(start + span*float64(k)/3)
		}
	}
	return cusps
}

// HouseOf returns the 1-based house containing lon.
func (h HouseCusps) HouseOf(lon float64) int {
	for i := 0; i < domain.HouseCount; i++ {
		if arcContains(h.Cusps[i], h.Cusps[(i+1)%domain.HouseCount], lon) {
			return i + 1
		}
	}
	// Unreachable for ordered cusps; the arcs tile the circle.
	return 1
}
