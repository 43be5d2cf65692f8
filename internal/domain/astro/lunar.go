package astro

import (
	"math"

	"github.com/phrazzld/astral-api/internal/domain"
)

var phases = [...]domain.LunarPhase{
	domain.PhaseNewMoon,
	domain.PhaseWaxingCrescent,
	domain.PhaseFirstQuarter,
	domain.PhaseWaxingGibbous,
	domain.PhaseFullMoon,
	domain.PhaseWaningGibbous,
	domain.PhaseLastQuarter,
	domain.PhaseWaningCrescent,
}

// PhaseOf maps the Moon's elongation east of the Sun to one of eight phases,
// each centered on a multiple of 45°.
func PhaseOf(elongation float64) domain.LunarPhase {
	idx := int(math.Floor(NormalizeDegrees(elongation+22.5)/45)) % len(phases)
	return phases[idx]
}

// moonState derives the Moon's sign and phase from Sun and Moon longitudes.
func moonState(sunLon, moonLon float64) domain.MoonState {
	elongation := NormalizeDegrees(moonLon - sunLon)
	return domain.MoonState{
		Sign:         domain.SignOf(moonLon),
		Phase:        PhaseOf(elongation),
		Elongation:   elongation,
		Illumination: (1 - cosDeg(elongation)) / 2,
	}
}

// MoonStateAt returns the lunar state at Julian Day jd.
func MoonStateAt(jd float64) domain.MoonState {
	t := Centuries(jd)
	moonLon, _ := moonPosition(t)
	return moonState(sunApparentLongitude(t), moonLon)
}
