package astro

import (
	"fmt"

	"github.com/phrazzld/astral-api/internal/domain"
)

// speedStep is the half-width, in days, of the central difference used for
// daily motion.
const speedStep = 0.5

// EclipticPosition returns the geocentric ecliptic longitude in [0,360) and
// latitude of a body at Julian Day jd (UT). Chart points are not bodies of
// the ephemeris and return ErrUnsupportedBody.
func EclipticPosition(body domain.Body, jd float64) (lon, lat float64, err error) {
	switch body {
	case domain.Sun:
		return sunApparentLongitude(Centuries(jd)), 0, nil
	case domain.Moon:
		lon, lat = moonPosition(Centuries(jd))
		return lon, lat, nil
	}
	if body.IsValid() && !body.IsPoint() {
		if lon, lat, ok := planetPosition(body, jd); ok {
			return lon, lat, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedBody, body)
}

// DailyMotion returns the body's apparent motion in longitude in degrees per
// day. Negative values mean the body is retrograde.
func DailyMotion(body domain.Body, jd float64) (float64, error) {
	before, _, err := EclipticPosition(body, jd-speedStep)
	if err != nil {
		return 0, err
	}
	after, _, err := EclipticPosition(body, jd+speedStep)
	if err != nil {
		return 0, err
	}
	return signedDelta(before, after) / (2 * speedStep), nil
}

// ComputePosition computes the full zodiacal position of a body.
func ComputePosition(body domain.Body, jd float64) (domain.BodyPosition, error) {
	lon, lat, err := EclipticPosition(body, jd)
	if err != nil {
		return domain.BodyPosition{}, err
	}
	speed, err := DailyMotion(body, jd)
	if err != nil {
		return domain.BodyPosition{}, err
	}
	return newPosition(body, lon, lat, speed), nil
}

func newPosition(body domain.Body, lon, lat, speed float64) domain.BodyPosition {
	lon = NormalizeDegrees(lon)
	return domain.BodyPosition{
		Body:         body,
		Longitude:    lon,
		Latitude:     lat,
		Speed:        speed,
		Sign:         domain.SignOf(lon),
		DegreeInSign: domain.DegreeInSign(lon),
		Retrograde:   speed < 0,
	}
}
