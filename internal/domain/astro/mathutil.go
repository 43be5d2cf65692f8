package astro

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

func sinDeg(x float64) float64 { return math.Sin(x * degToRad) }
func cosDeg(x float64) float64 { return math.Cos(x * degToRad) }
func tanDeg(x float64) float64 { return math.Tan(x * degToRad) }

func atan2Deg(y, x float64) float64 { return math.Atan2(y, x) * radToDeg }

// NormalizeDegrees maps any angle, including negative ones, into [0,360).
func NormalizeDegrees(x float64) float64 {
	r := math.Mod(x, 360)
	if r < 0 {
		r += 360
	}
	// Adding 360 to a tiny negative remainder can round up to 360.
	if r >= 360 {
		r = 0
	}
	return r
}

// normalizeHours maps an hour angle into [0,24).
func normalizeHours(h float64) float64 {
	r := math.Mod(h, 24)
	if r < 0 {
		r += 24
	}
	if r >= 24 {
		r = 0
	}
	return r
}

// AngularSeparation is the shortest arc between two longitudes, in [0,180].
func AngularSeparation(a, b float64) float64 {
	d := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// signedDelta returns b-a wrapped into (-180,180].
func signedDelta(a, b float64) float64 {
	d := NormalizeDegrees(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// arcContains reports whether lon lies in the half-open arc [start, end)
// measured in increasing longitude, wrapping through 0°.
func arcContains(start, end, lon float64) bool {
	span := NormalizeDegrees(end - start)
	offset := NormalizeDegrees(lon - start)
	return offset < span
}

// kepler solves Kepler's equation E - e·sin(E) = M by Newton iteration.
// M and the result are in radians.
func kepler(meanAnomaly, eccentricity float64) float64 {
	e := meanAnomaly + eccentricity*math.Sin(meanAnomaly)
	for i := 0; i < 30; i++ {
		delta := (e - eccentricity*math.Sin(e) - meanAnomaly) / (1 - eccentricity*math.Cos(e))
		e -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return e
}

// trueAnomaly solves the orbit for a mean anomaly in degrees and returns the
// true anomaly in degrees and the radius vector in units of a.
func trueAnomaly(meanAnomaly, eccentricity, semiMajor float64) (v, r float64) {
	e := kepler(meanAnomaly*degToRad, eccentricity)
	xv := semiMajor * (math.Cos(e) - eccentricity)
	yv := semiMajor * math.Sqrt(1-eccentricity*eccentricity) * math.Sin(e)
	return math.Atan2(yv, xv) * radToDeg, math.Hypot(xv, yv)
}
