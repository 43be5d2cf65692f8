package astro

// sunApparentLongitude returns the Sun's apparent geocentric ecliptic
// longitude of date in degrees. The series carries the equation of center to
// the third harmonic and the nutation and aberration correction.
func sunApparentLongitude(t float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	c := (1.914602-0.004817*t-0.000014*t*t)*sinDeg(m) +
		(0.019993-0.000101*t)*sinDeg(2*m) +
		0.000289*sinDeg(3*m)
	omega := 125.04 - 1934.136*t
	return NormalizeDegrees(l0 + c - 0.00569 - 0.00478*sinDeg(omega))
}

// sunOrbit is the low-order solar orbit used to place the Earth when
// converting heliocentric planet coordinates to geocentric ones. d is days
// since 2000-01-00.0 UT. Returns the Sun's geocentric rectangular ecliptic
// coordinates of date in AU.
func sunOrbit(d float64) (x, y float64) {
	w := 282.9404 + 4.70935e-5*d
	e := 0.016709 - 1.151e-9*d
	m := NormalizeDegrees(356.0470 + 0.9856002585*d)

	v, r := trueAnomaly(m, e, 1.0)
	lon := v + w
	return r * cosDeg(lon), r * sinDeg(lon)
}
