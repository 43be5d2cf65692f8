package astro

import (
	"math"

	"github.com/phrazzld/astral-api/internal/domain"
)

// epochDay0 is 2000-01-00.0 UT, the zero point of the mean orbital elements.
const epochDay0 = 2451543.5

// element is a linear mean element: value + rate·d, d in days from epochDay0.
type element struct {
	value, rate float64
}

func (e element) at(d float64) float64 {
	return e.value + e.rate*d
}

// orbit holds the mean elements of a planet referred to the ecliptic and
// equinox of date. Angles are degrees, a is AU.
type orbit struct {
	node         element // longitude of the ascending node N
	inclination  element
	perihelion   element // argument of perihelion w
	semiMajor    element
	eccentricity element
	meanAnomaly  element
}

var orbits = map[domain.Body]orbit{
	domain.Mercury: {
		node:         element{48.3313, 3.24587e-5},
		inclination:  element{7.0047, 5.00e-8},
		perihelion:   element{29.1241, 1.01444e-5},
		semiMajor:    element{0.387098, 0},
		eccentricity: element{0.205635, 5.59e-10},
		meanAnomaly:  element{168.6562, 4.0923344368},
	},
	domain.Venus: {
		node:         element{76.6799, 2.46590e-5},
		inclination:  element{3.3946, 2.75e-8},
		perihelion:   element{54.8910, 1.38374e-5},
		semiMajor:    element{0.723330, 0},
		eccentricity: element{0.006773, -1.302e-9},
		meanAnomaly:  element{48.0052, 1.6021302244},
	},
	domain.Mars: {
		node:         element{49.5574, 2.11081e-5},
		inclination:  element{1.8497, -1.78e-8},
		perihelion:   element{286.5016, 2.92961e-5},
		semiMajor:    element{1.523688, 0},
		eccentricity: element{0.093405, 2.516e-9},
		meanAnomaly:  element{18.6021, 0.5240207766},
	},
	domain.Jupiter: {
		node:         element{100.4542, 2.76854e-5},
		inclination:  element{1.3030, -1.557e-7},
		perihelion:   element{273.8777, 1.64505e-5},
		semiMajor:    element{5.20256, 0},
		eccentricity: element{0.048498, 4.469e-9},
		meanAnomaly:  element{19.8950, 0.0830853001},
	},
	domain.Saturn: {
		node:         element{113.6634, 2.38980e-5},
		inclination:  element{2.4886, -1.081e-7},
		perihelion:   element{339.3939, 2.97661e-5},
		semiMajor:    element{9.55475, 0},
		eccentricity: element{0.055546, -9.499e-9},
		meanAnomaly:  element{316.9670, 0.0334442282},
	},
	domain.Uranus: {
		node:         element{74.0005, 1.3978e-5},
		inclination:  element{0.7733, 1.9e-8},
		perihelion:   element{96.6612, 3.0565e-5},
		semiMajor:    element{19.18171, -1.55e-8},
		eccentricity: element{0.047318, 7.45e-9},
		meanAnomaly:  element{142.5905, 0.011725806},
	},
	domain.Neptune: {
		node:         element{131.7806, 3.0173e-5},
		inclination:  element{1.7700, -2.55e-7},
		perihelion:   element{272.8461, -6.027e-6},
		semiMajor:    element{30.05826, 3.313e-8},
		eccentricity: element{0.008606, 2.15e-9},
		meanAnomaly:  element{260.2471, 0.005995147},
	},
}

// plutoOrbit is referred to the J2000 ecliptic with rates per Julian century.
// Its positions are precessed to the equinox of date.
var plutoOrbit = struct {
	semiMajor, eccentricity, inclination, meanLongitude, perihelionLongitude, node element
}{
	semiMajor:           element{39.48211675, -0.00031596},
	eccentricity:        element{0.24882730, 0.00005170},
	inclination:         element{17.14001206, 0.00004818},
	meanLongitude:       element{238.92903833, 145.20780515},
	perihelionLongitude: element{224.06891629, -0.04062942},
	node:                element{110.30393684, -0.01183482},
}

// generalPrecession is the accumulated precession in longitude, degrees per
// Julian century.
const generalPrecession = 1.3969713

type vec3 struct {
	x, y, z float64
}

func (v vec3) spherical() (lon, lat, r float64) {
	r = math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	return NormalizeDegrees(atan2Deg(v.y, v.x)), atan2Deg(v.z, math.Hypot(v.x, v.y)), r
}

func fromSpherical(lon, lat, r float64) vec3 {
	return vec3{
		x: r * cosDeg(lon) * cosDeg(lat),
		y: r * sinDeg(lon) * cosDeg(lat),
		z: r * sinDeg(lat),
	}
}

// heliocentric returns rectangular ecliptic coordinates for an orbit.
func heliocentric(node, incl, peri, a, e, meanAnomaly float64) vec3 {
	v, r := trueAnomaly(NormalizeDegrees(meanAnomaly), e, a)
	u := v + peri
	return vec3{
		x: r * (cosDeg(node)*cosDeg(u) - sinDeg(node)*sinDeg(u)*cosDeg(incl)),
		y: r * (sinDeg(node)*cosDeg(u) + cosDeg(node)*sinDeg(u)*cosDeg(incl)),
		z: r * sinDeg(u) * sinDeg(incl),
	}
}

func meanAnomalyOf(body domain.Body, d float64) float64 {
	return NormalizeDegrees(orbits[body].meanAnomaly.at(d))
}

// perturb applies the mutual perturbations of Jupiter, Saturn and Uranus to a
// heliocentric position.
func perturb(body domain.Body, d float64, p vec3) vec3 {
	mj := meanAnomalyOf(domain.Jupiter, d)
	ms := meanAnomalyOf(domain.Saturn, d)
	mu := meanAnomalyOf(domain.Uranus, d)

	var dLon, dLat float64
	switch body {
	case domain.Jupiter:
		dLon = -0.332*sinDeg(2*mj-5*ms-67.6) -
			0.056*sinDeg(2*mj-2*ms+21) +
			0.042*sinDeg(3*mj-5*ms+21) -
			0.036*sinDeg(mj-2*ms) +
			0.022*cosDeg(mj-ms) +
			0.023*sinDeg(2*mj-3*ms+52) -
			0.016*sinDeg(mj-5*ms-69)
	case domain.Saturn:
		dLon = 0.812*sinDeg(2*mj-5*ms-67.6) -
			0.229*cosDeg(2*mj-4*ms-2) +
			0.119*sinDeg(mj-2*ms-3) +
			0.046*sinDeg(2*mj-6*ms-69) +
			0.014*sinDeg(mj-3*ms+32)
		dLat = -0.020*cosDeg(2*mj-4*ms-2) + 0.018*sinDeg(2*mj-6*ms-49)
	case domain.Uranus:
		dLon = 0.040*sinDeg(ms-2*mu+6) +
			0.035*sinDeg(ms-3*mu+33) -
			0.015*sinDeg(mj-mu+20)
	default:
		return p
	}

	lon, lat, r := p.spherical()
	return fromSpherical(lon+dLon, lat+dLat, r)
}

func planetHeliocentric(body domain.Body, jd float64) (vec3, bool) {
	d := jd - epochDay0
	if body == domain.Pluto {
		return plutoHeliocentric(Centuries(jd)), true
	}
	o, ok := orbits[body]
	if !ok {
		return vec3{}, false
	}
	p := heliocentric(o.node.at(d), o.inclination.at(d), o.perihelion.at(d),
		o.semiMajor.at(d), o.eccentricity.at(d), o.meanAnomaly.at(d))
	return perturb(body, d, p), true
}

func plutoHeliocentric(t float64) vec3 {
	el := plutoOrbit
	node := el.node.at(t)
	peri := el.perihelionLongitude.at(t)
	p := heliocentric(node, el.inclination.at(t), peri-node,
		el.semiMajor.at(t), el.eccentricity.at(t), el.meanLongitude.at(t)-peri)
	lon, lat, r := p.spherical()
	return fromSpherical(lon+generalPrecession*t, lat, r)
}

// planetPosition returns the geocentric ecliptic longitude and latitude of
// date for a planet other than the Sun and Moon.
func planetPosition(body domain.Body, jd float64) (lon, lat float64, ok bool) {
	p, ok := planetHeliocentric(body, jd)
	if !ok {
		return 0, 0, false
	}
	sx, sy := sunOrbit(jd - epochDay0)
	g := vec3{x: p.x + sx, y: p.y + sy, z: p.z}
	lon, lat, _ = g.spherical()
	return lon, lat, true
}
