package astro

// lunarTerm is one periodic term of the lunar series. The argument is
// d·D + m·M + mp·M' + f·F; eccentricity-dependent terms are scaled by E^|m|.
type lunarTerm struct {
	d, m, mp, f int
	coeff       float64 // 1e-6 degrees
}

var lunarLongitudeTerms = []lunarTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994},
	{4, 0, 0, 0, 3861},
	{2, 0, -3, 0, 3665},
	{0, 1, -2, 0, -2689},
	{2, 0, -1, 2, -2602},
	{2, -1, -2, 0, 2390},
	{1, 0, 1, 0, -2348},
	{2, -2, 0, 0, 2236},
}

var lunarLatitudeTerms = []lunarTerm{
	{0, 0, 0, 1, 5128122},
	{0, 0, 1, 1, 280602},
	{0, 0, 1, -1, 277693},
	{2, 0, 0, -1, 173237},
	{2, 0, -1, 1, 55413},
	{2, 0, -1, -1, 46271},
	{2, 0, 0, 1, 32573},
	{0, 0, 2, 1, 17198},
	{2, 0, 1, -1, 9266},
	{0, 0, 2, -1, 8822},
	{2, -1, 0, -1, 8216},
	{2, 0, -2, -1, 4324},
	{2, 0, 1, 1, 4200},
}

// moonPosition returns the Moon's geocentric ecliptic longitude and latitude
// of date in degrees for t centuries since J2000.
func moonPosition(t float64) (lon, lat float64) {
	t2, t3, t4 := t*t, t*t*t, t*t*t*t

	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841 - t4/65194000
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868 - t4/113065000
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699 - t4/14712000
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000 + t4/863310000
	e := 1 - 0.002516*t - 0.0000074*t2

	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t
	a3 := 313.45 + 481266.484*t

	var sumL, sumB float64
	for _, term := range lunarLongitudeTerms {
		arg := float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f
		sumL += term.coeff * eccentricityFactor(e, term.m) * sinDeg(arg)
	}
	for _, term := range lunarLatitudeTerms {
		arg := float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f
		sumB += term.coeff * eccentricityFactor(e, term.m) * sinDeg(arg)
	}

	sumL += 3958*sinDeg(a1) + 1962*sinDeg(lp-f) + 318*sinDeg(a2)
	sumB += -2235*sinDeg(lp) + 382*sinDeg(a3) + 175*sinDeg(a1-f) +
		175*sinDeg(a1+f) + 127*sinDeg(lp-mp) - 115*sinDeg(lp+mp)

	return NormalizeDegrees(lp + sumL/1e6), sumB / 1e6
}

func eccentricityFactor(e float64, m int) float64 {
	switch m {
	case 1, -1:
		return e
	case 2, -2:
		return e * e
	default:
		return 1
	}
}
