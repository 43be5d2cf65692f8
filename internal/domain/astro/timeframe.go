package astro

import (
	"math"
	"time"

	"github.com/phrazzld/astral-api/internal/domain"
)

// J2000 is the Julian Day of 2000-01-01 12:00 UT, the epoch of every series.
const J2000 = 2451545.0

const (
	daysPerCentury = 36525.0
	unixEpochJD    = 2440587.5
	secondsPerDay  = 86400.0
)

// OffsetResolution records how a civil time was mapped to UT.
type OffsetResolution string

// Resolutions.
const (
	// OffsetExact means exactly one zone offset reproduces the wall time.
	OffsetExact OffsetResolution = "exact"
	// OffsetAmbiguous means the wall time occurred twice (clocks set back).
	OffsetAmbiguous OffsetResolution = "ambiguous"
	// OffsetGap means the wall time never occurred (clocks set forward).
	OffsetGap OffsetResolution = "gap"
)

// Frame is the astronomical time frame and observer location of a chart.
type Frame struct {
	UT                time.Time
	UTCOffsetSeconds  int
	Resolution        OffsetResolution
	JulianDay         float64
	Centuries         float64
	GreenwichSidereal float64 // hours [0,24)
	LocalSidereal     float64 // hours [0,24)
	Obliquity         float64 // degrees
	Latitude          float64
	Longitude         float64
}

// RAMC is the local sidereal time expressed in degrees.
func (f Frame) RAMC() float64 {
	return f.LocalSidereal * 15
}

// ResolveFrame converts birth data into Julian Day, sidereal time and
// obliquity. Unknown birth times use local noon. Coordinates and the zone are
// validated first: ErrInvalidLocation and ErrUnknownTimeZone are returned
// wrapped from the domain package.
func ResolveFrame(birth domain.BirthData) (Frame, error) {
	if err := domain.ValidateCoordinates(birth.Latitude, birth.Longitude); err != nil {
		return Frame{}, err
	}
	loc, err := domain.LoadTimeZone(birth.TimeZone)
	if err != nil {
		return Frame{}, err
	}
	wall := birth.EffectiveDateTime()
	if err := wall.Validate(); err != nil {
		return Frame{}, err
	}

	ut, offset, resolution := resolveCivilTime(wall, loc)
	jd := JulianDayFromTime(ut)
	f := frameAt(jd, birth.Latitude, birth.Longitude)
	f.UT = ut
	f.UTCOffsetSeconds = offset
	f.Resolution = resolution
	return f, nil
}

// frameAt builds the sidereal and obliquity part of a frame for jd.
func frameAt(jd, latitude, longitude float64) Frame {
	gmst := GreenwichSiderealTime(jd)
	return Frame{
		UT:                TimeFromJulianDay(jd),
		JulianDay:         jd,
		Centuries:         Centuries(jd),
		GreenwichSidereal: gmst,
		LocalSidereal:     normalizeHours(gmst + longitude/15),
		Obliquity:         MeanObliquity(jd),
		Latitude:          latitude,
		Longitude:         longitude,
		Resolution:        OffsetExact,
	}
}

// resolveCivilTime maps a wall-clock reading in loc to UT.
//
// The offsets in effect 24 hours either side of the wall time are the only
// candidates. A candidate is consistent when converting with it lands on an
// instant that really has that offset. One consistent candidate is used as
// is. When both are consistent (an overlap) or neither is (a gap), the
// standard-time offset wins; if both candidates are standard the later one
// is used.
func resolveCivilTime(dt domain.LocalDateTime, loc *time.Location) (time.Time, int, OffsetResolution) {
	wall := time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, 0, time.UTC)

	before := zoneAt(wall.Add(-24*time.Hour), loc)
	after := zoneAt(wall.Add(24*time.Hour), loc)

	if before.offset == after.offset {
		u := wall.Add(-time.Duration(before.offset) * time.Second)
		if zoneAt(u, loc).offset == before.offset {
			return u, before.offset, OffsetExact
		}
		// Two transitions within two days; defer to the time package.
		t := dt.In(loc)
		_, off := t.Zone()
		return t.UTC(), off, OffsetGap
	}

	uBefore := wall.Add(-time.Duration(before.offset) * time.Second)
	uAfter := wall.Add(-time.Duration(after.offset) * time.Second)
	beforeOK := zoneAt(uBefore, loc).offset == before.offset
	afterOK := zoneAt(uAfter, loc).offset == after.offset

	switch {
	case beforeOK && !afterOK:
		return uBefore, before.offset, OffsetExact
	case afterOK && !beforeOK:
		return uAfter, after.offset, OffsetExact
	}

	resolution := OffsetGap
	if beforeOK && afterOK {
		resolution = OffsetAmbiguous
	}
	if before.dst == after.dst || !after.dst {
		return uAfter, after.offset, resolution
	}
	return uBefore, before.offset, resolution
}

type zoneInfo struct {
	offset int
	dst    bool
}

func zoneAt(instant time.Time, loc *time.Location) zoneInfo {
	t := instant.In(loc)
	_, offset := t.Zone()
	return zoneInfo{offset: offset, dst: t.IsDST()}
}

// JulianDay returns the Julian Day for a proleptic Gregorian calendar date
// where day may carry a fractional part for the time of day (UT).
func JulianDay(year int, month time.Month, day float64) float64 {
	y, m := year, int(month)
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + day + b - 1524.5
}

// JulianDayFromTime converts an instant to a Julian Day (UT).
func JulianDayFromTime(t time.Time) float64 {
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return sec/secondsPerDay + unixEpochJD
}

// TimeFromJulianDay converts a Julian Day (UT) back to a UTC instant,
// rounded to the microsecond.
func TimeFromJulianDay(jd float64) time.Time {
	days := jd - unixEpochJD
	whole := math.Floor(days)
	secWhole := int64(whole) * int64(secondsPerDay)
	frac := (days - whole) * secondsPerDay
	micros := int64(math.Round(frac * 1e6))
	return time.Unix(secWhole, 0).Add(time.Duration(micros) * time.Microsecond).UTC()
}

// Centuries returns Julian centuries since J2000.
func Centuries(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}

// GreenwichSiderealTime returns Greenwich mean sidereal time in hours [0,24).
func GreenwichSiderealTime(jd float64) float64 {
	t := Centuries(jd)
	deg := 280.46061837 + 360.98564736629*(jd-J2000) + 0.000387933*t*t - t*t*t/38710000
	return NormalizeDegrees(deg) / 15
}

// LocalSiderealTime returns local mean sidereal time in hours [0,24) for an
// east-positive longitude.
func LocalSiderealTime(jd, longitude float64) float64 {
	return normalizeHours(GreenwichSiderealTime(jd) + longitude/15)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(jd float64) float64 {
	t := Centuries(jd)
	return 23.439291111 - 0.0130041667*t - 1.64e-7*t*t + 5.036e-7*t*t*t
}
