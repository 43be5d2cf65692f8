package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// LocalDateTimeLayout is the text form of a LocalDateTime.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a civil wall-clock reading with no time zone attached.
// The zone it belongs to is carried separately by BirthData.
type LocalDateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// NewLocalDateTime builds a LocalDateTime and validates it against the
// proleptic Gregorian calendar.
func NewLocalDateTime(year int, month time.Month, day, hour, minute, second int) (LocalDateTime, error) {
	dt := LocalDateTime{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}
	if err := dt.Validate(); err != nil {
		return LocalDateTime{}, err
	}
	return dt, nil
}

var localDateTimePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2})(?::(\d{2}))?$`)

// ParseLocalDateTime parses "2006-01-02T15:04:05" or "2006-01-02T15:04".
// Any zone suffix is rejected: the zone belongs to BirthData.TimeZone.
// Malformed text returns ErrInvalidFormat; well-formed text naming a date or
// time that does not exist, such as February 30, returns ErrInvalidDateTime.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	m := localDateTimePattern.FindStringSubmatch(s)
	if m == nil {
		return LocalDateTime{}, fmt.Errorf("%w: %q is not a local date-time", ErrInvalidFormat, s)
	}

	fields := make([]int, 6)
	for i, part := range m[1:] {
		if part == "" {
			continue
		}
		// The pattern admits digits only
		fields[i], _ = strconv.Atoi(part)
	}
	return NewLocalDateTime(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5])
}

// LocalDateTimeOf returns the wall-clock fields of t, ignoring its location.
func LocalDateTimeOf(t time.Time) LocalDateTime {
	return LocalDateTime{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Validate reports whether every field is in range and the date exists.
func (dt LocalDateTime) Validate() error {
	if dt.Month < time.January || dt.Month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidDateTime, dt.Month)
	}
	if dt.Day < 1 || dt.Day > daysIn(dt.Month, dt.Year) {
		return fmt.Errorf("%w: day %d of %s %d", ErrInvalidDateTime, dt.Day, dt.Month, dt.Year)
	}
	if dt.Hour < 0 || dt.Hour > 23 || dt.Minute < 0 || dt.Minute > 59 || dt.Second < 0 || dt.Second > 59 {
		return fmt.Errorf("%w: time %02d:%02d:%02d", ErrInvalidDateTime, dt.Hour, dt.Minute, dt.Second)
	}
	return nil
}

// In interprets the wall-clock reading in loc. Nonexistent or repeated wall
// times are normalized by the time package; callers needing a fixed rule
// should resolve the offset themselves.
func (dt LocalDateTime) In(loc *time.Location) time.Time {
	return time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, 0, loc)
}

// AtNoon returns the same date with the time of day set to 12:00:00.
func (dt LocalDateTime) AtNoon() LocalDateTime {
	dt.Hour, dt.Minute, dt.Second = 12, 0, 0
	return dt
}

// String formats the value using LocalDateTimeLayout.
func (dt LocalDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		dt.Year, int(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// MarshalText implements encoding.TextMarshaler.
func (dt LocalDateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *LocalDateTime) UnmarshalText(text []byte) error {
	parsed, err := ParseLocalDateTime(string(text))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

func daysIn(m time.Month, year int) int {
	// Day 0 of the next month is the last day of m.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
