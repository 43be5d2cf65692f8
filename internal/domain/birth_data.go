package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
	// Zone rules are embedded so results do not depend on the host database.
	_ "time/tzdata"
)

// Coordinate bounds in degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// BirthData is the input of every natal computation. When IsTimeExact is
// false the time of day is unknown and local noon is used instead.
type BirthData struct {
	DateTime    LocalDateTime `json:"date_time"`
	TimeZone    string        `json:"time_zone"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	PlaceName   string        `json:"place_name,omitempty"`
	IsTimeExact bool          `json:"is_time_exact"`
}

// NewBirthData creates BirthData and validates it.
func NewBirthData(
	dateTime LocalDateTime,
	timeZone string,
	latitude, longitude float64,
	placeName string,
	isTimeExact bool,
) (BirthData, error) {
	bd := BirthData{
		DateTime:    dateTime,
		TimeZone:    timeZone,
		Latitude:    latitude,
		Longitude:   longitude,
		PlaceName:   placeName,
		IsTimeExact: isTimeExact,
	}
	if err := bd.Validate(); err != nil {
		return BirthData{}, err
	}
	return bd, nil
}

// Validate checks coordinates, the civil date-time and the time zone.
// Returns ErrInvalidLocation, ErrInvalidDateTime or ErrUnknownTimeZone.
func (b BirthData) Validate() error {
	if err := ValidateCoordinates(b.Latitude, b.Longitude); err != nil {
		return err
	}
	if err := b.DateTime.Validate(); err != nil {
		return err
	}
	if _, err := LoadTimeZone(b.TimeZone); err != nil {
		return err
	}
	return nil
}

// EffectiveDateTime returns the wall-clock reading the engine should use:
// the recorded one, or local noon when the time of day is unknown.
func (b BirthData) EffectiveDateTime() LocalDateTime {
	if !b.IsTimeExact {
		return b.DateTime.AtNoon()
	}
	return b.DateTime
}

// ValidateCoordinates reports ErrInvalidLocation for out-of-range or
// non-finite coordinates.
func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) ||
		latitude < MinLatitude || latitude > MaxLatitude {
		return fmt.Errorf("%w: latitude %v outside [%v, %v]",
			ErrInvalidLocation, latitude, MinLatitude, MaxLatitude)
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) ||
		longitude < MinLongitude || longitude > MaxLongitude {
		return fmt.Errorf("%w: longitude %v outside [%v, %v]",
			ErrInvalidLocation, longitude, MinLongitude, MaxLongitude)
	}
	return nil
}

// LoadTimeZone resolves an IANA zone name. The empty name and "Local" are
// rejected because they would make results depend on the host.
func LoadTimeZone(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeZone, name)
	}
	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimeZone, name, err)
	}
	return loc, nil
}
