package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HouseSystem selects how the twelve cusps are placed.
type HouseSystem string

// Supported house systems.
const (
	// HouseSystemPorphyry trisects each quadrant between the angles.
	HouseSystemPorphyry HouseSystem = "porphyry"
	// HouseSystemEqual places cusps every 30° from the Ascendant.
	HouseSystemEqual HouseSystem = "equal"
)

// DefaultHouseSystem is used when none is requested.
const DefaultHouseSystem = HouseSystemPorphyry

// HouseCount is the number of houses in every chart.
const HouseCount = 12

// ParseHouseSystem validates a house system name; empty means the default.
func ParseHouseSystem(name string) (HouseSystem, error) {
	switch HouseSystem(name) {
	case "":
		return DefaultHouseSystem, nil
	case HouseSystemPorphyry, HouseSystemEqual:
		return HouseSystem(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHouseSystem, name)
	}
}

// BodyPosition is the ecliptic position of one body at the chart instant.
type BodyPosition struct {
	Body         Body       `json:"body"`
	Longitude    float64    `json:"longitude"`
	Latitude     float64    `json:"latitude"`
	Speed        float64    `json:"speed"`
	Sign         ZodiacSign `json:"sign"`
	DegreeInSign float64    `json:"degree_in_sign"`
	Retrograde   bool       `json:"retrograde"`
	House        int        `json:"house,omitempty"`
}

// House is one of the twelve ecliptic sectors of a chart.
type House struct {
	Number int        `json:"number"`
	Cusp   float64    `json:"cusp"`
	Sign   ZodiacSign `json:"sign"`
	Bodies []Body     `json:"bodies"`
}

// ChartSummary holds the "big three" signs.
type ChartSummary struct {
	SunSign       ZodiacSign `json:"sun_sign"`
	MoonSign      ZodiacSign `json:"moon_sign"`
	AscendantSign ZodiacSign `json:"ascendant_sign"`
}

// BirthChart is a fully assembled natal chart.
type BirthChart struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name,omitempty"`
	BirthData     BirthData      `json:"birth_data"`
	JulianDay     float64        `json:"julian_day"`
	HouseSystem   HouseSystem    `json:"house_system"`
	HouseFallback bool           `json:"house_fallback"`
	Positions     []BodyPosition `json:"positions"`
	Houses        []House        `json:"houses"`
	Aspects       []Aspect       `json:"aspects"`
	Summary       ChartSummary   `json:"summary"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Position returns the position of b, if present.
func (c *BirthChart) Position(b Body) (BodyPosition, bool) {
	for _, p := range c.Positions {
		if p.Body == b {
			return p, true
		}
	}
	return BodyPosition{}, false
}

// House returns the house with the given number, if present.
func (c *BirthChart) House(number int) (House, bool) {
	for _, h := range c.Houses {
		if h.Number == number {
			return h, true
		}
	}
	return House{}, false
}

// Validate checks the structural invariants of an assembled chart: exactly
// twelve houses numbered 1..12, cusps in [0,360), positions unique per body
// and every non-point body assigned to exactly one house.
func (c *BirthChart) Validate() error {
	if len(c.Houses) != HouseCount {
		return fmt.Errorf("%w: chart has %d houses", ErrValidation, len(c.Houses))
	}
	seenHouse := make(map[int]bool, HouseCount)
	membership := make(map[Body]int)
	for _, h := range c.Houses {
		if h.Number < 1 || h.Number > HouseCount || seenHouse[h.Number] {
			return fmt.Errorf("%w: bad house number %d", ErrValidation, h.Number)
		}
		seenHouse[h.Number] = true
		if h.Cusp < 0 || h.Cusp >= 360 {
			return fmt.Errorf("%w: house %d cusp %v out of range", ErrValidation, h.Number, h.Cusp)
		}
		for _, b := range h.Bodies {
			membership[b]++
		}
	}
	seenBody := make(map[Body]bool, len(c.Positions))
	for _, p := range c.Positions {
		if seenBody[p.Body] {
			return fmt.Errorf("%w: duplicate position for %s", ErrValidation, p.Body)
		}
		seenBody[p.Body] = true
		if p.Body.IsPoint() {
			continue
		}
		if membership[p.Body] != 1 {
			return fmt.Errorf("%w: %s is in %d houses", ErrValidation, p.Body, membership[p.Body])
		}
	}
	return nil
}
