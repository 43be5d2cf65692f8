package astro

import (
	"errors"

	"github.com/phrazzld/astral-api/internal/domain"
)

// Engine errors. Location and time zone failures are reported with
// domain.ErrInvalidLocation and domain.ErrUnknownTimeZone.
var (
	// ErrUnsupportedBody is returned when a position is requested for a body
	// the ephemeris does not model, such as a computed chart point.
	ErrUnsupportedBody = errors.New("unsupported body")

	// ErrDegenerateHouseGeometry marks a house computation that fell back to
	// equal houses because the quadrant formula is unstable at the observer's
	// latitude. It is reported through HouseCusps.FallbackReason, not returned.
	ErrDegenerateHouseGeometry = errors.New("degenerate house geometry")

	// ErrNilChart is returned when a nil chart is passed to a comparison.
	ErrNilChart = errors.New("chart cannot be nil")

	// ErrInvalidSign is returned by the horoscope for out-of-range signs.
	ErrInvalidSign = domain.ErrInvalidSign
)
