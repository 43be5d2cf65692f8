package astro

import (
	"time"

	"github.com/phrazzld/astral-api/internal/domain"
)

// Engine defines the chart calculation operations
type Engine interface {
	// ComputeChart assembles the natal chart for birth data
	ComputeChart(birth domain.BirthData, opts ...ChartOption) (*domain.BirthChart, error)

	// ComputeCompatibility scores the synastry between two charts
	ComputeCompatibility(a, b *domain.BirthChart) (*domain.CompatibilityResult, error)

	// ComputeCurrentTransits returns the ten planets at a Julian Day
	ComputeCurrentTransits(jd float64) ([]domain.BodyPosition, error)

	// ComputeTransits compares the sky at an instant with a natal chart
	ComputeTransits(natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error)

	// ComputeDailyHoroscope generates the reading for a sign on a calendar date
	ComputeDailyHoroscope(sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error)

	// Params exposes the parameters the engine was built with
	Params() Params
}

// engine is the standard implementation of the Engine interface
type engine struct {
	params *Params
}

// NewDefault creates an engine with default parameters
func NewDefault() Engine {
	return &engine{params: NewDefaultParams()}
}

// New creates an engine with custom parameters. A nil params uses the defaults.
func New(params *Params) Engine {
	if params == nil {
		params = NewDefaultParams()
	}
	return &engine{params: params}
}

func (e *engine) ComputeChart(birth domain.BirthData, opts ...ChartOption) (*domain.BirthChart, error) {
	return e.computeChart(birth, opts...)
}

func (e *engine) ComputeCompatibility(a, b *domain.BirthChart) (*domain.CompatibilityResult, error) {
	return e.computeCompatibility(a, b)
}

func (e *engine) ComputeCurrentTransits(jd float64) ([]domain.BodyPosition, error) {
	return e.currentPositions(jd)
}

func (e *engine) ComputeTransits(natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error) {
	return e.computeTransits(natal, at)
}

func (e *engine) ComputeDailyHoroscope(sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error) {
	return e.computeDailyHoroscope(sign, date)
}

func (e *engine) Params() Params {
	return *e.params
}
