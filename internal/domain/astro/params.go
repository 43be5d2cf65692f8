package astro

import (
	"github.com/phrazzld/astral-api/internal/domain"
)

// Params defines the configurable parameters of the engine
type Params struct {
	// House system used when a request does not name one
	HouseSystem domain.HouseSystem

	// Whether the optional minor aspects are detected
	IncludeMinorAspects bool

	// Whether body positions are computed concurrently
	ParallelBodies bool

	// Distance from a sign boundary, in degrees, reported as an ingress
	IngressWindow float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	HouseSystem         string
	IncludeMinorAspects bool
	ParallelBodies      *bool
	IngressWindow       float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		HouseSystem:         domain.DefaultHouseSystem,
		IncludeMinorAspects: false,
		ParallelBodies:      true,
		IngressWindow:       2.0,
	}
}

// NewParams creates a new Params instance with custom configuration. Unknown
// house systems return domain.ErrInvalidHouseSystem.
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	system, err := domain.ParseHouseSystem(config.HouseSystem)
	if err != nil {
		return nil, err
	}
	params.HouseSystem = system
	params.IncludeMinorAspects = config.IncludeMinorAspects

	if config.ParallelBodies != nil {
		params.ParallelBodies = *config.ParallelBodies
	}
	if config.IngressWindow > 0 {
		params.IngressWindow = config.IngressWindow
	}

	return params, nil
}

func (p *Params) aspectOptions() AspectOptions {
	return AspectOptions{IncludeMinor: p.IncludeMinorAspects}
}
