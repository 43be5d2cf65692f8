package astro

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/astral-api/internal/domain"
)

// chartNamespace scopes the name-based chart identifiers.
var chartNamespace = uuid.MustParse("6f1c2b9e-5d4a-4c3b-9a8e-1f2d3c4b5a69")

// ChartOption customizes a single chart computation.
type ChartOption func(*chartOptions)

type chartOptions struct {
	name         string
	houseSystem  domain.HouseSystem
	includeMinor bool
}

// WithName attaches a display name to the chart.
func WithName(name string) ChartOption {
	return func(o *chartOptions) { o.name = strings.TrimSpace(name) }
}

// WithHouseSystem overrides the engine's default house system.
func WithHouseSystem(system domain.HouseSystem) ChartOption {
	return func(o *chartOptions) {
		if system != "" {
			o.houseSystem = system
		}
	}
}

// WithMinorAspects overrides whether minor aspects are detected.
func WithMinorAspects(include bool) ChartOption {
	return func(o *chartOptions) { o.includeMinor = include }
}

// computeChart assembles a natal chart. Nothing is returned on failure.
func (e *engine) computeChart(birth domain.BirthData, opts ...ChartOption) (*domain.BirthChart, error) {
	o := chartOptions{
		houseSystem:  e.params.HouseSystem,
		includeMinor: e.params.IncludeMinorAspects,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := domain.ParseHouseSystem(string(o.houseSystem)); err != nil {
		return nil, err
	}

	frame, err := ResolveFrame(birth)
	if err != nil {
		return nil, err
	}

	planets, err := e.planetPositions(frame.JulianDay)
	if err != nil {
		return nil, err
	}

	houses, err := ComputeHouses(frame.RAMC(), frame.Latitude, frame.Obliquity, o.houseSystem)
	if err != nil {
		return nil, err
	}

	positions := make([]domain.BodyPosition, 0, len(planets)+2)
	for _, p := range planets {
		p.House = houses.HouseOf(p.Longitude)
		positions = append(positions, p)
	}
	for _, point := range []struct {
		body domain.Body
		lon  float64
	}{
		{domain.Ascendant, houses.Ascendant},
		{domain.Midheaven, houses.Midheaven},
	} {
		p := newPosition(point.body, point.lon, 0, 0)
		p.House = houses.HouseOf(p.Longitude)
		positions = append(positions, p)
	}

	chart := &domain.BirthChart{
		ID:            chartID(birth, houses.System, o),
		Name:          o.name,
		BirthData:     birth,
		JulianDay:     frame.JulianDay,
		HouseSystem:   houses.System,
		HouseFallback: houses.Fallback,
		Positions:     positions,
		Houses:        buildHouses(houses, planets),
		Aspects:       DetectAspects(positions, AspectOptions{IncludeMinor: o.includeMinor}),
		Summary: domain.ChartSummary{
			SunSign:       planets[0].Sign,
			MoonSign:      planets[1].Sign,
			AscendantSign: domain.SignOf(houses.Ascendant),
		},
	}
	return chart, nil
}

// planetPositions computes the ten planets at jd in canonical order. Each
// body writes its own slot, so the concurrent and sequential paths produce
// identical slices.
func (e *engine) planetPositions(jd float64) ([]domain.BodyPosition, error) {
	bodies := domain.Planets()
	results := make([]domain.BodyPosition, len(bodies))

	if !e.params.ParallelBodies {
		for i, body := range bodies {
			p, err := ComputePosition(body, jd)
			if err != nil {
				return nil, err
			}
			results[i] = p
		}
		return results, nil
	}

	var g errgroup.Group
	for i, body := range bodies {
		g.Go(func() error {
			p, err := ComputePosition(body, jd)
			if err != nil {
				return fmt.Errorf("position of %s: %w", body, err)
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func buildHouses(cusps HouseCusps, planets []domain.BodyPosition) []domain.House {
	houses := make([]domain.House, domain.HouseCount)
	for i := range houses {
		houses[i] = domain.House{
			Number: i + 1,
			Cusp:   cusps.Cusps[i],
			Sign:   domain.SignOf(cusps.Cusps[i]),
			Bodies: []domain.Body{},
		}
	}
	for _, p := range planets {
		n := cusps.HouseOf(p.Longitude)
		houses[n-1].Bodies = append(houses[n-1].Bodies, p.Body)
	}
	return houses
}

// chartID derives a stable identifier from everything that shapes the chart.
func chartID(birth domain.BirthData, system domain.HouseSystem, o chartOptions) uuid.UUID {
	key := strings.Join([]string{
		birth.DateTime.String(),
		strings.TrimSpace(birth.TimeZone),
		strconv.FormatFloat(birth.Latitude, 'f', -1, 64),
		strconv.FormatFloat(birth.Longitude, 'f', -1, 64),
		strconv.FormatBool(birth.IsTimeExact),
		strings.TrimSpace(birth.PlaceName),
		string(system),
		strconv.FormatBool(o.includeMinor),
		o.name,
	}, "|")
	return uuid.NewSHA1(chartNamespace, []byte(key))
}
