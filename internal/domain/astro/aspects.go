package astro

import (
	"math"
	"sort"

	"github.com/phrazzld/astral-api/internal/domain"
)

// AspectOptions selects which aspect types are detected.
type AspectOptions struct {
	IncludeMinor bool
}

func (o AspectOptions) types() []domain.AspectType {
	types := domain.MajorAspects()
	if o.IncludeMinor {
		types = append(types, domain.MinorAspects()...)
	}
	return types
}

// MatchAspect classifies a separation in degrees. When several types are in
// orb the one with the smallest deviation wins; ties go to the smaller
// defined orb and then to the lexically smaller name.
func MatchAspect(separation float64, opts AspectOptions) (domain.AspectType, float64, bool) {
	var (
		best    domain.AspectType
		bestOrb = math.Inf(1)
		found   bool
	)
	for _, t := range opts.types() {
		orb := math.Abs(separation - t.Angle())
		if orb > t.Orb() {
			continue
		}
		if !found || orb < bestOrb || (orb == bestOrb && preferType(t, best)) {
			best, bestOrb, found = t, orb, true
		}
	}
	return best, bestOrb, found
}

func preferType(candidate, current domain.AspectType) bool {
	if candidate.Orb() != current.Orb() {
		return candidate.Orb() < current.Orb()
	}
	return candidate < current
}

func aspectBetween(a, b domain.BodyPosition, opts AspectOptions) (domain.Aspect, bool) {
	if a.Body.IsPoint() && b.Body.IsPoint() {
		return domain.Aspect{}, false
	}
	sep := AngularSeparation(a.Longitude, b.Longitude)
	t, orb, ok := MatchAspect(sep, opts)
	if !ok {
		return domain.Aspect{}, false
	}
	return domain.Aspect{
		First:      a.Body,
		Second:     b.Body,
		Type:       t,
		Separation: sep,
		Orb:        orb,
		Harmonic:   t.IsHarmonic(),
	}, true
}

func canonicalOrder(positions []domain.BodyPosition) []domain.BodyPosition {
	sorted := make([]domain.BodyPosition, len(positions))
	copy(sorted, positions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Body < sorted[j].Body })
	return sorted
}

// DetectAspects finds the aspects within one chart. Each unordered pair is
// reported at most once with First preceding Second in canonical order.
// Pairs of two chart points are skipped.
func DetectAspects(positions []domain.BodyPosition, opts AspectOptions) []domain.Aspect {
	sorted := canonicalOrder(positions)
	aspects := make([]domain.Aspect, 0, len(sorted))
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i].Body == sorted[j].Body {
				continue
			}
			if a, ok := aspectBetween(sorted[i], sorted[j], opts); ok {
				aspects = append(aspects, a)
			}
		}
	}
	return aspects
}

// DetectSynastryAspects finds aspects between the bodies of two charts. First
// always belongs to a, Second to b. A body may aspect its counterpart.
func DetectSynastryAspects(a, b []domain.BodyPosition, opts AspectOptions) []domain.Aspect {
	left, right := canonicalOrder(a), canonicalOrder(b)
	aspects := make([]domain.Aspect, 0, len(left))
	for _, pa := range left {
		for _, pb := range right {
			if asp, ok := aspectBetween(pa, pb, opts); ok {
				aspects = append(aspects, asp)
			}
		}
	}
	return aspects
}
