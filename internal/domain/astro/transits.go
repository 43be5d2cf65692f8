package astro

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/phrazzld/astral-api/internal/domain"
)

const insightTransits = 5

// transitDays is how long a transit of each planet stays in effect.
var transitDays = map[domain.Body]float64{
	domain.Sun:     2,
	domain.Moon:    0.5,
	domain.Mercury: 3,
	domain.Venus:   5,
	domain.Mars:    7,
	domain.Jupiter: 14,
	domain.Saturn:  30,
	domain.Uranus:  90,
	domain.Neptune: 120,
	domain.Pluto:   150,
}

// InfluenceOf classifies an aspect made by a transiting body.
func InfluenceOf(transiting domain.Body, aspect domain.AspectType) domain.TransitInfluence {
	switch aspect {
	case domain.AspectTrine, domain.AspectSextile:
		return domain.InfluenceHarmonious
	case domain.AspectSquare, domain.AspectOpposition:
		return domain.InfluenceChallenging
	case domain.AspectConjunction:
		switch transiting {
		case domain.Mars, domain.Saturn, domain.Uranus, domain.Neptune, domain.Pluto:
			return domain.InfluenceTransformative
		case domain.Venus, domain.Jupiter:
			return domain.InfluenceHarmonious
		}
	}
	return domain.InfluenceNeutral
}

// ImpactOf buckets an intensity in [0,1].
func ImpactOf(intensity float64) domain.ImpactLevel {
	switch {
	case intensity >= 0.8:
		return domain.ImpactMajor
	case intensity >= 0.5:
		return domain.ImpactModerate
	case intensity >= 0.2:
		return domain.ImpactMinor
	default:
		return domain.ImpactSubtle
	}
}

// currentPositions returns the ten planets at jd.
func (e *engine) currentPositions(jd float64) ([]domain.BodyPosition, error) {
	return e.planetPositions(jd)
}

func (e *engine) computeTransits(natal *domain.BirthChart, at time.Time) (*domain.TransitReport, error) {
	if natal == nil {
		return nil, ErrNilChart
	}
	at = at.UTC()
	jd := JulianDayFromTime(at)

	positions, err := e.planetPositions(jd)
	if err != nil {
		return nil, err
	}

	transits := findTransits(positions, natal.Positions, at, e.params.aspectOptions())
	moon := moonState(positions[0].Longitude, positions[1].Longitude)

	return &domain.TransitReport{
		At:        at,
		JulianDay: jd,
		Positions: positions,
		Transits:  transits,
		Ingresses: findIngresses(positions, e.params.IngressWindow),
		Moon:      moon,
		Insight:   dailyInsight(transits, moon),
	}, nil
}

// findTransits compares every transiting planet with every natal position,
// strongest first.
func findTransits(current, natal []domain.BodyPosition, at time.Time, opts AspectOptions) []domain.Transit {
	transits := make([]domain.Transit, 0)
	for _, tp := range current {
		for _, np := range canonicalOrder(natal) {
			t, orb, ok := MatchAspect(AngularSeparation(tp.Longitude, np.Longitude), opts)
			if !ok {
				continue
			}
			intensity := 1 - orb/t.Orb()
			half := time.Duration(transitDays[tp.Body] * float64(24*time.Hour) / 2)
			influence := InfluenceOf(tp.Body, t)
			transits = append(transits, domain.Transit{
				TransitingBody: tp.Body,
				NatalBody:      np.Body,
				Aspect:         t,
				Orb:            orb,
				Influence:      influence,
				Intensity:      intensity,
				Impact:         ImpactOf(intensity),
				NatalHouse:     np.House,
				Start:          at.Add(-half),
				End:            at.Add(half),
				Interpretation: interpretTransit(tp.Body, np.Body, t, influence),
			})
		}
	}
	sort.SliceStable(transits, func(i, j int) bool {
		ri, rj := transits[i].Impact.Rank(), transits[j].Impact.Rank()
		if ri != rj {
			return ri < rj
		}
		return transits[i].Intensity > transits[j].Intensity
	})
	return transits
}

// findIngresses reports planets within window degrees of a sign boundary.
// Entering is set when the planet sits at the start of its sign, unset when
// it is about to leave it.
func findIngresses(positions []domain.BodyPosition, window float64) []domain.SignIngress {
	out := make([]domain.SignIngress, 0)
	for _, p := range positions {
		switch {
		case p.DegreeInSign < window:
			out = append(out, domain.SignIngress{Body: p.Body, Sign: p.Sign, Degree: p.DegreeInSign, Entering: true})
		case p.DegreeInSign > domain.DegreesPerSign-window:
			out = append(out, domain.SignIngress{Body: p.Body, Sign: p.Sign, Degree: p.DegreeInSign, Entering: false})
		}
	}
	return out
}

var influenceVerb = map[domain.TransitInfluence]string{
	domain.InfluenceHarmonious:     "supports",
	domain.InfluenceChallenging:    "tests",
	domain.InfluenceTransformative: "reshapes",
	domain.InfluenceNeutral:        "highlights",
}

func interpretTransit(transiting, natal domain.Body, aspect domain.AspectType, influence domain.TransitInfluence) string {
	return fmt.Sprintf("Transiting %s in %s to your natal %s %s %s.",
		titleCase(transiting.String()), aspect, titleCase(natal.String()),
		influenceVerb[influence], bodyThemes[natal])
}

var bodyThemes = map[domain.Body]string{
	domain.Sun:       "your sense of purpose",
	domain.Moon:      "your emotional needs",
	domain.Mercury:   "the way you think and speak",
	domain.Venus:     "your relationships and pleasures",
	domain.Mars:      "your drive and ambition",
	domain.Jupiter:   "your growth and optimism",
	domain.Saturn:    "your commitments and limits",
	domain.Uranus:    "your need for freedom",
	domain.Neptune:   "your dreams and intuition",
	domain.Pluto:     "your deepest motivations",
	domain.Ascendant: "how you meet the world",
	domain.Midheaven: "your public direction",
}

// Emotional tones of a day.
const (
	ToneUplifting      = "uplifting"
	ToneChallenging    = "challenging"
	ToneTransformative = "transformative"
	TonePeaceful       = "peaceful"
)

var affirmations = map[string]string{
	ToneUplifting:      "I am open to new possibilities and accept the support around me.",
	ToneChallenging:    "I am strong enough to meet every obstacle with wisdom.",
	ToneTransformative: "I welcome change as the path to who I am becoming.",
	TonePeaceful:       "I am in harmony with myself and the world around me.",
}

var focusAreas = map[domain.Body]string{
	domain.Venus:   "relationships",
	domain.Mars:    "career",
	domain.Moon:    "health",
	domain.Mercury: "communication",
	domain.Neptune: "spirituality",
	domain.Pluto:   "spirituality",
}

func focusOf(b domain.Body) string {
	if f, ok := focusAreas[b]; ok {
		return f
	}
	return "creativity"
}

func recommendation(t domain.Transit) string {
	switch {
	case t.TransitingBody == domain.Venus && t.Influence == domain.InfluenceHarmonious:
		return "A good day for romance and creative work. Spend time with the people close to you."
	case t.TransitingBody == domain.Mars && t.Influence == domain.InfluenceChallenging:
		return "Avoid conflict and hasty decisions. Put the extra energy into exercise."
	case t.TransitingBody == domain.Mercury && t.Influence == domain.InfluenceHarmonious:
		return "Conversations and study go well. Start the important discussion."
	default:
		return "Pay attention to what is changing and listen to your intuition."
	}
}

func emotionalTone(top []domain.Transit) string {
	var harmonious, challenging int
	for _, t := range top {
		switch t.Influence {
		case domain.InfluenceTransformative:
			return ToneTransformative
		case domain.InfluenceHarmonious:
			harmonious++
		case domain.InfluenceChallenging:
			challenging++
		}
	}
	switch {
	case challenging > harmonious:
		return ToneChallenging
	case harmonious > 0:
		return ToneUplifting
	default:
		return TonePeaceful
	}
}

func energyLevel(top []domain.Transit, moon domain.MoonState) int {
	energy := 5.0
	for _, t := range top {
		switch t.Influence {
		case domain.InfluenceHarmonious:
			energy += t.Intensity
		case domain.InfluenceChallenging:
			energy -= t.Intensity
		case domain.InfluenceTransformative:
			energy += 0.5 * t.Intensity
		}
	}
	// The waxing half of the cycle lifts the day slightly.
	if moon.Elongation < 180 {
		energy += 0.5
	}
	return clampLevel(energy)
}

func clampLevel(v float64) int {
	return int(math.Max(1, math.Min(10, math.Round(v))))
}

func dailyInsight(transits []domain.Transit, moon domain.MoonState) domain.DailyInsight {
	top := transits
	if len(top) > insightTransits {
		top = top[:insightTransits]
	}
	tone := emotionalTone(top)

	focus := make([]string, 0, 3)
	recs := make([]string, 0, 3)
	seen := make(map[string]bool)
	for i, t := range top {
		if i >= 3 {
			break
		}
		recs = append(recs, recommendation(t))
		if f := focusOf(t.TransitingBody); !seen[f] {
			seen[f] = true
			focus = append(focus, f)
		}
	}

	return domain.DailyInsight{
		EnergyLevel:     energyLevel(top, moon),
		EmotionalTone:   tone,
		Focus:           focus,
		Recommendations: recs,
		Affirmation:     affirmations[tone],
	}
}
