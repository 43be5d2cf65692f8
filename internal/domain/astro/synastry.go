package astro

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/phrazzld/astral-api/internal/domain"
)

const (
	baselineScore   = 50.0
	scoreMultiplier = 5.0
	highlightCount  = 3

	// Share of the mirror resonance that disharmonic aspects cannot cancel
	resonanceFloor = 0.75
)

var aspectValence = map[domain.AspectType]float64{
	domain.AspectConjunction:    1.0,
	domain.AspectTrine:          1.0,
	domain.AspectSextile:        0.7,
	domain.AspectSquare:         -1.0,
	domain.AspectOpposition:     -0.8,
	domain.AspectSemisextile:    0.3,
	domain.AspectSemisquare:     -0.3,
	domain.AspectSesquiquadrate: -0.3,
	domain.AspectQuincunx:       -0.3,
}

// pairWeight doubles the luminary and Venus–Mars contacts.
func pairWeight(a domain.Aspect) float64 {
	switch {
	case a.Pair(domain.Sun, domain.Moon),
		a.Pair(domain.Sun, domain.Sun),
		a.Pair(domain.Venus, domain.Mars):
		return 2.0
	default:
		return 1.0
	}
}

// CompatibilityScore folds synastry aspects into a 0..100 score. Each aspect
// contributes its valence, weighted by the pair and by 1/(1+orb), around a
// baseline of 50. No aspects yields exactly 50.
//
// Mirror contacts, where a body conjoins the same body in the other chart,
// form the resonance of the pairing. The net sum never drops below
// resonanceFloor of that resonance, so a chart compared with itself scores
// at least 50 + 5·0.75·11 = 91.25 however many hard aspects it carries.
func CompatibilityScore(aspects []domain.Aspect) float64 {
	var sum, resonance float64
	for _, a := range aspects {
		contribution := aspectValence[a.Type] * pairWeight(a) / (1 + a.Orb)
		sum += contribution
		if isMirrorContact(a) {
			resonance += contribution
		}
	}
	sum = math.Max(sum, resonanceFloor*resonance)
	return math.Max(0, math.Min(100, baselineScore+scoreMultiplier*sum))
}

func isMirrorContact(a domain.Aspect) bool {
	return a.First == a.Second && a.Type == domain.AspectConjunction
}

// ElementBalanceOf counts a chart's planets by the element of their sign.
func ElementBalanceOf(chart *domain.BirthChart) domain.ElementBalance {
	var b domain.ElementBalance
	for _, p := range chart.Positions {
		if p.Body.IsPoint() {
			continue
		}
		b.Add(p.Sign.Element())
	}
	return b
}

var categoryBodies = struct {
	communication, emotional, intellectual, physical, spiritual []domain.Body
}{
	communication: []domain.Body{domain.Mercury},
	emotional:     []domain.Body{domain.Moon},
	intellectual:  []domain.Body{domain.Mercury, domain.Jupiter},
	physical:      []domain.Body{domain.Venus, domain.Mars},
	spiritual:     []domain.Body{domain.Sun, domain.Neptune, domain.Jupiter},
}

func categoryScore(aspects []domain.Aspect, bodies []domain.Body) float64 {
	subset := make([]domain.Aspect, 0, len(aspects))
	for _, a := range aspects {
		for _, b := range bodies {
			if a.Involves(b) {
				subset = append(subset, a)
				break
			}
		}
	}
	return CompatibilityScore(subset)
}

func (e *engine) computeCompatibility(a, b *domain.BirthChart) (*domain.CompatibilityResult, error) {
	if a == nil || b == nil {
		return nil, ErrNilChart
	}

	aspects := DetectSynastryAspects(a.Positions, b.Positions, e.params.aspectOptions())
	result := &domain.CompatibilityResult{
		Score:     CompatibilityScore(aspects),
		Aspects:   aspects,
		ElementsA: ElementBalanceOf(a),
		ElementsB: ElementBalanceOf(b),
		Categories: domain.CompatibilityCategories{
			Communication: categoryScore(aspects, categoryBodies.communication),
			Emotional:     categoryScore(aspects, categoryBodies.emotional),
			Intellectual:  categoryScore(aspects, categoryBodies.intellectual),
			Physical:      categoryScore(aspects, categoryBodies.physical),
			Spiritual:     categoryScore(aspects, categoryBodies.spiritual),
		},
		Strengths:  highlights(aspects, true),
		Challenges: highlights(aspects, false),
	}
	result.Interpretation = interpretCompatibility(result)
	return result, nil
}

// highlights describes the tightest harmonic (or disharmonic) aspects.
func highlights(aspects []domain.Aspect, harmonic bool) []string {
	picked := make([]domain.Aspect, 0, len(aspects))
	for _, a := range aspects {
		if a.Harmonic == harmonic {
			picked = append(picked, a)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Orb < picked[j].Orb })
	if len(picked) > highlightCount {
		picked = picked[:highlightCount]
	}
	out := make([]string, 0, len(picked))
	for _, a := range picked {
		out = append(out, describeAspect(a))
	}
	return out
}

func describeAspect(a domain.Aspect) string {
	return fmt.Sprintf("%s %s %s (orb %.1f°)", titleCase(a.First.String()), a.Type, titleCase(a.Second.String()), a.Orb)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func scoreBand(score float64) string {
	switch {
	case score >= 80:
		return "This is an exceptionally harmonious pairing with a natural ease between you."
	case score >= 65:
		return "This is a strong connection with more support than friction."
	case score >= 50:
		return "This is a balanced connection where effort and understanding go a long way."
	case score >= 35:
		return "This pairing carries real tension that asks for patience from both sides."
	default:
		return "This is a demanding combination whose lessons come through conflict."
	}
}

func complementary(x, y domain.Element) bool {
	pair := func(p, q domain.Element) bool { return (x == p && y == q) || (x == q && y == p) }
	return pair(domain.ElementFire, domain.ElementAir) || pair(domain.ElementEarth, domain.ElementWater)
}

func interpretCompatibility(r *domain.CompatibilityResult) string {
	parts := []string{scoreBand(r.Score)}

	ea, okA := r.ElementsA.Dominant()
	eb, okB := r.ElementsB.Dominant()
	switch {
	case !okA || !okB:
	case ea == eb:
		parts = append(parts, fmt.Sprintf("You share a dominant %s temperament.", ea))
	case complementary(ea, eb):
		parts = append(parts, fmt.Sprintf("Your %s and %s natures feed each other.", ea, eb))
	default:
		parts = append(parts, fmt.Sprintf("Your %s and %s natures work at different rhythms.", ea, eb))
	}

	if len(r.Strengths) > 0 {
		parts = append(parts, "Strongest support: "+r.Strengths[0]+".")
	}
	if len(r.Challenges) > 0 {
		parts = append(parts, "Main growth point: "+r.Challenges[0]+".")
	}
	return strings.Join(parts, " ")
}
