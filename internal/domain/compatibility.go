package domain

// ElementBalance counts a chart's planets per element.
type ElementBalance struct {
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Air   int `json:"air"`
	Water int `json:"water"`
}

// Add increments the counter for e.
func (b *ElementBalance) Add(e Element) {
	switch e {
	case ElementFire:
		b.Fire++
	case ElementEarth:
		b.Earth++
	case ElementAir:
		b.Air++
	case ElementWater:
		b.Water++
	}
}

// Count returns the counter for e.
func (b ElementBalance) Count(e Element) int {
	switch e {
	case ElementFire:
		return b.Fire
	case ElementEarth:
		return b.Earth
	case ElementAir:
		return b.Air
	case ElementWater:
		return b.Water
	}
	return 0
}

// Total is the number of counted planets.
func (b ElementBalance) Total() int {
	return b.Fire + b.Earth + b.Air + b.Water
}

// Dominant returns the element with the highest count. Ties resolve in the
// fixed order fire, earth, air, water. An empty balance reports ok=false.
func (b ElementBalance) Dominant() (Element, bool) {
	best, bestCount := ElementFire, -1
	for _, e := range Elements() {
		if c := b.Count(e); c > bestCount {
			best, bestCount = e, c
		}
	}
	return best, bestCount > 0
}

// CompatibilityCategories are partial scores over the aspects that involve
// the bodies associated with each life area.
type CompatibilityCategories struct {
	Communication float64 `json:"communication"`
	Emotional     float64 `json:"emotional"`
	Intellectual  float64 `json:"intellectual"`
	Physical      float64 `json:"physical"`
	Spiritual     float64 `json:"spiritual"`
}

// CompatibilityResult is the synastry comparison of two charts.
type CompatibilityResult struct {
	Score          float64                 `json:"score"`
	Aspects        []Aspect                `json:"aspects"`
	ElementsA      ElementBalance          `json:"elements_a"`
	ElementsB      ElementBalance          `json:"elements_b"`
	Categories     CompatibilityCategories `json:"categories"`
	Strengths      []string                `json:"strengths"`
	Challenges     []string                `json:"challenges"`
	Interpretation string                  `json:"interpretation"`
}
