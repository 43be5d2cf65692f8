package domain

import "time"

// TransitInfluence is the broad quality of a transit.
type TransitInfluence string

// Influences.
const (
	InfluenceHarmonious     TransitInfluence = "harmonious"
	InfluenceChallenging    TransitInfluence = "challenging"
	InfluenceTransformative TransitInfluence = "transformative"
	InfluenceNeutral        TransitInfluence = "neutral"
)

// ImpactLevel buckets a transit's intensity.
type ImpactLevel string

// Impact levels from strongest to weakest.
const (
	ImpactMajor    ImpactLevel = "major"
	ImpactModerate ImpactLevel = "moderate"
	ImpactMinor    ImpactLevel = "minor"
	ImpactSubtle   ImpactLevel = "subtle"
)

// Rank orders impact levels; a lower rank is stronger.
func (l ImpactLevel) Rank() int {
	switch l {
	case ImpactMajor:
		return 0
	case ImpactModerate:
		return 1
	case ImpactMinor:
		return 2
	default:
		return 3
	}
}

// LunarPhase is one of eight phases of the Moon.
type LunarPhase string

// Phases in waxing order.
const (
	PhaseNewMoon        LunarPhase = "new_moon"
	PhaseWaxingCrescent LunarPhase = "waxing_crescent"
	PhaseFirstQuarter   LunarPhase = "first_quarter"
	PhaseWaxingGibbous  LunarPhase = "waxing_gibbous"
	PhaseFullMoon       LunarPhase = "full_moon"
	PhaseWaningGibbous  LunarPhase = "waning_gibbous"
	PhaseLastQuarter    LunarPhase = "last_quarter"
	PhaseWaningCrescent LunarPhase = "waning_crescent"
)

// Transit is an aspect from a transiting body to a natal body.
type Transit struct {
	TransitingBody Body             `json:"transiting_body"`
	NatalBody      Body             `json:"natal_body"`
	Aspect         AspectType       `json:"aspect"`
	Orb            float64          `json:"orb"`
	Influence      TransitInfluence `json:"influence"`
	Intensity      float64          `json:"intensity"`
	Impact         ImpactLevel      `json:"impact"`
	NatalHouse     int              `json:"natal_house,omitempty"`
	Start          time.Time        `json:"start"`
	End            time.Time        `json:"end"`
	Interpretation string           `json:"interpretation"`
}

// SignIngress marks a transiting planet close to a sign boundary.
type SignIngress struct {
	Body     Body       `json:"body"`
	Sign     ZodiacSign `json:"sign"`
	Degree   float64    `json:"degree"`
	Entering bool       `json:"entering"`
}

// MoonState is the Moon's sign and phase at an instant.
type MoonState struct {
	Sign         ZodiacSign `json:"sign"`
	Phase        LunarPhase `json:"phase"`
	Elongation   float64    `json:"elongation"`
	Illumination float64    `json:"illumination"`
}

// DailyInsight summarizes a day's transits for one natal chart.
type DailyInsight struct {
	EnergyLevel     int      `json:"energy_level"`
	EmotionalTone   string   `json:"emotional_tone"`
	Focus           []string `json:"focus"`
	Recommendations []string `json:"recommendations"`
	Affirmation     string   `json:"affirmation"`
}

// TransitReport is the result of comparing an instant against a natal chart.
type TransitReport struct {
	At        time.Time      `json:"at"`
	JulianDay float64        `json:"julian_day"`
	Positions []BodyPosition `json:"positions"`
	Transits  []Transit      `json:"transits"`
	Ingresses []SignIngress  `json:"ingresses"`
	Moon      MoonState      `json:"moon"`
	Insight   DailyInsight   `json:"insight"`
}
