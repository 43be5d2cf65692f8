package astro

import "github.com/phrazzld/astral-api/internal/domain"

type signProfile struct {
	keywords []string
	colors   []string
	strength string
	weakness string
}

var signProfiles = map[domain.ZodiacSign]signProfile{
	domain.Aries: {
		keywords: []string{"initiative", "courage"},
		colors:   []string{"red", "scarlet"},
		strength: "your readiness to act first",
		weakness: "impatience",
	},
	domain.Taurus: {
		keywords: []string{"stability", "comfort"},
		colors:   []string{"green", "rose"},
		strength: "your steady persistence",
		weakness: "stubbornness",
	},
	domain.Gemini: {
		keywords: []string{"curiosity", "exchange"},
		colors:   []string{"yellow", "light blue"},
		strength: "your quick mind",
		weakness: "scattered attention",
	},
	domain.Cancer: {
		keywords: []string{"home", "care"},
		colors:   []string{"silver", "white"},
		strength: "your instinct to protect",
		weakness: "moodiness",
	},
	domain.Leo: {
		keywords: []string{"expression", "generosity"},
		colors:   []string{"gold", "orange"},
		strength: "your warmth",
		weakness: "pride",
	},
	domain.Virgo: {
		keywords: []string{"service", "detail"},
		colors:   []string{"navy", "beige"},
		strength: "your eye for what needs fixing",
		weakness: "overthinking",
	},
	domain.Libra: {
		keywords: []string{"balance", "partnership"},
		colors:   []string{"pink", "pale blue"},
		strength: "your sense of fairness",
		weakness: "indecision",
	},
	domain.Scorpio: {
		keywords: []string{"depth", "intensity"},
		colors:   []string{"burgundy", "black"},
		strength: "your emotional depth",
		weakness: "suspicion",
	},
	domain.Sagittarius: {
		keywords: []string{"adventure", "meaning"},
		colors:   []string{"purple", "turquoise"},
		strength: "your optimism",
		weakness: "restlessness",
	},
	domain.Capricorn: {
		keywords: []string{"ambition", "structure"},
		colors:   []string{"brown", "charcoal"},
		strength: "your discipline",
		weakness: "rigidity",
	},
	domain.Aquarius: {
		keywords: []string{"innovation", "community"},
		colors:   []string{"electric blue", "silver"},
		strength: "your originality",
		weakness: "detachment",
	},
	domain.Pisces: {
		keywords: []string{"imagination", "compassion"},
		colors:   []string{"sea green", "lavender"},
		strength: "your empathy",
		weakness: "escapism",
	},
}

var generalTemplates = map[string]string{
	ToneUplifting:      "The sky is on your side today, %s. Lean on %s and let momentum build.",
	ToneChallenging:    "Today asks for patience, %s. Watch for %s and take things one step at a time.",
	ToneTransformative: "Something is shifting for you, %s. Let %s carry you through the change.",
	TonePeaceful:       "A quiet day unfolds for you, %s. Use %s to settle unfinished business.",
}

var loveTemplates = []string{
	"Honest words bring you closer to someone who matters.",
	"Give affection without keeping score and it returns doubled.",
	"Make room for a slower conversation with your partner.",
	"A small gesture says more than a grand plan today.",
}

var careerTemplates = []string{
	"Finish what is already on your desk before taking on more.",
	"A colleague's idea fits neatly with your own; build on it.",
	"Your preparation gets noticed. Speak up in the meeting.",
	"Review the numbers twice before you commit.",
}

var healthTemplates = []string{
	"A walk outside clears more than your head.",
	"Drink more water and go to bed earlier than usual.",
	"Stretch between tasks to release built-up tension.",
	"Respect your energy limits rather than pushing through.",
}

var phaseAdvice = map[domain.LunarPhase]string{
	domain.PhaseNewMoon:        "Set one clear intention and write it down.",
	domain.PhaseWaxingCrescent: "Take the first small step toward a new goal.",
	domain.PhaseFirstQuarter:   "Push through the first obstacle instead of turning back.",
	domain.PhaseWaxingGibbous:  "Refine your plan; details matter now.",
	domain.PhaseFullMoon:       "Celebrate what has come to fruition and release what has not.",
	domain.PhaseWaningGibbous:  "Share what you have learned with someone who can use it.",
	domain.PhaseLastQuarter:    "Let go of a habit that no longer serves you.",
	domain.PhaseWaningCrescent: "Rest and reflect before the next cycle begins.",
}
