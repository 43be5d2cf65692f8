package astro

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/phrazzld/astral-api/internal/domain"
)

const (
	luckyNumberCount = 3
	luckyNumberMax   = 99
)

// horoscopeSeed hashes the calendar date and sign so every text choice is
// repeatable for the same day.
func horoscopeSeed(sign domain.ZodiacSign, day time.Time) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(day.Format("2006-01-02")))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(sign.String()))
	return h.Sum64()
}

// LuckyNumbers derives distinct numbers in 1..99 for a sign and date.
func LuckyNumbers(sign domain.ZodiacSign, day time.Time) []int {
	seed := horoscopeSeed(sign, day)
	numbers := make([]int, 0, luckyNumberCount)
	seen := make(map[int]bool, luckyNumberCount)
	var buf [8]byte
	for counter := uint64(0); len(numbers) < luckyNumberCount; counter++ {
		binary.BigEndian.PutUint64(buf[:], seed+counter)
		h := fnv.New64a()
		_, _ = h.Write(buf[:])
		n := int(h.Sum64()%luckyNumberMax) + 1
		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers
}

func pick(options []string, seed uint64, salt uint64) string {
	return options[(seed+salt)%uint64(len(options))]
}

func (e *engine) computeDailyHoroscope(sign domain.ZodiacSign, date time.Time) (*domain.DailyHoroscope, error) {
	if !sign.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidSign, int(sign))
	}
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	noon := day.Add(12 * time.Hour)
	jd := JulianDayFromTime(noon)

	positions, err := e.planetPositions(jd)
	if err != nil {
		return nil, err
	}

	// The sign's mid-point stands in for a natal Sun.
	mid := sign.StartLongitude() + domain.DegreesPerSign/2
	anchor := []domain.BodyPosition{newPosition(domain.Sun, mid, 0, 0)}
	transits := findTransits(positions, anchor, noon, AspectOptions{})
	moon := moonState(positions[0].Longitude, positions[1].Longitude)
	insight := dailyInsight(transits, moon)

	profile := signProfiles[sign]
	seed := horoscopeSeed(sign, day)

	trait := profile.strength
	if insight.EmotionalTone == ToneChallenging {
		trait = profile.weakness
	}
	general := fmt.Sprintf(generalTemplates[insight.EmotionalTone], sign.Title(), trait)
	if len(transits) > 0 {
		general += " " + transits[0].Interpretation
	}

	themes := append([]string{}, profile.keywords...)
	for _, f := range insight.Focus {
		themes = appendUnique(themes, f)
	}

	return &domain.DailyHoroscope{
		Sign:         sign,
		Date:         day,
		Summary:      fmt.Sprintf("%s: a %s day with the Moon in %s.", sign.Title(), insight.EmotionalTone, moon.Sign.Title()),
		General:      general,
		Love:         pick(loveTemplates, seed, 1),
		Career:       pick(careerTemplates, seed, 2),
		Health:       pick(healthTemplates, seed, 3),
		Advice:       phaseAdvice[moon.Phase],
		EnergyLevel:  insight.EnergyLevel,
		KeyThemes:    themes,
		LuckyNumbers: LuckyNumbers(sign, day),
		LuckyColors:  append([]string{}, profile.colors...),
		Moon:         moon,
	}, nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
