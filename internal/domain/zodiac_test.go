package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignOfAndDegree(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		longitude float64
		sign      ZodiacSign
	}{
		{0, Aries},
		{29.999999, Aries},
		{30, Taurus},
		{95.5, Cancer},
		{180, Libra},
		{280.46, Capricorn},
		{339.7, Pisces},
		{359.9999999999, Pisces},
	}

	for _, tc := range testCases {
		sign := SignOf(tc.longitude)
		assert.Equal(t, tc.sign, sign, "longitude %v", tc.longitude)
		deg := DegreeInSign(tc.longitude)
		assert.GreaterOrEqual(t, deg, 0.0)
		assert.Less(t, deg, 30.0)
		assert.InDelta(t, tc.longitude, float64(sign)*30+deg, 1e-9)
	}
}

func TestSignElementsAndModalities(t *testing.T) {
	t.Parallel()

	elements := map[Element][]ZodiacSign{
		ElementFire:  {Aries, Leo, Sagittarius},
		ElementEarth: {Taurus, Virgo, Capricorn},
		ElementAir:   {Gemini, Libra, Aquarius},
		ElementWater: {Cancer, Scorpio, Pisces},
	}
	for element, signs := range elements {
		for _, s := range signs {
			assert.Equal(t, element, s.Element(), s.String())
		}
	}

	assert.Equal(t, ModalityCardinal, Capricorn.Modality())
	assert.Equal(t, ModalityFixed, Scorpio.Modality())
	assert.Equal(t, ModalityMutable, Pisces.Modality())
}

func TestParseZodiacSign(t *testing.T) {
	t.Parallel()

	s, err := ParseZodiacSign("  Sagittarius")
	require.NoError(t, err)
	assert.Equal(t, Sagittarius, s)
	assert.Equal(t, "Sagittarius", s.Title())

	_, err = ParseZodiacSign("ophiuchus")
	assert.ErrorIs(t, err, ErrInvalidSign)
}

func TestBodyTextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, b := range AllBodies() {
		data, err := json.Marshal(b)
		require.NoError(t, err)
		var out Body
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, b, out)
	}

	_, err := json.Marshal(Body(42))
	assert.Error(t, err)

	_, err = ParseBody("chiron")
	assert.ErrorIs(t, err, ErrInvalidBody)
}

func TestBodyClassification(t *testing.T) {
	t.Parallel()

	assert.Len(t, Planets(), 10)
	assert.Len(t, AllBodies(), 12)
	for _, b := range Planets() {
		assert.False(t, b.IsPoint(), b.String())
	}
	assert.True(t, Ascendant.IsPoint())
	assert.True(t, Midheaven.IsPoint())
}

func TestAspectTypeSpecs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8.0, AspectConjunction.Orb())
	assert.Equal(t, 8.0, AspectOpposition.Orb())
	assert.Equal(t, 6.0, AspectTrine.Orb())
	assert.Equal(t, 6.0, AspectSquare.Orb())
	assert.Equal(t, 4.0, AspectSextile.Orb())

	for _, at := range append(MajorAspects(), MinorAspects()...) {
		assert.True(t, at.IsValid())
		assert.False(t, math.IsNaN(at.Angle()))
	}
	assert.True(t, AspectConjunction.IsHarmonic())
	assert.True(t, AspectTrine.IsHarmonic())
	assert.False(t, AspectSquare.IsHarmonic())
	assert.False(t, AspectOpposition.IsHarmonic())

	_, err := ParseAspectType("biquintile")
	assert.ErrorIs(t, err, ErrInvalidAspectType)
}

func TestElementBalanceDominant(t *testing.T) {
	t.Parallel()

	var b ElementBalance
	_, ok := b.Dominant()
	assert.False(t, ok)

	b.Add(ElementWater)
	b.Add(ElementWater)
	b.Add(ElementAir)
	e, ok := b.Dominant()
	assert.True(t, ok)
	assert.Equal(t, ElementWater, e)
	assert.Equal(t, 3, b.Total())
}
