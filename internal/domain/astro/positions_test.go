package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/astral-api/internal/domain"
)

func TestEclipticPositionAtJ2000(t *testing.T) {
	t.Parallel()

	// Reference longitudes of date for 2000-01-01 12:00 UT, to about a degree.
	expected := map[domain.Body]float64{
		domain.Sun:     280.4,
		domain.Moon:    223.3,
		domain.Mercury: 271.9,
		domain.Venus:   241.5,
		domain.Mars:    327.9,
		domain.Jupiter: 25.2,
		domain.Saturn:  40.4,
		domain.Uranus:  314.8,
		domain.Neptune: 303.2,
		domain.Pluto:   251.5,
	}

	for body, want := range expected {
		lon, _, err := EclipticPosition(body, J2000)
		require.NoError(t, err, body.String())
		assert.InDelta(t, want, lon, 1.0, body.String())
	}
}

func TestComputePositionSigns(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		at   time.Time
		sign domain.ZodiacSign
	}{
		{"new year 2000", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), domain.Capricorn},
		{"leap day 2000", time.Date(2000, 2, 29, 12, 0, 0, 0, time.UTC), domain.Pisces},
		{"midsummer 2015", time.Date(2015, 7, 1, 12, 0, 0, 0, time.UTC), domain.Cancer},
		{"equinox week 1985", time.Date(1985, 9, 30, 12, 0, 0, 0, time.UTC), domain.Libra},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := ComputePosition(domain.Sun, JulianDayFromTime(tc.at))
			require.NoError(t, err)
			assert.Equal(t, tc.sign, p.Sign)
		})
	}
}

func TestComputePositionInvariants(t *testing.T) {
	t.Parallel()

	jds := []float64{J2000 - 36525, J2000 - 5000.25, J2000, J2000 + 1234.567, J2000 + 9000}
	for _, jd := range jds {
		for _, body := range domain.Planets() {
			p, err := ComputePosition(body, jd)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p.Longitude, 0.0)
			assert.Less(t, p.Longitude, 360.0)
			assert.GreaterOrEqual(t, p.DegreeInSign, 0.0)
			assert.Less(t, p.DegreeInSign, 30.0)
			assert.InDelta(t, p.Longitude, float64(p.Sign)*30+p.DegreeInSign, 1e-9)
			assert.Equal(t, p.Speed < 0, p.Retrograde)
		}
	}
}

func TestDailyMotion(t *testing.T) {
	t.Parallel()

	sun, err := DailyMotion(domain.Sun, J2000)
	require.NoError(t, err)
	assert.InDelta(t, 1.019, sun, 0.01)

	moon, err := DailyMotion(domain.Moon, J2000)
	require.NoError(t, err)
	assert.Greater(t, moon, 11.0)
	assert.Less(t, moon, 15.5)

	// Saturn was stationing direct in early January 2000.
	saturn, err := ComputePosition(domain.Saturn, J2000)
	require.NoError(t, err)
	assert.True(t, saturn.Retrograde)

	// The Sun never moves backwards.
	for d := 0.0; d < 365; d += 7 {
		s, err := DailyMotion(domain.Sun, J2000+d)
		require.NoError(t, err)
		assert.Greater(t, s, 0.9)
	}
}

func TestMoonAdvancesOverHalfDay(t *testing.T) {
	t.Parallel()

	a, _, err := EclipticPosition(domain.Moon, J2000)
	require.NoError(t, err)
	b, _, err := EclipticPosition(domain.Moon, J2000+0.5)
	require.NoError(t, err)

	delta := signedDelta(a, b)
	assert.Greater(t, delta, 5.0)
	assert.Less(t, delta, 8.0)
}

func TestEclipticPositionUnsupported(t *testing.T) {
	t.Parallel()

	for _, body := range []domain.Body{domain.Ascendant, domain.Midheaven, domain.Body(99)} {
		_, err := ComputePosition(body, J2000)
		assert.ErrorIs(t, err, ErrUnsupportedBody)
	}
}

func TestNormalizeAndSeparation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 350.0, NormalizeDegrees(-10))
	assert.Equal(t, 0.0, NormalizeDegrees(720))
	assert.InDelta(t, 5.0, NormalizeDegrees(365), 1e-12)

	assert.InDelta(t, 20.0, AngularSeparation(350, 10), 1e-12)
	assert.InDelta(t, 180.0, AngularSeparation(0, 180), 1e-12)
	assert.InDelta(t, 179.0, AngularSeparation(0, 181), 1e-12)
	assert.Equal(t, AngularSeparation(12, 250), AngularSeparation(250, 12))

	assert.InDelta(t, -20.0, signedDelta(10, 350), 1e-12)
	assert.True(t, arcContains(350, 20, 5))
	assert.False(t, arcContains(350, 20, 340))
}
