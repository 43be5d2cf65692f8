package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocal(t *testing.T, s string) LocalDateTime {
	t.Helper()
	dt, err := ParseLocalDateTime(s)
	require.NoError(t, err)
	return dt
}

func TestBirthDataValidate(t *testing.T) {
	t.Parallel()

	base := BirthData{
		DateTime:    mustLocal(t, "1990-05-15T14:30:00"),
		TimeZone:    "Europe/London",
		Latitude:    51.5074,
		Longitude:   -0.1278,
		PlaceName:   "London",
		IsTimeExact: true,
	}

	testCases := []struct {
		name    string
		mutate  func(b *BirthData)
		wantErr error
	}{
		{name: "valid", mutate: func(b *BirthData) {}},
		{name: "north pole is valid", mutate: func(b *BirthData) { b.Latitude = 90 }},
		{name: "antimeridian is valid", mutate: func(b *BirthData) { b.Longitude = -180 }},
		{name: "latitude too high", mutate: func(b *BirthData) { b.Latitude = 90.0001 }, wantErr: ErrInvalidLocation},
		{name: "latitude too low", mutate: func(b *BirthData) { b.Latitude = -91 }, wantErr: ErrInvalidLocation},
		{name: "longitude too high", mutate: func(b *BirthData) { b.Longitude = 180.5 }, wantErr: ErrInvalidLocation},
		{name: "latitude NaN", mutate: func(b *BirthData) { b.Latitude = math.NaN() }, wantErr: ErrInvalidLocation},
		{name: "longitude infinite", mutate: func(b *BirthData) { b.Longitude = math.Inf(1) }, wantErr: ErrInvalidLocation},
		{name: "empty zone", mutate: func(b *BirthData) { b.TimeZone = "" }, wantErr: ErrUnknownTimeZone},
		{name: "host local zone", mutate: func(b *BirthData) { b.TimeZone = "Local" }, wantErr: ErrUnknownTimeZone},
		{name: "unknown zone", mutate: func(b *BirthData) { b.TimeZone = "Mars/Olympus_Mons" }, wantErr: ErrUnknownTimeZone},
		{name: "impossible date", mutate: func(b *BirthData) { b.DateTime.Day = 31; b.DateTime.Month = time.April }, wantErr: ErrInvalidDateTime},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := base
			tc.mutate(&b)
			err := b.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
		})
	}
}

func TestNewBirthData(t *testing.T) {
	t.Parallel()

	bd, err := NewBirthData(mustLocal(t, "2000-01-01T12:00:00"), "UTC", 0, 0, "Null Island", true)
	require.NoError(t, err)
	assert.Equal(t, "UTC", bd.TimeZone)

	_, err = NewBirthData(mustLocal(t, "2000-01-01T12:00:00"), "UTC", 100, 0, "", true)
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestEffectiveDateTime(t *testing.T) {
	t.Parallel()

	bd := BirthData{DateTime: mustLocal(t, "1985-07-04T03:15:42"), TimeZone: "UTC"}
	assert.Equal(t, "1985-07-04T12:00:00", bd.EffectiveDateTime().String(), "unknown time uses local noon")

	bd.IsTimeExact = true
	assert.Equal(t, "1985-07-04T03:15:42", bd.EffectiveDateTime().String())
}

func TestLoadTimeZone(t *testing.T) {
	t.Parallel()

	loc, err := LoadTimeZone(" Asia/Tokyo ")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	_, err = LoadTimeZone("Not/AZone")
	assert.ErrorIs(t, err, ErrUnknownTimeZone)
}
