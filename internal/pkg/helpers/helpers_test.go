package helpers

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2004, time.March, 9, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2004-03-09", "09/03/2004", "9/3/2004", "09-03-2004", "9-3-2004", "2004-03-09T00:00:00.000Z", " 2004-03-09 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		require.NotNil(t, got, in)
		assert.True(t, want.Equal(*got), in)
	}
}

func TestParseDate_Blank(t *testing.T) {
	got, err := ParseDate("   ")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"31/02/2004", "2004/03/09", "March 9", "13-13-2004", "abc"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, in)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2001, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2001-12-31", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		in   interface{}
		want *float64
	}{
		{in: 12.5, want: ptr(12.5)},
		{in: "350000", want: ptr(350000)},
		{in: " 1250.75 ", want: ptr(1250.75)},
		{in: "1,5", want: nil},
		{in: json.Number("42"), want: ptr(42)},
		{in: "", want: nil},
		{in: "n/a", want: nil},
		{in: nil, want: nil},
		{in: true, want: nil},
		{in: "1e20", want: nil},
		{in: 1e12, want: nil},
		{in: -1e12, want: nil},
		{in: 999999999999.99, want: ptr(999999999999.99)},
	}

	for _, tt := range tests {
		got := CoerceFloat(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "%v", tt.in)
			continue
		}
		require.NotNil(t, got, "%v", tt.in)
		assert.InDelta(t, *tt.want, *got, 1e-9)
	}
}

func TestCoerceInt(t *testing.T) {
	got := CoerceInt("17")
	require.NotNil(t, got)
	assert.Equal(t, 17, *got)

	got = CoerceInt(16.9)
	require.NotNil(t, got)
	assert.Equal(t, 16, *got)

	assert.Nil(t, CoerceInt("diecisiete"))
	assert.Nil(t, CoerceInt(3e9))
	assert.Nil(t, CoerceInt(1e30))
	assert.Nil(t, CoerceInt(-3e9))

	got = CoerceInt(float64(math.MaxInt32))
	require.NotNil(t, got)
	assert.Equal(t, math.MaxInt32, *got)
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, NullableString("  "))
	assert.Equal(t, "x", *NullableString(" x "))
	assert.Equal(t, "", StringOrEmpty(nil))
}

func ptr(f float64) *float64 { return &f }
