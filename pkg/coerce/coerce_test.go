package coerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2017", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"15/06/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"06/15/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-06-15 10:30:00", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC), true},
		{"  2017 ", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"not a date", time.Time{}, false},
		{"", time.Time{}, false},
		{"20x7", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.True(t, got.Equal(tt.want), "input %q: got %v", tt.in, got)
		}
	}
}

func TestDateStringCanonicalizesAllLayouts(t *testing.T) {
	for _, in := range []string{"2024-06-15", "15/06/2024"} {
		s, ok := DateString(in)
		require.True(t, ok)
		assert.Equal(t, "2024-06-15", s)
	}
}

func TestParseBool(t *testing.T) {
	for _, in := range []string{"true", "TRUE", "1", "yes", "Y", "si", "SI", "sì", "Sì"} {
		assert.True(t, ParseBool(in), "input %q", in)
	}
	for _, in := range []string{"", "0", "no", "false", "nope", "2"} {
		assert.False(t, ParseBool(in), "input %q", in)
	}
}

func TestParseNumber(t *testing.T) {
	f, ok := ParseNumber("12.5")
	require.True(t, ok)
	assert.Equal(t, 12.5, f)

	_, ok = ParseNumber("")
	assert.False(t, ok)
	_, ok = ParseNumber("twelve")
	assert.False(t, ok)

	assert.Equal(t, 0.0, NumberOr("junk", 0))
	assert.Equal(t, 7.0, NumberOr("junk", 7))
	assert.Equal(t, 3.0, NumberOr("3", 7))
}

func TestParseEmployeeCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"11-50", 30, true},
		{"501-1000", 750, true},
		{"25", 25, true},
		{"about 40 people", 40, true},
		{"11 - 50", 30, true},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseEmployeeCount(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseFundingAmount(t *testing.T) {
	f, ok := ParseFundingAmount("€1.5M raised")
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	f, ok = ParseFundingAmount("2,3 milioni")
	require.True(t, ok)
	assert.Equal(t, 2.3, f)

	_, ok = ParseFundingAmount("undisclosed")
	assert.False(t, ok)
}

func TestExtractYear(t *testing.T) {
	y, ok := ExtractYear("Founded in 2019 in Milan")
	require.True(t, ok)
	assert.Equal(t, 2019, y)

	_, ok = ExtractYear("no year here")
	assert.False(t, ok)
}
