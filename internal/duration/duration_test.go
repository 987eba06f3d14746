package duration

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		want   int64
		wantOK bool
	}{
		{name: "hours", token: "2h", want: 7200, wantOK: true},
		{name: "minutes", token: "50m", want: 3000, wantOK: true},
		{name: "week", token: "1w", want: 604800, wantOK: true},
		{name: "days", token: "3d", want: 259200, wantOK: true},
		{name: "explicit seconds", token: "45s", want: 45, wantOK: true},
		{name: "bare seconds", token: "10", want: 10, wantOK: true},
		{name: "zero", token: "0", want: 0, wantOK: true},
		{name: "leading zeros", token: "007m", want: 420, wantOK: true},
		{name: "letters only", token: "abc", wantOK: false},
		{name: "empty", token: "", wantOK: false},
		{name: "unknown unit", token: "3x", wantOK: false},
		{name: "two units", token: "3hm", wantOK: false},
		{name: "leading sign", token: "-5m", wantOK: false},
		{name: "plus sign", token: "+5m", wantOK: false},
		{name: "unit only", token: "h", wantOK: false},
		{name: "uppercase unit", token: "2H", wantOK: false},
		{name: "whitespace", token: " 2h", wantOK: false},
		{name: "trailing newline", token: "2h\n", wantOK: false},
		{name: "compound", token: "1h30m", wantOK: false},
		{name: "digit run past int64", token: "99999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

func TestParse_EveryUnitMultiplies(t *testing.T) {
	for unit, mult := range Multipliers {
		got, ok := Parse("7" + unit)
		assert.True(t, ok, unit)
		assert.Equal(t, 7*mult, got, unit)
	}
}

func TestParseDuration(t *testing.T) {
	d, ok := ParseDuration("90m")
	assert.True(t, ok)
	assert.Equal(t, 90*time.Minute, d)

	_, ok = ParseDuration("soon")
	assert.False(t, ok)
}

func TestParseDuration_OutOfRange(t *testing.T) {
	// Fits in int64 seconds but not in time.Duration nanoseconds.
	seconds, ok := Parse("20000w")
	require.True(t, ok)
	assert.Equal(t, int64(12096000000), seconds)

	_, ok = ParseDuration("20000w")
	assert.False(t, ok)

	// Wraps in Parse, still far past the time.Duration range.
	_, ok = ParseDuration("99999999999999w")
	assert.False(t, ok)

	d, ok := ParseDuration(strconv.FormatInt(maxDurationSeconds, 10))
	require.True(t, ok)
	assert.Equal(t, time.Duration(maxDurationSeconds)*time.Second, d)

	_, ok = ParseDuration(strconv.FormatInt(maxDurationSeconds+1, 10))
	assert.False(t, ok)
}
