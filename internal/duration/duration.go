// Package duration parses the compact relative-time tokens accepted by
// filter flags such as --older-than: "2h", "50m", "1w", or a bare number
// of seconds.
//
// Values are int64 seconds. A digit run that does not fit in an int64 is
// not a value. The unit multiplication is not checked: a product past
// math.MaxInt64 wraps the way Go's int64 arithmetic always does, so callers
// passing tokens like "99999999999999w" get a meaningless (possibly
// negative) count. ParseDuration is stricter: a token longer than
// time.Duration can hold (about 292 years) is not a value there.
package duration

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var tokenPattern = regexp.MustCompile(`^([0-9]+)([wdhms])?$`)

// Multipliers maps each unit suffix to its length in seconds.
var Multipliers = map[string]int64{
	"w": 604800,
	"d": 86400,
	"h": 3600,
	"m": 60,
	"s": 1,
}

// Parse converts a token into seconds. ok is false when the token is not
// duration-shaped at all (empty, signed, unknown or repeated unit, stray
// characters), which lets callers fall back to another interpretation.
func Parse(token string) (seconds int64, ok bool) {
	match := tokenPattern.FindStringSubmatch(token)
	if match == nil {
		return 0, false
	}

	val, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}

	if match[2] == "" {
		return val, true
	}
	return val * Multipliers[match[2]], true
}

// maxDurationSeconds is the longest span time.Duration can represent.
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

// ParseDuration is Parse expressed as a time.Duration. Tokens whose
// seconds fall outside [0, maxDurationSeconds], including ones that
// wrapped in Parse, are not a value.
func ParseDuration(token string) (time.Duration, bool) {
	seconds, ok := Parse(token)
	if !ok || seconds < 0 || seconds > maxDurationSeconds {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
