// Package status classifies the monitoring daemon's numeric state codes.
package status

import (
	"fmt"
	"strings"
)

// Severity is the classified form of a raw state code. The underlying value
// matches the daemon's code, so severities order from best to worst.
type Severity int

const (
	OK Severity = iota
	Warn
	Crit
	Unknown
)

var names = [...]string{"OK", "WARN", "CRIT", "UNK"}

// codes is total over the daemon's defined state space.
var codes = map[string]Severity{
	"0": OK,
	"1": Warn,
	"2": Crit,
	"3": Unknown,
}

// UnknownStatusCodeError reports a state code outside {"0","1","2","3"}.
// Feeds are never expected to emit one, so it is surfaced, not defaulted.
type UnknownStatusCodeError struct {
	Code string
}

func (e *UnknownStatusCodeError) Error() string {
	return fmt.Sprintf("unknown status code %q", e.Code)
}

// Classify maps a raw state code to its Severity.
func Classify(code string) (Severity, error) {
	sev, ok := codes[code]
	if !ok {
		return 0, &UnknownStatusCodeError{Code: code}
	}
	return sev, nil
}

// String returns the severity name: OK, WARN, CRIT or UNK.
func (s Severity) String() string {
	if s < OK || s > Unknown {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return names[s]
}

// MarshalText lets severities appear by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeverity accepts a severity name in any case ("crit", "WARN").
// "UNKNOWN" and "WARNING" are accepted as long forms.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "OK":
		return OK, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "CRIT", "CRITICAL":
		return Crit, nil
	case "UNK", "UNKNOWN":
		return Unknown, nil
	}
	return 0, fmt.Errorf("unknown severity %q (want one of %s)", name, strings.Join(names[:], ", "))
}

// All returns every severity in code order.
func All() []Severity {
	return []Severity{OK, Warn, Crit, Unknown}
}
