package ui

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/ncli/internal/status"
)

// Tally counts entities per severity.
type Tally struct {
	counts  map[status.Severity]int
	Skipped int
}

// NewTally counts the given severities.
func NewTally(states ...status.Severity) Tally {
	t := Tally{counts: make(map[status.Severity]int)}
	for _, s := range states {
		t.counts[s]++
	}
	return t
}

// Count returns how many entities had severity s.
func (t Tally) Count(s status.Severity) int {
	return t.counts[s]
}

// Total returns the number of counted entities.
func (t Tally) Total() int {
	n := 0
	for _, c := range t.counts {
		n += c
	}
	return n
}

// Tally renders t as "4 services: 1 CRIT, 1 WARN, 2 OK", worst first,
// leaving out empty severities. Skipped records are appended dimmed.
func (p Palette) Tally(t Tally, singular, plural string) string {
	total := t.Total()
	noun := plural
	if total == 1 {
		noun = singular
	}

	var parts []string
	for _, s := range []status.Severity{status.Crit, status.Warn, status.Unknown, status.OK} {
		if n := t.Count(s); n > 0 {
			parts = append(parts, p.Severity(s, fmt.Sprintf("%d %s", n, s)))
		}
	}

	line := fmt.Sprintf("%d %s", total, noun)
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	if t.Skipped > 0 {
		line += " " + p.Dim(fmt.Sprintf("(%s %d skipped)", SymbolSkipped, t.Skipped))
	}
	return line
}
