package ui

import (
	"testing"

	"github.com/rileyhilliard/ncli/internal/status"
	"github.com/stretchr/testify/assert"
)

func TestSeverityColor_OnePerSeverity(t *testing.T) {
	seen := make(map[string]status.Severity)
	for _, s := range status.All() {
		seq := SeverityColor(s).Sequence(false)
		prev, dup := seen[seq]
		assert.False(t, dup, "%s and %s share a color", s, prev)
		seen[seq] = s
	}
	assert.NotContains(t, seen, ColorLoud.Sequence(false))
	assert.NotContains(t, seen, ColorDim.Sequence(false))
}

func TestPalette_Severity(t *testing.T) {
	p := NewPalette(true)
	assert.True(t, p.Enabled())

	tests := []struct {
		sev  status.Severity
		want string
	}{
		{sev: status.OK, want: "\x1b[32mline\x1b[0m"},
		{sev: status.Warn, want: "\x1b[33mline\x1b[0m"},
		{sev: status.Crit, want: "\x1b[31mline\x1b[0m"},
		{sev: status.Unknown, want: "\x1b[35mline\x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.sev.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Severity(tt.sev, "line"))
		})
	}
}

func TestPalette_Disabled(t *testing.T) {
	p := NewPalette(false)
	assert.False(t, p.Enabled())
	assert.Equal(t, "line", p.Severity(status.Crit, "line"))
	assert.Equal(t, "line", p.Loud("line"))
	assert.Equal(t, "line", p.Dim("line"))
}

func TestPalette_Emphasis(t *testing.T) {
	p := NewPalette(true)
	assert.Equal(t, "\x1b[90mdim\x1b[0m", p.Dim("dim"))
	assert.Contains(t, p.Loud("loud"), "97")
	assert.Contains(t, p.Loud("loud"), Reset)
}

func TestReset(t *testing.T) {
	assert.Equal(t, "\x1b[0m", Reset)
}
