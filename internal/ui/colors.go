package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/ncli/internal/status"
)

// Severity colors for report lines. Plain ANSI so they survive any
// terminal and any pager that passes escapes through.
const (
	ColorOK      = termenv.ANSIGreen
	ColorWarn    = termenv.ANSIYellow
	ColorCrit    = termenv.ANSIRed
	ColorUnknown = termenv.ANSIMagenta

	// ColorLoud and ColorDim are emphasis shades for headers and
	// secondary text.
	ColorLoud = termenv.ANSIBrightWhite
	ColorDim  = termenv.ANSIBrightBlack
)

// Reset is the escape that ends any colored span.
const Reset = termenv.CSI + termenv.ResetSeq + "m"

var severityColors = map[status.Severity]termenv.ANSIColor{
	status.OK:      ColorOK,
	status.Warn:    ColorWarn,
	status.Crit:    ColorCrit,
	status.Unknown: ColorUnknown,
}

// SeverityColor returns the display color for a severity.
func SeverityColor(s status.Severity) termenv.ANSIColor {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return ColorUnknown
}

// Lip Gloss colors for CLI messages (errors, hints, pickers).
const (
	ColorError     lipgloss.Color = "1"
	ColorSuccess   lipgloss.Color = "2"
	ColorWarning   lipgloss.Color = "3"
	ColorSecondary lipgloss.Color = "4"
	ColorPrimary   lipgloss.Color = "7"
	ColorMuted     lipgloss.Color = "8"
)

// Palette wraps text in color escapes, or leaves it alone when color is
// off.
type Palette struct {
	profile termenv.Profile
}

// NewPalette returns a coloring palette when enabled, a plain one
// otherwise.
func NewPalette(enabled bool) Palette {
	if enabled {
		return Palette{profile: termenv.ANSI}
	}
	return Palette{profile: termenv.Ascii}
}

// Enabled reports whether the palette emits escapes.
func (p Palette) Enabled() bool {
	return p.profile != termenv.Ascii
}

// Severity colors text for the given severity.
func (p Palette) Severity(s status.Severity, text string) string {
	return p.paint(SeverityColor(s), text)
}

// Loud renders text in the bright emphasis shade.
func (p Palette) Loud(text string) string {
	return p.profile.String(text).Foreground(ColorLoud).Bold().String()
}

// Dim renders text in the muted shade.
func (p Palette) Dim(text string) string {
	return p.paint(ColorDim, text)
}

func (p Palette) paint(c termenv.Color, text string) string {
	return p.profile.String(text).Foreground(c).String()
}
