// Package ui provides terminal output helpers for ncli's reports.
//
// # Palette
//
// Palette colors report text by severity using termenv's ANSI profile, or
// passes it through untouched when color is off:
//
//	p := ui.NewPalette(true)
//	p.Severity(status.Crit, "CRIT") // red
//	p.Loud("web01")                 // bright white, bold
//	p.Dim("(ACK)")                  // bright black
//
// Severity colors are fixed: OK green, WARN yellow, CRIT red, UNK magenta.
//
// # Components
//
//	EntityPicker - Bubble Tea list for choosing a host or service to show
//	Table        - Bubbles table rendering for host overviews
//	Tally        - "4 services: 1 CRIT, 2 OK" count lines, worst first
//	Spinner      - Erasable indicator while a large snapshot loads
//
// The Lip Gloss colors (ColorSuccess, ColorError, ColorMuted, ...) style
// CLI messages outside the report body: the init confirmation, the doctor
// report and the picker.
package ui
