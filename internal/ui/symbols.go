package ui

// Unicode symbols for check results and status lines.
const (
	SymbolSuccess = "✓" // Check passed, file written
	SymbolFail    = "✗" // Check failed
	SymbolWarn    = "!" // Check passed with a warning
	SymbolSkipped = "⊘" // Record skipped
)
