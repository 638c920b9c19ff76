package ui

// Basic ANSI color codes used by the logging package.
// Rendered output should use lipgloss styles from styles.go instead.
const (
	Reset = "\033[0m"
	// LegacyBold is the raw ANSI code for bold text
	LegacyBold = "\033[1m"
	FgCyan     = "\033[36m"
	FgGreen    = "\033[32m"
	FgMagenta  = "\033[35m"
	FgYellow   = "\033[33m"
	FgRed      = "\033[31m"
)

var colorEnabled = true

// Init configures terminal output. noColor disables ANSI codes written by Color.
func Init(noColor bool) {
	colorEnabled = !noColor
}

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	if !colorEnabled || code == "" {
		return s
	}
	return code + s + Reset
}
