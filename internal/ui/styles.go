package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
)

// Color palette for the application (single source of truth)
var (
	ColorPrimary   = lipgloss.Color("#0F766E") // Teal
	ColorSecondary = lipgloss.Color("#38BDF8") // Sky
	ColorSuccess   = lipgloss.Color("#22C55E") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorHighlight = lipgloss.Color("#FACC15") // Gold

	ColorText     = lipgloss.Color("#F9FAFB")
	ColorTextDim  = lipgloss.Color("#9CA3AF")
	ColorTextMute = lipgloss.Color("#6B7280")
	ColorTrack    = lipgloss.Color("#374151")
)

// clusterColors colour cluster ids from least to most developed. Ids past the
// end reuse the last colour.
var clusterColors = []color.Color{
	lipgloss.Color("#F97316"), // 0 orange
	lipgloss.Color("#38BDF8"), // 1 sky
	lipgloss.Color("#22C55E"), // 2 green
	lipgloss.Color("#A78BFA"),
	lipgloss.Color("#F472B6"),
}

// styleWrapper wraps a lipgloss style
type styleWrapper struct {
	style lipgloss.Style
}

// Render renders the string with the style
func (s styleWrapper) Render(str string) string {
	return s.style.Render(str)
}

// Bold returns a new style with bold enabled
func (s styleWrapper) Bold(v bool) styleWrapper {
	return styleWrapper{s.style.Bold(v)}
}

// Text styles using lipgloss
var (
	Bold      = styleWrapper{lipgloss.NewStyle().Bold(true)}
	Dim       = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim)}
	Muted     = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextMute)}
	Success   = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	Warning   = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
	Error     = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	Primary   = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary)}
	Secondary = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	Highlight = styleWrapper{lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)}
)

// ClusterStyle returns the accent style for a cluster id.
func ClusterStyle(id int) styleWrapper {
	if id < 0 {
		return Muted
	}
	if id >= len(clusterColors) {
		id = len(clusterColors) - 1
	}
	return styleWrapper{lipgloss.NewStyle().Foreground(clusterColors[id]).Bold(true)}
}

// Status indicators (functions to ensure fresh rendering)

func GetCheckMark() string { return Success.Render("✓") }
func GetCrossMark() string { return Error.Render("✗") }
func GetWarnMark() string  { return Warning.Render("⚠") }
func GetBullet() string    { return Muted.Render("•") }

// Box styles for panels and containers
type boxWrapper struct {
	style lipgloss.Style
}

func (b boxWrapper) Render(str string) string {
	return b.style.Render(str)
}

var (
	Box = boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)}

	SuccessBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)}

	ErrorBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)}
)

// ClusterBox frames a prediction in the colour of its cluster.
func ClusterBox(id int) boxWrapper {
	c := color.Color(ColorMuted)
	if id >= 0 {
		c = clusterColors[min(id, len(clusterColors)-1)]
	}
	return boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1)}
}

// Header styles
var (
	Title = styleWrapper{lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)}

	SectionHeader = styleWrapper{lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)}
)

// Step status styles
var (
	StepPending  = styleWrapper{lipgloss.NewStyle().Foreground(ColorMuted)}
	StepRunning  = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	StepComplete = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	StepFailed   = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	StepSkipped  = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
)

// FormatKeyValue formats a key-value pair with styling
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// RenderBar draws frac (clamped to 0..1) as a bar of the given width.
func RenderBar(frac float64, width int, fill color.Color) string {
	if width <= 0 {
		return ""
	}
	frac = max(0, min(1, frac))
	filled := int(frac*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ColorTrack).Render(strings.Repeat("░", width-filled))
}

// scoreColor grades a 0..1 score.
func scoreColor(score float64) color.Color {
	switch {
	case score >= 0.8:
		return ColorSuccess
	case score >= 0.5:
		return ColorWarning
	default:
		return ColorError
	}
}

// FangColorScheme returns a Fang color scheme based on the application's color palette
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#1F2937"), lipgloss.Color("#2F2E36")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorHighlight,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is the ASCII art banner for the application
const BannerASCII = `
 _____                  ____ _           _
| ____|___ ___  _ __   / ___| |_   _ ___| |_ ___ _ __
|  _| / __/ _ \| '_ \ | |   | | | | / __| __/ _ \ '__|
| |__| (_| (_) | | | || |___| | |_| \__ \ ||  __/ |
|_____\___\___/|_| |_| \____|_|\__,_|___/\__\___|_|
`

// RenderBanner renders the banner in the primary colour.
func RenderBanner(banner string) string {
	return Primary.Bold(true).Render(banner)
}
