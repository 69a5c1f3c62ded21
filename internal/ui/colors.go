package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication, as ANSI codes for terminal compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
	ColorAccent    lipgloss.Color = "5" // Magenta, used for names and commands
)

// ColorBrand is the DeployR banner color.
const ColorBrand = ColorInfo

// GradientColors cycle through the spinner frames.
var GradientColors = []lipgloss.Color{ColorAccent, ColorSecondary, ColorInfo, ColorSuccess}

// Styles shared by the prompts and reports.
var (
	AccentStyle    = lipgloss.NewStyle().Foreground(ColorAccent)
	MutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	HighlightStyle = lipgloss.NewStyle().Foreground(ColorWarning).Faint(true)
	LinkStyle      = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true).Underline(true)
	SuccessStyle   = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
)
