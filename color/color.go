// Package color provides the curated palette used by the CLI and the control surface.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI 8-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Black  = New("8")
)

// High-intensity ANSI extension.
var (
	HiRed    = New("9")
	HiPurple = New("13")
	HiCyan   = New("14")
	Orange   = New("208")
)

// Progress track layers, back to front.
var (
	TrackBackground = New("#45475a")
	TrackBuffered   = New("#7f849c")
	TrackPlayed     = New("#f38ba8")
)
