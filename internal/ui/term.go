package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

// Color definitions for consistent styling across the UI.
var (
	// Insight/results: yellow to make it pop
	colorInsight = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Warnings: conflicts and overbooking
	colorWarn = color.New(color.FgRed, color.Bold)

	// Success: free windows, clean checks
	colorOK = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// labelColors maps a utilization label colour name to a terminal colour.
var labelColors = map[string]*color.Color{
	"red":    color.New(color.FgRed, color.Bold),
	"orange": color.New(color.FgHiRed),
	"green":  color.New(color.FgGreen),
	"yellow": color.New(color.FgYellow),
	"gray":   color.New(color.FgWhite, color.Faint),
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatLabel colours s by the severity colour of l.
func formatLabel(l utilization.Label, s string) string {
	c, ok := labelColors[l.Color]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

// formatState colours an availability state.
func formatState(s utilization.State) string {
	switch s {
	case utilization.Available:
		return colorOK.Sprint(string(s))
	case utilization.Busy:
		return colorInsight.Sprint(string(s))
	default:
		return colorMuted.Sprint(string(s))
	}
}

// formatInsight formats text for insight output.
func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatWarn formats text as a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatOK formats text as a success message.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
