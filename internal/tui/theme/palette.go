package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color

	// BgAlt shades every other table row.
	BgAlt lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	// Severity is the foreground of each utilization severity and
	// SeverityBg its dimmed background for bars.
	Severity   map[string]lipgloss.Color
	SeverityBg map[string]lipgloss.Color
	TextOn     map[string]lipgloss.Color
}

var severities = []string{"critical", "high", "good", "low", "minimal"}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := luminance(t.Bg) > 0.55

	p := &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),

		BgAlt: lipgloss.Color(alternateShade(t.Bg, isLight)),

		TextOnAccent:  lipgloss.Color(readableOn(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(readableOn(t.Warning, t.Bg, t.Fg)),

		Severity:   make(map[string]lipgloss.Color, len(severities)),
		SeverityBg: make(map[string]lipgloss.Color, len(severities)),
		TextOn:     make(map[string]lipgloss.Color, len(severities)),
	}

	for _, sev := range severities {
		hex := t.Severity(sev)
		p.Severity[sev] = lipgloss.Color(hex)
		p.SeverityBg[sev] = lipgloss.Color(barBg(hex, t.Bg, isLight))
		p.TextOn[sev] = lipgloss.Color(readableOn(hex, t.Bg, t.Fg))
	}

	return p
}

// barBg returns the unfilled part of a severity bar: the severity color
// faded most of the way into the background.
func barBg(hex, bg string, isLight bool) string {
	if isLight {
		return blend(hex, bg, 0.80)
	}
	return blend(hex, bg, 0.70)
}

// alternateShade nudges bg toward the foreground side for striped rows.
func alternateShade(bg string, isLight bool) string {
	if isLight {
		return blend(bg, "#000000", 0.04)
	}
	return blend(bg, "#ffffff", 0.05)
}

// readableOn picks whichever of light and dark contrasts more with bg.
func readableOn(bg, light, dark string) string {
	if contrast(bg, light) >= contrast(bg, dark) {
		return light
	}
	return dark
}

// contrast is the WCAG contrast ratio of two colors.
func contrast(a, b string) float64 {
	la, lb := luminance(a), luminance(b)
	return (max(la, lb) + 0.05) / (min(la, lb) + 0.05)
}

// luminance is the WCAG relative luminance of hex, 0 when hex is malformed.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blend mixes ratio of b into a. A malformed input returns a unchanged.
func blend(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, min(max(ratio, 0), 1)).Clamped().Hex()
}
