package view

import (
	"fmt"
	"strings"
)

// BarParts splits a utilization bar of the given width into its filled and
// empty cell counts. The filled part is clamped to [0, width].
func BarParts(pct float64, width int) (filled, empty int) {
	if width <= 0 {
		return 0, 0
	}
	filled = int(pct / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return filled, width - filled
}

// Bar renders a plain utilization bar.
func Bar(pct float64, width int) string {
	filled, empty := BarParts(pct, width)
	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// FormatHours formats booked hours, dropping a trailing ".0".
func FormatHours(h float64) string {
	if h == float64(int(h)) {
		return fmt.Sprintf("%dh", int(h))
	}
	return fmt.Sprintf("%.1fh", h)
}

// FormatPercent formats a utilization percentage.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}
