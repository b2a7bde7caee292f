package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox places content in a w×h box, horizontally left-aligned, and
// fills the rest with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return Fill(placed, w, h, bg)
}

// Fill pads or cuts content to exactly height lines and pads every line to
// width with bg. Lines already wider than width are left alone.
func Fill(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)

	lines := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w < width {
			line += pad.Render(strings.Repeat(" ", width-w))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// overlay splices box into the middle of base. Box lines are padded to a
// common width with bg, and bg is restored after every reset inside them so
// styled spans do not punch holes into the box.
func overlay(base, box string, width, height int, bg lipgloss.Color) string {
	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, l := range boxLines {
		boxW = max(boxW, lipgloss.Width(l))
	}
	if boxW == 0 {
		return base
	}
	boxW = min(boxW, width)

	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxW)/2, 0)
	pad := lipgloss.NewStyle().Background(bg)
	restore := bgSequence(bg)

	out := strings.Split(Fill(base, width, height, ""), "\n")
	for i, l := range boxLines {
		row := top + i
		if row >= len(out) {
			break
		}
		switch w := lipgloss.Width(l); {
		case w > boxW:
			l = ansi.Cut(l, 0, boxW)
		case w < boxW:
			l += pad.Render(strings.Repeat(" ", boxW-w))
		}
		if restore != "" {
			for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
				l = strings.ReplaceAll(l, reset, reset+restore)
			}
		}
		under := out[row]
		out[row] = ansi.Cut(under, 0, left) + l + ansi.ResetStyle + ansi.Cut(under, left+boxW, width)
	}
	return strings.Join(out, "\n")
}

func bgSequence(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
