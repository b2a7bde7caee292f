package view

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Suggestion is a command offered below the prompt input.
type Suggestion struct {
	Name        string
	Description string
}

// Both markers are two columns wide so continuation lines align.
const (
	promptMarker = "> "
	promptIndent = "  "
)

// PromptLines renders the input line, cursor included, followed by one entry
// per suggestion. Entries wider than width wrap under an indent.
func PromptLines(value, cursor string, width int, suggestions []Suggestion) []string {
	lines := indented(value+cursor, promptMarker, width)
	for _, s := range suggestions {
		lines = append(lines, indented(s.Name+" "+s.Description, promptIndent, width)...)
	}
	return lines
}

// ClampPromptLines keeps at most maxLines lines. When lines are dropped the
// last kept line ends with an ellipsis.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}
	out := slices.Clone(lines[:maxLines])
	out[maxLines-1] = runewidth.Truncate(out[maxLines-1]+"...", width, "...")
	return out
}

// Wrap breaks s at spaces so no line is wider than width. Words wider than
// width are split. Runs of spaces collapse to one.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		for runewidth.StringWidth(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				head = string([]rune(word)[:1])
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		switch {
		case word == "":
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// RenderPrompt renders the prompt box around lines.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Width(max(width-frameW, 0)).Render(strings.Join(lines, "\n"))
}

func indented(s, marker string, width int) []string {
	lines := Wrap(s, width-runewidth.StringWidth(marker))
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else {
			lines[i] = promptIndent + lines[i]
		}
	}
	return lines
}
