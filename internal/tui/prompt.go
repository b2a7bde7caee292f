package tui

import (
	"strings"

	"github.com/javiermolinar/fleetdesk/internal/tui/input"
	"github.com/javiermolinar/fleetdesk/internal/tui/view"
)

var promptCommands = []input.Command{
	{Name: "/jump", Usage: "Start the window on a date: 2025-03-10, +3, -7, tomorrow, friday"},
	{Name: "/days", Usage: "Set the window length in days"},
	{Name: "/today", Usage: "Start the window today"},
	{Name: "/copy", Usage: "Copy the report to the clipboard"},
	{Name: "/insight", Usage: "Ask the configured model to review the window"},
	{Name: "/help", Usage: "Show available keys"},
}

func (m Model) promptLines(innerW int) []string {
	frameW, _ := m.styles.PromptStyle.GetFrameSize()
	width := innerW - frameW

	value := m.prompt.Value()
	var suggestions []view.Suggestion
	for _, cmd := range input.Match(value, promptCommands) {
		suggestions = append(suggestions, view.Suggestion{Name: cmd.Name, Description: cmd.Usage})
	}
	lines := view.PromptLines(value, "_", width, suggestions)
	return view.ClampPromptLines(lines, len(promptCommands)+1, width)
}

func helpLines() []string {
	return []string{
		"←/→  h/l   previous / next day",
		"H/L        previous / next week",
		"[ / ]      shrink / grow the window",
		"t          start today",
		"tab 1-4    drivers, vehicles, partners, conflicts",
		"↑/↓  k/j   select a row",
		"enter      row details",
		"c          count completed bookings",
		"/          command prompt",
		"y          copy the report",
		"i          ask for an insight",
		"r          reload from storage",
		"q          quit",
	}
}

// modalText is the plain text of a modal, for the clipboard.
func modalText(title string, body []string) string {
	return title + "\n\n" + strings.Join(body, "\n") + "\n"
}
