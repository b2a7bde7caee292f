package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const rangeLayout = "Mon Jan 2"

// RangeLabel describes the look-ahead window, e.g. "Mon Mar 10 → Mon Mar 17 (7d)".
// Days is the window length past the first day.
func RangeLabel(from, to time.Time, today time.Time) string {
	days := int(to.Sub(from).Hours() / 24)
	label := fmt.Sprintf("%s → %s (%dd)", from.Format(rangeLayout), to.Format(rangeLayout), days)
	if sameDay(from, today) {
		label += " · today"
	}
	return label
}

// TabBar renders the tab labels, highlighting the active one.
func TabBar(labels []string, active int, tabStyle, activeStyle lipgloss.Style) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := tabStyle
		if i == active {
			style = activeStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d %s", i+1, label)))
	}
	return strings.Join(parts, tabStyle.UnsetPadding().Render(" "))
}

// HeaderViewState holds the pieces of the two-line dashboard header.
type HeaderViewState struct {
	InnerW     int
	Title      string
	RangeText  string
	Tabs       string
	TitleStyle lipgloss.Style
	RangeStyle lipgloss.Style
	Bg         lipgloss.Color
}

// RenderHeader renders the title and range on the first line and the tabs
// on the second.
func RenderHeader(state HeaderViewState) string {
	title := state.TitleStyle.Render(state.Title)
	rng := state.RangeStyle.Render(state.RangeText)
	gap := state.InnerW - lipgloss.Width(title) - lipgloss.Width(rng)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Background(state.Bg).Render(strings.Repeat(" ", gap))
	first := title + spacer + rng
	return PlaceBox(state.InnerW, 2, lipgloss.Top, first+"\n"+state.Tabs, state.Bg)
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
