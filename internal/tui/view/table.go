package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is a bordered grid with one style per cell.
type Table struct {
	Width       int
	Height      int
	Headers     []string
	HeaderStyle lipgloss.Style
	Rows        [][]string
	// Styles holds the style of every cell in Rows. Missing entries render
	// unstyled.
	Styles      [][]lipgloss.Style
	BorderStyle lipgloss.Style
	Bg          lipgloss.Color
}

// Render draws the table top-aligned in a Width×Height box.
func (t Table) Render() string {
	if t.Height <= 0 {
		return ""
	}

	grid := table.New().
		Headers(t.Headers...).
		Rows(t.Rows...).
		Width(max(t.Width-2, 0)).
		Height(t.Height).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(t.BorderStyle).
		BorderRow(false).
		StyleFunc(t.style).
		Render()

	return PlaceBox(t.Width, t.Height, lipgloss.Top, grid, t.Bg)
}

func (t Table) style(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return t.HeaderStyle
	}
	if row < 0 || row >= len(t.Styles) || col < 0 || col >= len(t.Styles[row]) {
		return lipgloss.NewStyle()
	}
	return t.Styles[row][col]
}
