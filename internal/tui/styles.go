package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/fleetdesk/internal/tui/theme"
	"github.com/javiermolinar/fleetdesk/internal/tui/view"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

// Styles holds all lipgloss styles for the dashboard, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg lipgloss.Color

	// Header
	TitleStyle     lipgloss.Style
	RangeStyle     lipgloss.Style
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style

	// Table
	HeaderCellStyle   lipgloss.Style
	CellStyle         lipgloss.Style
	CellAltStyle      lipgloss.Style
	CellSelectedStyle lipgloss.Style
	BorderStyle       lipgloss.Style
	EmptyStyle        lipgloss.Style

	// Footer
	StatsBarStyle lipgloss.Style
	PromptStyle   lipgloss.Style
	StatusStyle   lipgloss.Style
	HelpStyle     lipgloss.Style

	// Modal
	Modal   view.ModalStyles
	ModalBg lipgloss.Color

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p, colorBg: p.Bg}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s.TitleStyle = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Bold(true).
		Padding(0, 1)
	s.RangeStyle = base.Foreground(p.FgMuted)
	s.TabStyle = base.Foreground(p.FgMuted).Padding(0, 1)
	s.TabActiveStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.Accent).
		Bold(true).
		Padding(0, 1)

	s.HeaderCellStyle = base.Foreground(p.Accent).Bold(true).Padding(0, 1)
	s.CellStyle = base.Padding(0, 1)
	s.CellAltStyle = s.CellStyle.Background(p.BgAlt)
	s.CellSelectedStyle = s.CellStyle.Background(p.BgSelection).Bold(true)
	s.BorderStyle = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)
	s.EmptyStyle = base.Foreground(p.FgMuted).Italic(true)

	s.StatsBarStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.Fg).
		Padding(0, 1)
	s.PromptStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.Fg).
		Padding(0, 1)
	s.StatusStyle = base.Foreground(p.Warning)
	s.HelpStyle = base.Foreground(p.FgMuted)

	s.ModalBg = p.BgHighlight
	modalBase := lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Fg)
	s.Modal = view.ModalStyles{
		HeaderStyle: modalBase,
		TitleStyle:  modalBase.Foreground(p.Accent).Bold(true),
		FooterStyle: modalBase.Foreground(p.FgMuted),
		BodyStyle:   modalBase,
		FrameStyle: modalBase.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			BorderBackground(p.BgHighlight).
			Padding(1, 2),
	}

	s.AppStyle = lipgloss.NewStyle().Background(p.Bg).Padding(0, 1)

	return s
}

// Severity returns the foreground color of a utilization severity.
func (s *Styles) Severity(sev utilization.Severity) lipgloss.Color {
	if c, ok := s.palette.Severity[string(sev)]; ok {
		return c
	}
	return s.palette.FgMuted
}

// cellStyle returns the style of one table cell.
func (s *Styles) cellStyle(r row, rowIdx, col int, selected bool) lipgloss.Style {
	style := s.CellStyle
	switch {
	case selected:
		style = s.CellSelectedStyle
	case rowIdx%2 == 1:
		style = s.CellAltStyle
	}

	if r.conflict != nil || col == colBar || col == colLabel {
		style = style.Foreground(s.Severity(r.severity))
	}
	return style
}
