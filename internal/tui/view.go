package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/fleetdesk/internal/tui/view"
)

// Layout constants, in terminal lines.
const (
	headerHeight  = 2
	footerCompact = 2 // status + help
	footerFull    = 3 // stats + status + help
	// Table chrome: top border, header row, header separator, bottom border.
	tableChrome    = 4
	fullFooterMinH = 12
)

// View renders the dashboard.
func (m Model) View() string {
	showModal := m.mode == ModeModal && m.modalTitle != ""
	modal := ""
	if showModal {
		modal = view.RenderModalFrame(m.modalTitle, m.modalBody, "esc close · y copy", m.styles.Modal)
	}

	return view.Render(view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        showModal,
		ModalBg:          m.styles.ModalBg,
		EmptyPlaceholder: "Loading...",
	})
}

func (m Model) innerWidth() int {
	return m.width - 2
}

func (m Model) footerHeight() int {
	h := footerFull
	if m.height < fullFooterMinH {
		h = footerCompact
	}
	if m.mode == ModePrompt {
		h += len(m.promptLines(m.innerWidth()))
	}
	return h
}

func (m Model) tableHeight() int {
	return m.height - headerHeight - m.footerHeight()
}

// visibleRows is the number of data rows the table can show.
func (m Model) visibleRows() int {
	return m.tableHeight() - tableChrome
}

func (m Model) renderAppContent() string {
	innerW := m.innerWidth()
	if innerW <= 0 || m.tableHeight() <= tableChrome {
		return "Terminal too small"
	}

	header := view.RenderHeader(view.HeaderViewState{
		InnerW:     innerW,
		Title:      "fleetdesk",
		RangeText:  m.rangeText(),
		Tabs:       view.TabBar(tabLabels[:], int(m.tab), m.styles.TabStyle, m.styles.TabActiveStyle),
		TitleStyle: m.styles.TitleStyle,
		RangeStyle: m.styles.RangeStyle,
		Bg:         m.styles.colorBg,
	})
	body := m.renderTable(innerW)
	footer := view.RenderFooter(m.footerModel(innerW))

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	app := m.styles.AppStyle.Render(content)
	return view.Fill(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) rangeText() string {
	if m.report == nil {
		return ""
	}
	return view.RangeLabel(m.report.From, m.report.To, m.nowFunc())
}

func (m Model) renderTable(innerW int) string {
	gridH := m.tableHeight()

	if m.loading && m.report == nil {
		return view.PlaceBox(innerW, gridH, lipgloss.Center, m.styles.EmptyStyle.Render("Loading bookings..."), m.styles.colorBg)
	}

	rows := m.rows()
	if len(rows) == 0 {
		return view.PlaceBox(innerW, gridH, lipgloss.Center, m.styles.EmptyStyle.Render(m.emptyText()), m.styles.colorBg)
	}

	end := min(m.scroll+m.visibleRows(), len(rows))
	tbl := view.Table{
		Width:       innerW,
		Height:      gridH,
		Headers:     m.headers(),
		HeaderStyle: m.styles.HeaderCellStyle,
		Rows:        make([][]string, 0, end-m.scroll),
		Styles:      make([][]lipgloss.Style, 0, end-m.scroll),
		BorderStyle: m.styles.BorderStyle,
		Bg:          m.styles.colorBg,
	}
	for i := m.scroll; i < end; i++ {
		r := rows[i]
		styles := make([]lipgloss.Style, len(r.cells))
		for col := range r.cells {
			styles[col] = m.styles.cellStyle(r, i, col, i == m.cursor)
		}
		tbl.Rows = append(tbl.Rows, r.cells)
		tbl.Styles = append(tbl.Styles, styles)
	}
	return tbl.Render()
}

func (m Model) emptyText() string {
	if m.tab == TabConflicts {
		return "No double-bookings in this window"
	}
	return fmt.Sprintf("No %s yet", strings.ToLower(tabLabels[m.tab]))
}

func (m Model) footerModel(innerW int) view.FooterModel {
	return view.FooterModel{
		InnerW:      innerW,
		FooterH:     m.footerHeight(),
		FullFooter:  m.height >= fullFooterMinH,
		StatsLine:   m.statsLine(),
		StatusText:  m.statusMsg,
		HelpText:    m.helpText(),
		PromptLines: m.promptLines(innerW),
		ShowPrompt:  m.mode == ModePrompt,
		FooterStyle: m.styles.StatsBarStyle,
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
		PromptStyle: m.styles.PromptStyle,
		VAlign:      lipgloss.Bottom,
		Bg:          m.styles.colorBg,
	}
}

// statsLine summarizes the whole fleet for the window.
func (m Model) statsLine() string {
	if m.report == nil {
		return ""
	}
	s := m.report.Utilization.Summary
	line := fmt.Sprintf("%d resources · %d available · %d busy · %d unavailable · avg %s · %d conflicts",
		s.TotalResources, s.Available, s.Busy, s.Unavailable,
		view.FormatPercent(s.AvgUtilization), len(m.report.Conflicts))
	if m.includeCompleted {
		line += " · incl. completed"
	}
	if m.insight != nil && m.insight.Headline != "" {
		line += " · " + m.insight.Headline
	}
	return line
}

func (m Model) helpText() string {
	switch m.mode {
	case ModePrompt:
		return "enter run · tab complete · esc cancel"
	case ModeModal:
		return "esc close · y copy"
	}
	return "←/→ day · H/L week · [/] range · t today · tab view · ↑/↓ select · enter details · / command · y copy · i insight · r reload · q quit"
}
