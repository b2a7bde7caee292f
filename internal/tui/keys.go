package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/tui/commands"
	"github.com/javiermolinar/fleetdesk/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debugw("key", "key", msg.String(), "mode", m.mode, "tab", tabLabels[m.tab])

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit

	// Window navigation
	case "h", "left":
		m.setFrom(m.from.AddDate(0, 0, -1))
	case "l", "right":
		m.setFrom(m.from.AddDate(0, 0, 1))
	case "H":
		m.setFrom(m.from.AddDate(0, 0, -7))
	case "L":
		m.setFrom(m.from.AddDate(0, 0, 7))
	case "t":
		m.setFrom(m.nowFunc())
	case "[":
		m.setDays(m.days - 1)
	case "]":
		m.setDays(m.days + 1)
	case "c":
		m.includeCompleted = !m.includeCompleted
		m.recompute()
		state := "hidden"
		if m.includeCompleted {
			state = "counted"
		}
		return m, m.setStatus("Completed bookings "+state, statusDuration)

	// Tabs
	case "tab":
		m.setTab(m.tab + 1)
	case "shift+tab":
		m.setTab(m.tab - 1)
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(key)
		m.setTab(Tab(n - 1))

	// Rows
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor, m.scroll = 0, 0
	case "G", "end":
		m.cursor = len(m.rows()) - 1
		m.clampCursor()
		m.ensureCursorVisible()
	case "enter":
		if r, ok := m.selected(); ok {
			m.openModal(m.detail(r))
		}

	// Actions
	case "/", ":":
		m.mode = ModePrompt
		m.prompt.SetValue("")
		cmd := m.prompt.Focus()
		return m, cmd
	case "r":
		m.loading = true
		return m, commands.LoadSnapshot(m.repo)
	case "y":
		if m.report == nil {
			return m, nil
		}
		return m, commands.CopyText(report.Text(m.report), "report")
	case "i":
		return m.requestInsight()
	}

	return m, nil
}

// handlePromptKeys handles keys while the command prompt is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "tab":
		if value, ok := input.Complete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		value := m.prompt.Value()
		m.closePrompt()
		return m.runPrompt(value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.closeModal()
	case "y":
		return m, commands.CopyText(modalText(m.modalTitle, m.modalBody), "details")
	}
	return m, nil
}

// runPrompt executes a prompt command.
func (m Model) runPrompt(value string) (tea.Model, tea.Cmd) {
	name, arg := input.ParseCommand(value)
	if name == "/jump" && arg == "" {
		return m, nil
	}

	switch name {
	case "/jump":
		day, err := input.ParseJump(arg, m.from, m.nowFunc())
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Invalid date %q: %v", arg, err), errorDuration)
		}
		m.setFrom(day)
		return m, nil

	case "/days":
		days, err := input.ParseDays(arg)
		if err != nil {
			return m, m.setStatus(err.Error(), errorDuration)
		}
		m.setDays(days)
		return m, nil

	case "/today":
		m.setFrom(m.nowFunc())
		return m, nil

	case "/copy":
		if m.report == nil {
			return m, nil
		}
		return m, commands.CopyText(report.Text(m.report), "report")

	case "/insight":
		return m.requestInsight()

	case "/help":
		m.openModal("Keys", helpLines())
		return m, nil
	}

	return m, m.setStatus("Unknown command "+name, errorDuration)
}

func (m Model) requestInsight() (tea.Model, tea.Cmd) {
	if m.report == nil {
		return m, nil
	}
	m.statusMsg = "Asking " + m.config.LLM.Model + "..."
	return m, commands.Insight(m.config, m.report)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls the table so the cursor row is shown.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m *Model) openModal(title string, body []string) {
	m.modalTitle = title
	m.modalBody = body
	m.mode = ModeModal
}

func (m *Model) closeModal() {
	m.modalTitle = ""
	m.modalBody = nil
	m.mode = ModeNormal
}
