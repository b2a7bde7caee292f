package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/fleetdesk/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case commands.SnapshotLoadedMsg:
		m.snapshot = msg.Snapshot
		m.loading = false
		m.recompute()
		m.logger.Debugw("snapshot loaded",
			"bookings", len(msg.Snapshot.Bookings),
			"drivers", len(msg.Snapshot.Drivers),
			"vehicles", len(msg.Snapshot.Vehicles),
			"partners", len(msg.Snapshot.Partners))
		return m, nil

	case commands.InsightMsg:
		m.insight = msg.Insight
		m.statusMsg = ""
		m.openModal("Insight", strings.Split(strings.TrimRight(msg.Insight.String(), "\n"), "\n"))
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		m.logger.Debugw("error", "err", msg.Err)
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), errorDuration)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, statusDuration)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Cursor blink and other input component messages
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}
