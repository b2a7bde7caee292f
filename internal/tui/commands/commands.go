// Package commands provides dashboard command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/config"
	"github.com/javiermolinar/fleetdesk/internal/llm"
	"github.com/javiermolinar/fleetdesk/internal/report"
)

// SnapshotLoadedMsg is sent when bookings and resources are loaded.
type SnapshotLoadedMsg struct {
	Snapshot *booking.Snapshot
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// InsightMsg is sent when the advisor replies.
type InsightMsg struct {
	Insight *llm.Insight
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// LoadSnapshot reads every booking and resource from repo.
func LoadSnapshot(repo booking.Repository) tea.Cmd {
	return func() tea.Msg {
		snap, err := booking.LoadSnapshot(context.Background(), repo)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading bookings: %w", err)}
		}
		return SnapshotLoadedMsg{Snapshot: snap}
	}
}

// CopyText copies text to the system clipboard and reports what was copied.
func CopyText(text, what string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return ErrMsg{Err: errors.New("nothing to copy")}
		}
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return StatusMsgCmd{Msg: "Copied " + what + " to clipboard"}
	}
}

// Insight asks the configured LLM to review the report.
func Insight(cfg *config.Config, r *report.Report) tea.Cmd {
	return func() tea.Msg {
		if r == nil || len(r.Utilization.All()) == 0 {
			return ErrMsg{Err: errors.New("no resources to review")}
		}
		client, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}
		return advise(client, r)
	}
}

func advise(client llm.Client, r *report.Report) tea.Msg {
	insight, err := llm.NewAdvisor(client).Advise(context.Background(), report.Digest(r))
	if err != nil {
		return ErrMsg{Err: fmt.Errorf("evaluating fleet: %w", err)}
	}
	return InsightMsg{Insight: insight}
}
