// Package tui provides the interactive dispatch dashboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/config"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
	"github.com/javiermolinar/fleetdesk/internal/llm"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/tui/commands"
	"github.com/javiermolinar/fleetdesk/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// Tab is one of the dashboard tables.
type Tab int

const (
	TabDrivers Tab = iota
	TabVehicles
	TabPartners
	TabConflicts
	tabCount
)

var tabLabels = [tabCount]string{"Drivers", "Vehicles", "Partners", "Conflicts"}

// Window limits, in days past the first day.
const (
	minDays = 1
	maxDays = 366
)

// Model is the dashboard model. Every navigation recomputes the report from
// the loaded snapshot; only reloads touch storage.
type Model struct {
	// Dependencies
	repo   booking.Repository
	config *config.Config
	logger *zap.SugaredLogger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Data
	snapshot *booking.Snapshot
	report   *report.Report
	insight  *llm.Insight
	loading  bool

	// Window
	from             time.Time // first day shown, UTC midnight
	days             int
	includeCompleted bool

	// Navigation
	tab    Tab
	cursor int
	scroll int
	mode   Mode

	modalTitle string
	modalBody  []string

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	nowFunc func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow overrides the clock.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
		m.from = dateutil.Today(now())
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *zap.SugaredLogger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a new dashboard model.
func New(repo booking.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	ti := textinput.New()
	ti.Placeholder = "/jump tomorrow"
	ti.Prompt = ""
	ti.CharLimit = 64

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	days := cfg.Report.DateRange
	if days < minDays {
		days = minDays
	}

	m := &Model{
		repo:             repo,
		config:           cfg,
		logger:           zap.NewNop().Sugar(),
		theme:            t,
		styles:           NewStyles(t),
		from:             dateutil.Today(time.Now()),
		days:             days,
		includeCompleted: cfg.Report.IncludeCompleted,
		mode:             ModeNormal,
		prompt:           ti,
		loading:          true,
		nowFunc:          time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init loads the snapshot.
func (m Model) Init() tea.Cmd {
	return commands.LoadSnapshot(m.repo)
}

// Run starts the dashboard.
func Run(repo booking.Repository, cfg *config.Config, logger *zap.SugaredLogger) error {
	model := New(repo, cfg, WithLogger(logger))
	model.logger.Debugw("dashboard started", "theme", model.theme.Name, "days", model.days)

	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// evalNow is the instant the report is evaluated at: the window's first day
// at the current time of day. Busy states shown for a future day therefore
// read as "at this time on that day".
func (m Model) evalNow() time.Time {
	now := dateutil.WallClock(m.nowFunc())
	return m.from.Add(now.Sub(dateutil.Today(now)))
}

// recompute rebuilds the report for the current window.
func (m *Model) recompute() {
	if m.snapshot == nil {
		m.report = nil
		return
	}
	opts := report.OptionsFromConfig(m.config, m.evalNow())
	opts.DateRange = m.days
	opts.IncludeCompleted = m.includeCompleted
	m.report = report.Summarize(m.snapshot, opts)
	m.clampCursor()
}

func (m *Model) setFrom(t time.Time) {
	m.from = dateutil.Today(t)
	m.recompute()
}

func (m *Model) setDays(days int) {
	m.days = min(max(days, minDays), maxDays)
	m.recompute()
}

func (m *Model) setTab(t Tab) {
	if t < 0 {
		t = tabCount - 1
	}
	m.tab = t % tabCount
	m.cursor = 0
	m.scroll = 0
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(msg string, d time.Duration) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(d)
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
