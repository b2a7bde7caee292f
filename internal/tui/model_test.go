package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/config"
	"github.com/javiermolinar/fleetdesk/internal/llm"
	"github.com/javiermolinar/fleetdesk/internal/tui/commands"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

type fakeRepo struct {
	booking.Repository
	snap *booking.Snapshot
}

func (f fakeRepo) ListAllBookings(context.Context) ([]*booking.Booking, error) {
	return f.snap.Bookings, nil
}

func (f fakeRepo) ListDrivers(context.Context) ([]*booking.Driver, error) {
	return f.snap.Drivers, nil
}

func (f fakeRepo) ListVehicles(context.Context) ([]*booking.Vehicle, error) {
	return f.snap.Vehicles, nil
}

func (f fakeRepo) ListPartners(context.Context) ([]*booking.Partner, error) {
	return f.snap.Partners, nil
}

func testSnapshot() *booking.Snapshot {
	return &booking.Snapshot{
		Drivers: []*booking.Driver{
			{ID: "d1", Name: "Alice", Status: booking.DriverAvailable},
			{ID: "d2", Name: "Bob", Status: booking.DriverAvailable},
		},
		Vehicles: []*booking.Vehicle{
			{ID: "v1", Name: "Van 1", Status: booking.VehicleActive},
		},
		Bookings: []*booking.Booking{
			{ID: "b1", Type: booking.TypeSingle, Status: booking.StatusConfirmed,
				Date: "2025-03-10", Time: "09:00", Driver: "Alice", Vehicle: "Van 1", CustomerName: "Ada"},
			{ID: "b2", Type: booking.TypeSingle, Status: booking.StatusPending,
				Date: "2025-03-10", Time: "10:00", Driver: "Alice", CustomerName: "Grace"},
			{ID: "b3", Type: booking.TypeSingle, Status: booking.StatusCompleted,
				Date: "2025-03-11", Time: "09:00", Driver: "Bob", CustomerName: "Linus"},
		},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	cfg := config.Default()
	cfg.UI.Theme = "mocha"
	snap := testSnapshot()

	m := *New(fakeRepo{snap: snap}, cfg, WithNow(func() time.Time { return now }))
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	return update(t, m, commands.SnapshotLoadedMsg{Snapshot: snap})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func driver(t *testing.T, m Model, name string) utilization.Entry {
	t.Helper()
	for _, e := range m.report.Utilization.Drivers {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("driver %q not in report", name)
	return utilization.Entry{}
}

func TestNew_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.Report.DateRange = 0
	cfg.UI.Theme = "nonexistent"

	m := New(nil, cfg, WithNow(func() time.Time { return now }))
	if m.days != minDays {
		t.Errorf("days = %d, want %d", m.days, minDays)
	}
	if m.theme.Name != "mocha" {
		t.Errorf("theme = %q, want mocha fallback", m.theme.Name)
	}
	if !m.from.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want today", m.from)
	}
	if !m.loading {
		t.Error("new model should be loading")
	}
	if m.Init() == nil {
		t.Error("Init should load the snapshot")
	}
}

func TestSnapshotLoaded(t *testing.T) {
	m := newTestModel(t)

	if m.loading {
		t.Fatal("still loading after snapshot")
	}
	if m.report == nil {
		t.Fatal("report not computed")
	}

	alice := driver(t, m, "Alice")
	if len(alice.Bookings) != 2 || alice.TotalHours != 4 {
		t.Errorf("Alice = %d bookings, %vh, want 2, 4h", len(alice.Bookings), alice.TotalHours)
	}
	if alice.Availability != utilization.Busy {
		t.Errorf("Alice = %s, want busy during b1", alice.Availability)
	}
	if bob := driver(t, m, "Bob"); len(bob.Bookings) != 0 {
		t.Errorf("Bob has %d bookings, completed should be hidden", len(bob.Bookings))
	}
	if len(m.report.Conflicts) != 1 {
		t.Errorf("conflicts = %d, want 1", len(m.report.Conflicts))
	}
}

func TestEvalNow(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "right")

	want := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	if got := m.evalNow(); !got.Equal(want) {
		t.Fatalf("evalNow = %v, want %v", got, want)
	}
	if alice := driver(t, m, "Alice"); alice.Availability != utilization.Available {
		t.Errorf("Alice on the next day = %s, want available", alice.Availability)
	}
}

func TestWindowNavigation(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		keys     []string
		wantFrom time.Time
		wantDays int
	}{
		{name: "next day", keys: []string{"l"}, wantFrom: day(11), wantDays: 7},
		{name: "previous day", keys: []string{"left"}, wantFrom: day(9), wantDays: 7},
		{name: "next week", keys: []string{"L"}, wantFrom: day(17), wantDays: 7},
		{name: "previous week", keys: []string{"H"}, wantFrom: day(3), wantDays: 7},
		{name: "back to today", keys: []string{"l", "l", "t"}, wantFrom: day(10), wantDays: 7},
		{name: "grow", keys: []string{"]", "]"}, wantFrom: day(10), wantDays: 9},
		{name: "shrink clamps at one", keys: []string{"[", "[", "[", "[", "[", "[", "[", "["}, wantFrom: day(10), wantDays: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, newTestModel(t), tt.keys...)
			if !m.from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", m.from, tt.wantFrom)
			}
			if m.days != tt.wantDays {
				t.Errorf("days = %d, want %d", m.days, tt.wantDays)
			}
			if !m.report.From.Equal(tt.wantFrom) || !m.report.To.Equal(tt.wantFrom.AddDate(0, 0, tt.wantDays)) {
				t.Errorf("report window = %v..%v, not recomputed", m.report.From, m.report.To)
			}
		})
	}
}

func TestWindowMovesConflictsOut(t *testing.T) {
	m := press(t, newTestModel(t), "l")
	if len(m.report.Conflicts) != 0 {
		t.Fatalf("conflicts = %d, want 0 outside the window", len(m.report.Conflicts))
	}
}

func TestIncludeCompletedToggle(t *testing.T) {
	m := press(t, newTestModel(t), "c")

	if bob := driver(t, m, "Bob"); len(bob.Bookings) != 1 {
		t.Fatalf("Bob has %d bookings, want the completed one counted", len(bob.Bookings))
	}
	if m.statusMsg != "Completed bookings counted" {
		t.Errorf("status = %q", m.statusMsg)
	}

	m = press(t, m, "c")
	if bob := driver(t, m, "Bob"); len(bob.Bookings) != 0 {
		t.Fatalf("Bob has %d bookings after toggling back", len(bob.Bookings))
	}
}

func TestTabs(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want Tab
	}{
		{name: "tab", keys: []string{"tab"}, want: TabVehicles},
		{name: "tab wraps", keys: []string{"tab", "tab", "tab", "tab"}, want: TabDrivers},
		{name: "shift+tab wraps", keys: []string{"shift+tab"}, want: TabConflicts},
		{name: "number", keys: []string{"3"}, want: TabPartners},
		{name: "conflicts", keys: []string{"4"}, want: TabConflicts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(t, newTestModel(t), tt.keys...)
			if m.tab != tt.want {
				t.Fatalf("tab = %v, want %v", m.tab, tt.want)
			}
		})
	}
}

func TestCursor(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m = press(t, m, "down", "down")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want clamped to 1", m.cursor)
	}
	m = press(t, m, "k", "up")
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m = press(t, m, "G")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after G, want 1", m.cursor)
	}
	m = press(t, m, "tab")
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after tab switch, want 0", m.cursor)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 30; i++ {
		m.snapshot.Drivers = append(m.snapshot.Drivers, &booking.Driver{ID: "x", Name: "Extra", Status: booking.DriverAvailable})
	}
	m.recompute()

	m = press(t, m, "G")
	visible := m.visibleRows()
	if m.scroll != m.cursor-visible+1 {
		t.Fatalf("scroll = %d, want %d", m.scroll, m.cursor-visible+1)
	}
	m = press(t, m, "g")
	if m.scroll != 0 || m.cursor != 0 {
		t.Fatalf("scroll, cursor = %d, %d after g", m.scroll, m.cursor)
	}
}

func TestDetailModal(t *testing.T) {
	m := press(t, newTestModel(t), "enter")

	if m.mode != ModeModal {
		t.Fatalf("mode = %v, want modal", m.mode)
	}
	if m.modalTitle != "driver Alice" {
		t.Errorf("title = %q", m.modalTitle)
	}
	body := strings.Join(m.modalBody, "\n")
	for _, want := range []string{"Bookings:", "Ada", "Grace", "Conflicts:"} {
		if !strings.Contains(body, want) {
			t.Errorf("detail missing %q:\n%s", want, body)
		}
	}

	m = press(t, m, "esc")
	if m.mode != ModeNormal || m.modalBody != nil {
		t.Fatalf("modal not closed: mode %v", m.mode)
	}
}

func TestConflictDetail(t *testing.T) {
	m := press(t, newTestModel(t), "4", "enter")

	if m.modalTitle != "Conflict: driver Alice" {
		t.Fatalf("title = %q", m.modalTitle)
	}
	if !strings.Contains(strings.Join(m.modalBody, "\n"), "1h") {
		t.Errorf("conflict detail should show the overlap: %v", m.modalBody)
	}
}

func TestPromptJump(t *testing.T) {
	m := press(t, newTestModel(t), "/")
	if m.mode != ModePrompt {
		t.Fatalf("mode = %v, want prompt", m.mode)
	}

	m = press(t, m, "/jump 2025-03-20", "enter")
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal after enter", m.mode)
	}
	if want := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC); !m.from.Equal(want) {
		t.Fatalf("from = %v, want %v", m.from, want)
	}
	if m.prompt.Value() != "" {
		t.Fatalf("prompt not cleared: %q", m.prompt.Value())
	}
}

func TestPromptBareOffset(t *testing.T) {
	m := press(t, newTestModel(t), "/", "-3", "enter")
	if want := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC); !m.from.Equal(want) {
		t.Fatalf("from = %v, want %v", m.from, want)
	}
}

func TestPromptDays(t *testing.T) {
	m := press(t, newTestModel(t), "/", "/days 14", "enter")
	if m.days != 14 {
		t.Fatalf("days = %d, want 14", m.days)
	}

	m = press(t, m, "/", "/days 0", "enter")
	if m.days != 14 {
		t.Fatalf("days = %d, invalid input should keep 14", m.days)
	}
	if !strings.Contains(m.statusMsg, "between 1 and 366") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestPromptErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/jump someday", "Invalid date"},
		{"/bogus", "Unknown command /bogus"},
	}

	for _, tt := range tests {
		m := press(t, newTestModel(t), "/", tt.input, "enter")
		if !strings.Contains(m.statusMsg, tt.want) {
			t.Errorf("%q: status = %q, want %q", tt.input, m.statusMsg, tt.want)
		}
	}
}

func TestPromptAutocompleteAndCancel(t *testing.T) {
	m := press(t, newTestModel(t), "/", "/da", "tab")
	if m.prompt.Value() != "/days " {
		t.Fatalf("prompt = %q, want autocompleted /days", m.prompt.Value())
	}

	m = press(t, m, "esc")
	if m.mode != ModeNormal || m.prompt.Value() != "" {
		t.Fatalf("esc should cancel the prompt: mode %v value %q", m.mode, m.prompt.Value())
	}
}

func TestPromptHelp(t *testing.T) {
	m := press(t, newTestModel(t), "/", "/help", "enter")
	if m.mode != ModeModal || m.modalTitle != "Keys" {
		t.Fatalf("mode %v title %q, want help modal", m.mode, m.modalTitle)
	}
}

func TestCommandsReturnCmds(t *testing.T) {
	m := newTestModel(t)

	for _, k := range []string{"y", "r", "i", "q"} {
		if _, cmd := m.Update(keyMsg(k)); cmd == nil {
			t.Errorf("key %q returned no command", k)
		}
	}

	m = press(t, m, "r")
	if !m.loading {
		t.Error("reload should mark the model loading")
	}
}

func TestInsightMsg(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, commands.InsightMsg{Insight: &llm.Insight{
		Headline: "Alice is double-booked",
		Actions:  []string{"Give Grace to Bob"},
	}})

	if m.mode != ModeModal || m.modalTitle != "Insight" {
		t.Fatalf("mode %v title %q, want insight modal", m.mode, m.modalTitle)
	}
	if !strings.Contains(m.statsLine(), "Alice is double-booked") {
		t.Errorf("stats line = %q, want headline", m.statsLine())
	}
}

func TestErrAndStatusMessages(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(commands.ErrMsg{Err: context.DeadlineExceeded})
	m = updated.(Model)
	if !strings.HasPrefix(m.statusMsg, "Error: ") || cmd == nil {
		t.Fatalf("status = %q, cmd nil = %t", m.statusMsg, cmd == nil)
	}

	m = update(t, m, commands.StatusMsgCmd{Msg: "Copied report to clipboard"})
	if m.statusMsg != "Copied report to clipboard" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m.statusTime = time.Now().Add(-time.Second)
	m = update(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Fatalf("status = %q, want cleared", m.statusMsg)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	out := m.View()

	for _, want := range []string{"fleetdesk", "1 Drivers", "4 Conflicts", "Alice", "Bob", "Mon Mar 10", "3 resources"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != 30 {
		t.Errorf("view has %d lines, want 30", len(lines))
	}
}

func TestView_Conflicts(t *testing.T) {
	m := press(t, newTestModel(t), "4")
	out := m.View()
	if !strings.Contains(out, "Ada") || !strings.Contains(out, "Grace") {
		t.Fatalf("conflicts view missing bookings:\n%s", out)
	}

	m = press(t, m, "l")
	if !strings.Contains(m.View(), "No double-bookings") {
		t.Fatal("empty conflicts view should say so")
	}
}

func TestView_Small(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 6})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Fatal("expected too-small message")
	}

	m.width, m.height = 0, 0
	if m.View() != "Loading..." {
		t.Fatal("zero size should render the placeholder")
	}
}

func TestView_Modal(t *testing.T) {
	m := press(t, newTestModel(t), "enter")
	if !strings.Contains(m.View(), "esc close") {
		t.Fatal("modal footer not rendered")
	}
}
