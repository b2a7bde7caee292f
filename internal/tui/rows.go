package tui

import (
	"fmt"
	"strconv"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/tui/view"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

const barWidth = 12

var (
	resourceHeaders = []string{"Name", "State", "Jobs", "Hours", "Load", "%", "Label"}
	conflictHeaders = []string{"Resource", "Kind", "First", "Second", "Overlap"}
)

// Column indexes that take the severity color.
const (
	colBar   = 4
	colLabel = 6
)

// row is one line of the active table.
type row struct {
	cells    []string
	severity utilization.Severity
	entry    *utilization.Entry
	conflict *conflict.Conflict
}

func (m Model) headers() []string {
	if m.tab == TabConflicts {
		return conflictHeaders
	}
	return resourceHeaders
}

func (m Model) entries() []utilization.Entry {
	if m.report == nil {
		return nil
	}
	switch m.tab {
	case TabDrivers:
		return m.report.Utilization.Drivers
	case TabVehicles:
		return m.report.Utilization.Vehicles
	case TabPartners:
		return m.report.Utilization.Partners
	}
	return nil
}

func (m Model) rows() []row {
	if m.report == nil {
		return nil
	}

	if m.tab == TabConflicts {
		out := make([]row, 0, len(m.report.Conflicts))
		for i := range m.report.Conflicts {
			c := &m.report.Conflicts[i]
			out = append(out, row{
				cells: []string{
					c.Resource,
					string(c.Field),
					report.Describe(c.First),
					report.Describe(c.Second),
					booking.FormatDuration(c.OverlapMinutes),
				},
				severity: utilization.SeverityCritical,
				conflict: c,
			})
		}
		return out
	}

	entries := m.entries()
	out := make([]row, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		out = append(out, row{
			cells: []string{
				e.Name,
				string(e.Availability),
				strconv.Itoa(len(e.Bookings)),
				view.FormatHours(e.TotalHours),
				view.Bar(e.Utilization, barWidth),
				view.FormatPercent(e.Utilization),
				e.Label.Text,
			},
			severity: e.Label.Severity,
			entry:    e,
		})
	}
	return out
}

// selected returns the row under the cursor.
func (m Model) selected() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

// detail builds the modal title and body for a row.
func (m Model) detail(r row) (string, []string) {
	if r.conflict != nil {
		c := r.conflict
		return fmt.Sprintf("Conflict: %s %s", c.Field, c.Resource), []string{
			report.ConflictLine(*c),
			"",
			"First:  " + bookingLine(c.First),
			"Second: " + bookingLine(c.Second),
		}
	}

	e := r.entry
	title := fmt.Sprintf("%s %s", e.Kind, e.Name)
	body := []string{
		fmt.Sprintf("%s · %s booked · %s of capacity · %s",
			e.Availability, view.FormatHours(e.TotalHours), view.FormatPercent(e.Utilization), e.Label.Text),
	}
	if e.Status != "" {
		body[0] += " · status " + e.Status
	}

	if len(e.Bookings) > 0 {
		body = append(body, "", "Bookings:")
		for _, b := range e.Bookings {
			body = append(body, "  "+bookingLine(b))
		}
	}

	if conflicts := conflict.ForResource(m.report.Conflicts, e.Kind, e.Name); len(conflicts) > 0 {
		body = append(body, "", "Conflicts:")
		for _, c := range conflicts {
			body = append(body, "  "+report.ConflictLine(c))
		}
	}

	for _, rg := range m.report.Gaps {
		if rg.Kind != e.Kind || rg.Name != e.Name {
			continue
		}
		body = append(body, "", "Idle gaps:")
		for _, g := range rg.Gaps {
			body = append(body, "  "+report.GapLine(g))
		}
	}

	return title, body
}

func bookingLine(b *booking.Booking) string {
	when := b.PrimaryDate()
	if ranges := booking.Ranges(b); len(ranges) > 0 {
		if t, ok := dateutil.Combine(ranges[0].StartDate, ranges[0].StartTime); ok {
			when = t.Format("Mon Jan 2 15:04")
		}
	}
	who := b.CustomerName
	if who == "" {
		who = b.ID
	}
	line := fmt.Sprintf("%s  %s  %s", when, who, b.Status)
	if b.Pickup != "" || b.Dropoff != "" {
		line += fmt.Sprintf("  %s → %s", b.Pickup, b.Dropoff)
	}
	return line
}
