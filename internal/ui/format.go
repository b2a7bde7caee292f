package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/llm"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

const ruleWidth = 74

// statusSymbol returns the status indicator for a booking.
func statusSymbol(s booking.Status) string {
	switch s {
	case booking.StatusPending:
		return "○"
	case booking.StatusConfirmed:
		return "●"
	case booking.StatusCompleted:
		return "✓"
	case booking.StatusCancelled:
		return "✗"
	default:
		return "?"
	}
}

// bookingWhen returns the schedule column of a booking row.
func bookingWhen(b *booking.Booking) string {
	if b.IsTour() {
		return fmt.Sprintf("%s..%s", b.TourStartDate, b.TourEndDate)
	}
	clock := b.Time
	if clock == "" {
		clock = "--:--"
	}
	when := b.Date + " " + clock
	if b.HasReturn {
		when += " ↩ " + b.ReturnDate
		if b.ReturnTime != "" {
			when += " " + b.ReturnTime
		}
	}
	return when
}

// bookingAssignee returns who serves the booking.
func bookingAssignee(b *booking.Booking) string {
	if b.IsOutsourced() {
		if b.Partner == "" {
			return formatMuted("partner unassigned")
		}
		return "partner " + b.Partner
	}
	driver, vehicle := b.Driver, b.Vehicle
	if driver == "" {
		driver = "-"
	}
	if vehicle == "" {
		vehicle = "-"
	}
	return driver + " / " + vehicle
}

// PrintBookingRow prints a single booking row with consistent formatting.
func PrintBookingRow(w io.Writer, b *booking.Booking, maxNameWidth int) {
	name := b.CustomerName
	if name == "" {
		name = formatMuted("(no customer)")
	} else if len(name) > maxNameWidth {
		name = name[:maxNameWidth-3] + "..."
	}

	kind := "[S]"
	if b.IsTour() {
		kind = "[T]"
	}

	fmt.Fprintf(w, "  %s %-8s  %-24s %s  %-*s  %s\n",
		statusSymbol(b.Status), shortID(b.ID), bookingWhen(b), kind,
		maxNameWidth, name, bookingAssignee(b))
}

// UtilizationBar draws pct as a bar of width cells, capped at full.
func UtilizationBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// PrintEntries prints one utilization table section.
func PrintEntries(w io.Writer, title string, entries []utilization.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s\n", formatHeader(title))
	for _, e := range entries {
		bar := formatLabel(e.Label, UtilizationBar(e.Utilization, 20))
		pct := formatLabel(e.Label, fmt.Sprintf("%5.1f%% %-9s", e.Utilization, e.Label.Text))
		fmt.Fprintf(w, "  %-18s %s %s %5.1fh  %s\n",
			e.Name, bar, pct, e.TotalHours, formatState(e.Availability))
	}
}

// PrintSummary prints the availability counts of a report.
func PrintSummary(w io.Writer, s utilization.Summary) {
	fmt.Fprintf(w, "  %d resources  |  %s  |  %s  |  %s  |  avg %.1f%%\n",
		s.TotalResources,
		formatOK(fmt.Sprintf("%d available", s.Available)),
		formatInsight(fmt.Sprintf("%d busy", s.Busy)),
		formatMuted(fmt.Sprintf("%d unavailable", s.Unavailable)),
		s.AvgUtilization)
}

// PrintConflicts prints collection-wide double-bookings.
func PrintConflicts(w io.Writer, cs []conflict.Conflict) {
	if len(cs) == 0 {
		fmt.Fprintln(w, formatOK("  No double-bookings."))
		return
	}
	for _, c := range cs {
		fmt.Fprintf(w, "  %s %s\n", formatWarn("!"), report.ConflictLine(c))
	}
}

// PrintCheck prints the hits of a single candidate check.
func PrintCheck(w io.Writer, res conflict.Result) {
	if !res.HasConflicts() {
		fmt.Fprintln(w, formatOK("  No conflicts."))
		return
	}
	printHits(w, "driver", res.Driver)
	printHits(w, "vehicle", res.Vehicle)
}

func printHits(w io.Writer, field string, hits []conflict.Hit) {
	for _, h := range hits {
		fmt.Fprintf(w, "  %s %s busy with %s at %s %s (%s overlap)\n",
			formatWarn("!"), field, report.Describe(h.Booking),
			h.ConflictDate, h.ConflictTime, booking.FormatDuration(h.OverlapMinutes))
	}
}

// PrintInsightWrapped prints an advisor insight wrapped to width.
func PrintInsightWrapped(w io.Writer, in *llm.Insight, width int) {
	wrapAndPrint(w, in.Headline, "  ", width-2)
	for _, r := range in.Risks {
		wrapAndPrint(w, r, "  ! ", width-4)
	}
	for _, act := range in.Actions {
		wrapAndPrint(w, act, "  ➜ ", width-4)
	}
}

// wrapAndPrint wraps text to width and prints with the given prefix.
func wrapAndPrint(w io.Writer, text, prefix string, width int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	continuation := strings.Repeat(" ", len([]rune(prefix)))
	current := prefix
	line := ""

	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			fmt.Fprintln(w, formatInsight(current+line))
			current = continuation
			line = word
		}
	}
	fmt.Fprintln(w, formatInsight(current+line))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
