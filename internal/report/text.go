package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/scheduler"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

const timestampLayout = "Mon Jan 2 15:04"

// ConflictLine describes a double-booking in one line.
func ConflictLine(c conflict.Conflict) string {
	return fmt.Sprintf("%s %s: %s and %s overlap %s",
		c.Field, c.Resource, Describe(c.First), Describe(c.Second),
		booking.FormatDuration(c.OverlapMinutes))
}

// GapLine describes an idle gap in one line.
func GapLine(g scheduler.Gap) string {
	return fmt.Sprintf("%s → %s (%s idle)",
		g.Start.Format(timestampLayout),
		g.End.Format(timestampLayout),
		booking.FormatDuration(int(g.Duration().Minutes())))
}

// Describe returns a short label for a booking: its customer or id, and its
// first start.
func Describe(b *booking.Booking) string {
	who := b.CustomerName
	if who == "" {
		who = shortID(b.ID)
	}
	ranges := booking.Ranges(b)
	if len(ranges) == 0 {
		return who
	}
	if b.IsTour() {
		return fmt.Sprintf("%s (tour %s..%s)", who, b.TourStartDate, b.TourEndDate)
	}
	return fmt.Sprintf("%s (%s %s)", who, ranges[0].StartDate, ranges[0].StartTime)
}

// Text renders the report as plain text.
func Text(r *Report) string {
	var sb strings.Builder
	_ = WriteText(&sb, r)
	return sb.String()
}

// WriteText writes the report as plain text.
func WriteText(w io.Writer, r *Report) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Fleet report %s - %s\n",
		r.From.Format("Mon Jan 2"), r.To.Format("Mon Jan 2, 2006"))

	u := r.Utilization
	if u != nil {
		fmt.Fprintf(&sb, "%d resources: %d available, %d busy, %d unavailable, avg %.0f%%\n",
			u.Summary.TotalResources, u.Summary.Available, u.Summary.Busy,
			u.Summary.Unavailable, u.Summary.AvgUtilization)
		writeEntries(&sb, "Drivers", u.Drivers)
		writeEntries(&sb, "Vehicles", u.Vehicles)
		writeEntries(&sb, "Partners", u.Partners)
	}

	sb.WriteString("\nConflicts\n")
	if len(r.Conflicts) == 0 {
		sb.WriteString("  none\n")
	}
	for _, c := range r.Conflicts {
		sb.WriteString("  " + ConflictLine(c) + "\n")
	}

	if len(r.Gaps) > 0 {
		sb.WriteString("\nGaps\n")
		for _, rg := range r.Gaps {
			fmt.Fprintf(&sb, "  %s %s\n", rg.Kind, rg.Name)
			for _, g := range rg.Gaps {
				sb.WriteString("    " + GapLine(g) + "\n")
			}
		}
	}

	if r.Insight != nil {
		sb.WriteString("\nInsight\n")
		sb.WriteString(r.Insight.String())
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeEntries(sb *strings.Builder, title string, entries []utilization.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", title)
	for _, e := range entries {
		fmt.Fprintf(sb, "  %-16s %5.1fh %5.1f%%  %-10s %s\n",
			e.Name, e.TotalHours, e.Utilization, e.Label.Text, e.Availability)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
