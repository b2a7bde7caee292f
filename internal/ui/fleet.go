package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
	"github.com/javiermolinar/fleetdesk/internal/dispatch"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/scheduler"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

// windowFlags selects the report window and the statuses counted in it.
type windowFlags struct {
	days             int
	includeCompleted bool
	noColor          bool
}

func (f *windowFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.days, "days", 0, "Days ahead of today to cover (default from config)")
	fs.BoolVar(&f.includeCompleted, "include-completed", false, "Count completed bookings")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable color output")
}

func (a *App) options(f windowFlags, now time.Time) utilization.Options {
	if f.noColor {
		DisableColor()
	}
	opts := report.OptionsFromConfig(a.config, now)
	if f.days > 0 {
		opts.DateRange = f.days
	}
	if f.includeCompleted {
		opts.IncludeCompleted = true
	}
	return opts
}

func (a *App) snapshot(ctx context.Context) (*booking.Snapshot, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	snap, err := booking.LoadSnapshot(ctx, a.repo)
	if err != nil {
		return nil, fmt.Errorf("loading fleet: %w", err)
	}
	return snap, nil
}

func printWindowHeader(w io.Writer, title string, from, to time.Time) {
	header := fmt.Sprintf("%s: %s - %s", title, from.Format("Mon Jan 2"), to.Format("Mon Jan 2, 2006"))
	fmt.Fprintf(w, "\n  %s\n", formatHeader(header))
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

func (a *App) conflictsCmd() *cobra.Command {
	var (
		f   windowFlags
		ref string
		all bool
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List double-booked drivers and vehicles",
		Long: `List every pair of bookings that share a driver or vehicle at
overlapping times within the report window.

With --booking, check a single booking against all others instead.`,
		Example: `  fleetdesk conflicts
  fleetdesk conflicts --all
  fleetdesk conflicts --booking 3f2a9c1e`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			snap, err := a.snapshot(ctx)
			if err != nil {
				return err
			}
			opts := a.options(f, time.Now())

			if ref != "" {
				b, err := matchPrefix(snap.Bookings, ref)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n", formatHeader(report.Describe(b)))
				PrintCheck(os.Stdout, conflict.Check(b, snap.Bookings))
				return nil
			}

			if all {
				fmt.Printf("\n  %s\n%s\n", formatHeader("ALL CONFLICTS"), strings.Repeat("─", ruleWidth))
				PrintConflicts(os.Stdout, conflict.Scan(snap.Bookings))
				return nil
			}

			r := report.Summarize(snap, opts)
			printWindowHeader(os.Stdout, "CONFLICTS", r.From, r.To)
			PrintConflicts(os.Stdout, r.Conflicts)
			return nil
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().StringVar(&ref, "booking", "", "Check one booking (id or id prefix)")
	cmd.Flags().BoolVar(&all, "all", false, "Scan every booking regardless of date")
	return cmd
}

func (a *App) utilizationCmd() *cobra.Command {
	var f windowFlags

	cmd := &cobra.Command{
		Use:     "utilization",
		Aliases: []string{"util"},
		Short:   "Show how busy every driver, vehicle and partner is",
		Long: `Show booked hours against capacity for every resource over the
report window, with a severity label and the current availability.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			snap, err := a.snapshot(context.Background())
			if err != nil {
				return err
			}

			r := utilization.Calculate(snap, a.options(f, time.Now()))
			printUtilization(os.Stdout, r)
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func printUtilization(w io.Writer, r *utilization.Report) {
	printWindowHeader(w, "UTILIZATION", r.From, r.To)
	PrintEntries(w, "Drivers", r.Drivers)
	PrintEntries(w, "Vehicles", r.Vehicles)
	PrintEntries(w, "Partners", r.Partners)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
	PrintSummary(w, r.Summary)
}

func (a *App) gapsCmd() *cobra.Command {
	var (
		f      windowFlags
		minGap float64
	)

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Show idle time between confirmed bookings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.snapshot(context.Background())
			if err != nil {
				return err
			}

			opts := a.options(f, time.Now())
			if cmd.Flags().Changed("min-hours") {
				opts.MinGapHours = minGap
			}

			r := report.Summarize(snap, opts)
			printWindowHeader(os.Stdout, "GAPS", r.From, r.To)
			printGaps(os.Stdout, r.Gaps)
			return nil
		},
	}

	f.register(cmd.Flags())
	cmd.Flags().Float64Var(&minGap, "min-hours", 0, "Shortest gap to report in hours (default from config)")
	return cmd
}

func printGaps(w io.Writer, all []report.ResourceGaps) {
	if len(all) == 0 {
		fmt.Fprintln(w, formatMuted("  No idle gaps."))
		return
	}
	for _, rg := range all {
		fmt.Fprintf(w, "  %s %s\n", formatHeader(rg.Name), formatMuted(string(rg.Kind)))
		for _, g := range rg.Gaps {
			fmt.Fprintf(w, "    %s\n", report.GapLine(g))
		}
	}
}

func (a *App) statusCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show who is available, busy or off right now",
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			snap, err := a.snapshot(context.Background())
			if err != nil {
				return err
			}

			now := time.Now()
			fmt.Printf("\n  %s\n%s\n", formatHeader("FLEET STATUS "+now.Format("Mon Jan 2 15:04")), strings.Repeat("─", ruleWidth))
			for _, kind := range []booking.Kind{booking.KindDriver, booking.KindVehicle, booking.KindPartner} {
				fmt.Printf("  %s\n", formatHeader(strings.ToUpper(string(kind))+"S"))
				printResources(os.Stdout, kind, snap, now)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) freeCmd() *cobra.Command {
	var (
		kindName string
		date     string
		next     time.Duration
		days     int
	)

	cmd := &cobra.Command{
		Use:   "free [name]",
		Short: "Show the free windows of a driver or vehicle",
		Long: `Show the parts of the operating day that a driver or vehicle has
not been booked for. With --next, find the first free window of at least
that length instead.`,
		Example: `  fleetdesk free Alice
  fleetdesk free "Van 1" --kind=vehicle --date=2025-03-10
  fleetdesk free Alice --next=3h`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			kind, err := booking.ParseKind(kindName)
			if err != nil {
				return err
			}
			snap, err := a.snapshot(context.Background())
			if err != nil {
				return err
			}

			mine := utilization.BookingsFor(kind, "", args[0], snap.Bookings)
			sched := scheduler.New(a.config.Dispatch.Workdays, a.config.Dispatch.DayStart, a.config.Dispatch.DayEnd)

			if next > 0 {
				w, ok := sched.NextFree(dateutil.WallClock(time.Now()), mine, next, days)
				if !ok {
					fmt.Printf("%s has no free %s window in the next %d workdays.\n", args[0], booking.FormatDuration(int(next.Minutes())), days)
					return nil
				}
				fmt.Printf("%s is next free %s\n", args[0], formatWindow(w))
				return nil
			}

			day, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}
			printFreeWindows(os.Stdout, args[0], day, sched.FreeWindows(day, mine))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "driver", "Resource kind: driver or vehicle")
	cmd.Flags().StringVar(&date, "date", "", "Day to inspect (YYYY-MM-DD, default: today)")
	cmd.Flags().DurationVar(&next, "next", 0, "Find the next free window of at least this length")
	cmd.Flags().IntVar(&days, "within", 14, "Workdays to search with --next")
	return cmd
}

func formatWindow(w scheduler.Window) string {
	return fmt.Sprintf("%s - %s (%s)", w.Start.Format("Mon Jan 2 15:04"), w.End.Format("15:04"),
		booking.FormatDuration(int(w.Duration().Minutes())))
}

func printFreeWindows(w io.Writer, name string, day time.Time, windows []scheduler.Window) {
	fmt.Fprintf(w, "%s on %s\n", formatHeader(name), day.Format("Mon Jan 2, 2006"))
	if len(windows) == 0 {
		fmt.Fprintln(w, formatMuted("  No free time (fully booked or not a workday)."))
		return
	}
	for _, win := range windows {
		fmt.Fprintf(w, "  %s\n", formatOK(formatWindow(win)))
	}
}

func (a *App) suggestCmd() *cobra.Command {
	var f windowFlags

	cmd := &cobra.Command{
		Use:   "suggest [booking-id]",
		Short: "Suggest conflict-free drivers and vehicles for a booking",
		Long: `Rank the drivers and vehicles that could take a booking without a
double-booking, least utilized first. Outsourced bookings get partners.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			snap, err := a.snapshot(context.Background())
			if err != nil {
				return err
			}
			b, err := matchPrefix(snap.Bookings, args[0])
			if err != nil {
				return err
			}

			s := dispatch.Suggest(b, snap, a.options(f, time.Now()))
			fmt.Printf("%s\n", formatHeader(report.Describe(b)))
			printSuggestion(os.Stdout, s)
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func printSuggestion(w io.Writer, s dispatch.Suggestion) {
	if s.Empty() {
		fmt.Fprintln(w, formatWarn("  Nobody is free for this booking."))
		return
	}
	section := func(title string, cs []dispatch.Candidate) {
		if len(cs) == 0 {
			return
		}
		fmt.Fprintf(w, "  %s\n", formatHeader(title))
		for i, c := range cs {
			fmt.Fprintf(w, "    %d. %-18s %s  %s\n", i+1, c.Name,
				formatLabel(c.Label, fmt.Sprintf("%5.1f%% %s", c.Utilization, c.Label.Text)),
				formatState(c.State))
		}
	}
	section("Drivers", s.Drivers)
	section("Vehicles", s.Vehicles)
	section("Partners", s.Partners)
}
