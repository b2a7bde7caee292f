package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
	"github.com/javiermolinar/fleetdesk/internal/report"
)

var errAborted = errors.New("aborted: booking has conflicts")

// bookingFlags holds the form fields shared by add and edit.
type bookingFlags struct {
	typ, source          string
	date, clock          string
	returnDate, returnAt string
	tourStart, tourEnd   string
	tourPickup, tourDrop string
	driver, vehicle      string
	partner, customer    string
	from, to             string
	price                float64
	force                bool
}

func (f *bookingFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.typ, "type", "single", "Booking type: single or tour")
	fs.StringVar(&f.source, "source", "internal", "Source: internal or outsourced")
	fs.StringVar(&f.date, "date", "", "Pickup date (YYYY-MM-DD)")
	fs.StringVar(&f.clock, "time", "", "Pickup time (HH:MM, default "+booking.DefaultPickupTime+")")
	fs.StringVar(&f.returnDate, "return-date", "", "Return pickup date (YYYY-MM-DD)")
	fs.StringVar(&f.returnAt, "return-time", "", "Return pickup time (HH:MM)")
	fs.StringVar(&f.tourStart, "tour-start", "", "Tour start date (YYYY-MM-DD)")
	fs.StringVar(&f.tourEnd, "tour-end", "", "Tour end date (YYYY-MM-DD)")
	fs.StringVar(&f.tourPickup, "tour-pickup", "", "Tour daily pickup time (HH:MM)")
	fs.StringVar(&f.tourDrop, "tour-return", "", "Tour last-day return pickup time (HH:MM)")
	fs.StringVar(&f.driver, "driver", "", "Driver name")
	fs.StringVar(&f.vehicle, "vehicle", "", "Vehicle name")
	fs.StringVar(&f.partner, "partner", "", "Partner name (outsourced bookings)")
	fs.StringVar(&f.customer, "customer", "", "Customer name")
	fs.StringVar(&f.from, "from", "", "Pickup location")
	fs.StringVar(&f.to, "to", "", "Dropoff location")
	fs.Float64Var(&f.price, "price", 0, "Price")
	fs.BoolVar(&f.force, "force", false, "Save even if the booking conflicts")
}

func (f *bookingFlags) params() booking.Params {
	p := booking.Params{
		Type:         f.typ,
		Source:       f.source,
		Pickup:       booking.Leg{Date: f.date, Time: f.clock},
		TourStart:    f.tourStart,
		TourEnd:      f.tourEnd,
		TourPickup:   f.tourPickup,
		TourDropoff:  f.tourDrop,
		Driver:       f.driver,
		Vehicle:      f.vehicle,
		Partner:      f.partner,
		CustomerName: f.customer,
		From:         f.from,
		To:           f.to,
		Price:        f.price,
	}
	if f.returnDate != "" || f.returnAt != "" {
		p.Return = &booking.Leg{Date: f.returnDate, Time: f.returnAt}
	}
	return p
}

// apply copies the flags the user set onto b.
func (f *bookingFlags) apply(fs *pflag.FlagSet, b *booking.Booking) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = strings.TrimSpace(v)
		}
	}
	set("date", &b.Date, f.date)
	set("time", &b.Time, f.clock)
	set("return-date", &b.ReturnDate, f.returnDate)
	set("return-time", &b.ReturnTime, f.returnAt)
	set("tour-start", &b.TourStartDate, f.tourStart)
	set("tour-end", &b.TourEndDate, f.tourEnd)
	set("tour-pickup", &b.TourPickupTime, f.tourPickup)
	set("tour-return", &b.TourReturnPickupTime, f.tourDrop)
	set("customer", &b.CustomerName, f.customer)
	set("from", &b.Pickup, f.from)
	set("to", &b.Dropoff, f.to)

	// A renamed resource drops the stale id.
	if fs.Changed("driver") {
		b.Driver, b.DriverID = strings.TrimSpace(f.driver), ""
	}
	if fs.Changed("vehicle") {
		b.Vehicle, b.VehicleID = strings.TrimSpace(f.vehicle), ""
	}
	if fs.Changed("partner") {
		b.Partner, b.PartnerID = strings.TrimSpace(f.partner), ""
	}
	if fs.Changed("type") {
		b.Type = booking.Type(strings.ToLower(f.typ))
	}
	if fs.Changed("source") {
		b.Source = booking.Source(strings.ToLower(f.source))
	}
	if fs.Changed("price") {
		b.Price = f.price
	}
	if fs.Changed("return-date") {
		b.HasReturn = b.ReturnDate != ""
	}
}

func (a *App) bookingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "booking",
		Aliases: []string{"bookings", "b"},
		Short:   "Manage bookings",
	}

	cmd.AddCommand(a.bookingAddCmd())
	cmd.AddCommand(a.bookingListCmd())
	cmd.AddCommand(a.bookingShowCmd())
	cmd.AddCommand(a.bookingEditCmd())
	cmd.AddCommand(a.bookingStatusCmd("confirm", booking.StatusConfirmed, "Confirmed"))
	cmd.AddCommand(a.bookingStatusCmd("complete", booking.StatusCompleted, "Completed"))
	cmd.AddCommand(a.bookingStatusCmd("cancel", booking.StatusCancelled, "Cancelled"))

	return cmd
}

func (a *App) bookingAddCmd() *cobra.Command {
	var f bookingFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new booking",
		Long: `Add a booking. If the driver or vehicle is already booked at an
overlapping time the conflicts are listed and you are asked to confirm.

Example:
  fleetdesk booking add --date=2025-03-10 --time=09:00 --driver=Alice --vehicle="Van 1" --customer="Ada"
  fleetdesk booking add --type=tour --tour-start=2025-03-10 --tour-end=2025-03-12 --driver=Bob`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			b, err := booking.New(f.params())
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.checkBeforeSave(ctx, b, f.force, os.Stdin, os.Stdout); err != nil {
				return err
			}
			if err := a.repo.CreateBooking(ctx, b); err != nil {
				return fmt.Errorf("creating booking: %w", err)
			}

			a.logger.Infow("booking created", "id", b.ID, "driver", b.Driver, "vehicle", b.Vehicle)
			fmt.Printf("Created booking %s: %s\n", shortID(b.ID), report.Describe(b))
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func (a *App) bookingEditCmd() *cobra.Command {
	var f bookingFlags

	cmd := &cobra.Command{
		Use:   "edit [booking-id]",
		Short: "Change fields of a booking",
		Long: `Change the fields given as flags. The booking is checked for
conflicts against every other booking before it is saved.

Example:
  fleetdesk booking edit 3f2a9c1e --time=11:00 --driver=Bob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			b, err := a.editBooking(context.Background(), args[0], &f, cmd.Flags(), os.Stdin, os.Stdout)
			if err != nil {
				return err
			}

			fmt.Printf("Updated booking %s: %s\n", shortID(b.ID), report.Describe(b))
			return nil
		},
	}

	f.register(cmd.Flags())
	return cmd
}

// editBooking applies the changed flags to the booking ref points at and
// saves it once it is valid and its conflicts are accepted.
func (a *App) editBooking(ctx context.Context, ref string, f *bookingFlags, fs *pflag.FlagSet, in io.Reader, out io.Writer) (*booking.Booking, error) {
	b, err := a.findBooking(ctx, ref)
	if err != nil {
		return nil, err
	}

	f.apply(fs, b)
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid booking: %w", err)
	}

	if err := a.checkBeforeSave(ctx, b, f.force, in, out); err != nil {
		return nil, err
	}
	if err := a.repo.UpdateBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("updating booking: %w", err)
	}
	return b, nil
}

// checkBeforeSave resolves the resource ids of b and gates the save on its
// conflicts.
func (a *App) checkBeforeSave(ctx context.Context, b *booking.Booking, force bool, in io.Reader, out io.Writer) error {
	snap, err := booking.LoadSnapshot(ctx, a.repo)
	if err != nil {
		return fmt.Errorf("loading bookings: %w", err)
	}
	snap.ResolveIDs(b)

	res := conflict.Check(b, snap.Bookings)
	a.logger.Debugw("conflict check", "id", b.ID, "hits", res.Count())
	if !confirmConflicts(res, force, in, out) {
		return errAborted
	}
	return nil
}

// confirmConflicts reports whether a booking with the given check result may
// be saved. Conflicts are printed and need a yes unless force is set.
func confirmConflicts(res conflict.Result, force bool, in io.Reader, out io.Writer) bool {
	if !res.HasConflicts() {
		return true
	}

	fmt.Fprintf(out, "%s\n", formatWarn(fmt.Sprintf("This booking has %d conflict(s):", res.Count())))
	PrintCheck(out, res)
	if force {
		fmt.Fprintln(out, formatMuted("  Saving anyway (--force)."))
		return true
	}

	fmt.Fprint(out, "Save anyway? [y/N]: ")
	input, _ := bufio.NewReader(in).ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// findBooking looks a booking up by id or by a unique id prefix.
func (a *App) findBooking(ctx context.Context, ref string) (*booking.Booking, error) {
	b, err := a.repo.GetBooking(ctx, ref)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, booking.ErrBookingNotFound) {
		return nil, err
	}

	all, err := a.repo.ListAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return matchPrefix(all, ref)
}

func matchPrefix(all []*booking.Booking, ref string) (*booking.Booking, error) {
	var found *booking.Booking
	for _, b := range all {
		if !strings.HasPrefix(b.ID, ref) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("booking id %q is ambiguous", ref)
		}
		found = b
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", booking.ErrBookingNotFound, ref)
	}
	return found, nil
}

func (a *App) bookingListCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings in a date range",
		Long: `List bookings whose primary date is within a date range.

If no dates are specified, lists today's bookings.
If only --start is specified, lists bookings for that single day.
A tour is listed on its start date.`,
		Example: `  fleetdesk booking list
  fleetdesk booking list --start=2025-03-10 --end=2025-03-16
  fleetdesk booking list --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			var (
				bookings []*booking.Booking
				err      error
			)
			if all {
				bookings, err = a.repo.ListAllBookings(ctx)
			} else {
				var dateRange *dateutil.DateRange
				dateRange, err = dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				bookings, err = a.repo.ListBookingsByDateRange(ctx, dateRange.Start, dateRange.End)
			}
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}

			if len(bookings) == 0 {
				fmt.Println("No bookings found in the specified date range.")
				return nil
			}

			printBookingsByDate(os.Stdout, bookings)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&all, "all", false, "List every booking")

	return cmd
}

func printBookingsByDate(w io.Writer, bookings []*booking.Booking) {
	width := termWidth() - 60
	if width < 16 {
		width = 16
	}

	var currentDate string
	for _, b := range bookings {
		date := b.PrimaryDate()
		if date != currentDate {
			if currentDate != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "=== %s ===\n", formatHeader(date))
			currentDate = date
		}
		PrintBookingRow(w, b, width)
	}
}

func (a *App) bookingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [booking-id]",
		Short: "Show a booking and its conflicts",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			b, err := a.findBooking(ctx, args[0])
			if err != nil {
				return err
			}
			all, err := a.repo.ListAllBookings(ctx)
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}

			printBookingDetail(os.Stdout, b)
			fmt.Println()
			PrintCheck(os.Stdout, conflict.Check(b, all))
			return nil
		},
	}
}

func printBookingDetail(w io.Writer, b *booking.Booking) {
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "  %-10s %s\n", label, value)
	}

	fmt.Fprintf(w, "%s %s\n", statusSymbol(b.Status), formatHeader(b.ID))
	row("status", string(b.Status))
	row("type", string(b.Type))
	row("source", string(b.NormalizedSource()))
	row("when", bookingWhen(b))
	row("customer", b.CustomerName)
	row("route", strings.Trim(b.Pickup+" → "+b.Dropoff, " →"))
	row("assigned", bookingAssignee(b))
	if b.Price > 0 {
		row("price", fmt.Sprintf("%.2f", b.Price))
	}
	for _, r := range booking.Ranges(b) {
		start, _, ok := r.Instants()
		if !ok {
			continue
		}
		row("occupies", fmt.Sprintf("%s for %s", start.Format("Mon Jan 2 15:04"),
			booking.FormatDuration(int(r.Duration().Minutes()))))
	}
}

func (a *App) bookingStatusCmd(use string, status booking.Status, verb string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [booking-id]",
		Short: fmt.Sprintf("Mark a booking as %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			b, err := a.findBooking(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.SetBookingStatus(ctx, b.ID, status); err != nil {
				return fmt.Errorf("updating booking: %w", err)
			}

			fmt.Printf("%s booking %s\n", verb, shortID(b.ID))
			return nil
		},
	}
}
