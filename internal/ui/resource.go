package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

var resourceStatuses = map[booking.Kind][]string{
	booking.KindDriver:  {booking.DriverAvailable, booking.DriverBusy, booking.DriverOffline},
	booking.KindVehicle: {booking.VehicleActive, booking.VehicleInactive, booking.VehicleMaintenance},
	booking.KindPartner: {booking.PartnerActive, booking.PartnerInactive},
}

// resourceCmd builds the add/list/status command group of one resource kind.
func (a *App) resourceCmd(kind booking.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:     string(kind),
		Aliases: []string{string(kind) + "s"},
		Short:   fmt.Sprintf("Manage %ss", kind),
	}

	cmd.AddCommand(a.resourceAddCmd(kind))
	cmd.AddCommand(a.resourceListCmd(kind))
	cmd.AddCommand(a.resourceStatusCmd(kind))
	return cmd
}

func (a *App) resourceAddCmd(kind booking.Kind) *cobra.Command {
	var (
		phone   string
		plate   string
		seats   int
		contact string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: fmt.Sprintf("Add a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			var (
				id  string
				err error
			)
			switch kind {
			case booking.KindDriver:
				var d *booking.Driver
				if d, err = booking.NewDriver(args[0], phone); err == nil {
					id, err = d.ID, a.repo.CreateDriver(ctx, d)
				}
			case booking.KindVehicle:
				var v *booking.Vehicle
				if v, err = booking.NewVehicle(args[0], plate, seats); err == nil {
					id, err = v.ID, a.repo.CreateVehicle(ctx, v)
				}
			case booking.KindPartner:
				var p *booking.Partner
				if p, err = booking.NewPartner(args[0], contact); err == nil {
					id, err = p.ID, a.repo.CreatePartner(ctx, p)
				}
			}
			if err != nil {
				return fmt.Errorf("adding %s: %w", kind, err)
			}

			fmt.Printf("Added %s %s (%s)\n", kind, strings.TrimSpace(args[0]), shortID(id))
			return nil
		},
	}

	switch kind {
	case booking.KindDriver:
		cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	case booking.KindVehicle:
		cmd.Flags().StringVar(&plate, "plate", "", "Licence plate")
		cmd.Flags().IntVar(&seats, "seats", 0, "Passenger seats")
	case booking.KindPartner:
		cmd.Flags().StringVar(&contact, "contact", "", "Contact person or phone")
	}
	return cmd
}

func (a *App) resourceListCmd(kind booking.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss with their current availability", kind),
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			snap, err := booking.LoadSnapshot(context.Background(), a.repo)
			if err != nil {
				return fmt.Errorf("loading fleet: %w", err)
			}

			printResources(os.Stdout, kind, snap, time.Now())
			return nil
		},
	}
}

// printResources lists the resources of kind with their management status
// and their computed availability at now.
func printResources(w io.Writer, kind booking.Kind, snap *booking.Snapshot, now time.Time) {
	var rows []utilization.Status
	for _, st := range utilization.FleetStatus(snap, now) {
		if st.Kind == kind {
			rows = append(rows, st)
		}
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "No %ss yet. Add one with 'fleetdesk %s add'.\n", kind, kind)
		return
	}

	status := make(map[string]string)
	for _, d := range snap.Drivers {
		status[d.ID] = d.Status
	}
	for _, v := range snap.Vehicles {
		status[v.ID] = v.Status
	}
	for _, p := range snap.Partners {
		status[p.ID] = p.Status
	}

	for _, st := range rows {
		line := fmt.Sprintf("  %-20s %-12s %s", st.Name, status[st.ID], formatState(st.State))
		switch {
		case st.Current != nil:
			line += formatMuted("  on " + report.Describe(st.Current))
		case st.Next != nil:
			line += formatMuted("  next " + report.Describe(st.Next))
		}
		fmt.Fprintln(w, line)
	}
}

func (a *App) resourceStatusCmd(kind booking.Kind) *cobra.Command {
	valid := strings.Join(resourceStatuses[kind], ", ")

	return &cobra.Command{
		Use:   "status [name] [status]",
		Short: fmt.Sprintf("Set the management status of a %s (%s)", kind, valid),
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			status := strings.ToLower(strings.TrimSpace(args[1]))
			if err := a.repo.SetResourceStatus(context.Background(), kind, args[0], status); err != nil {
				return fmt.Errorf("setting status (valid: %s): %w", valid, err)
			}

			fmt.Printf("%s %s is now %s\n", kind, args[0], status)
			return nil
		},
	}
}
