package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/db"
	"github.com/javiermolinar/fleetdesk/internal/dispatch"
	"github.com/javiermolinar/fleetdesk/internal/report"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

var monday = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// seedFleet adds drivers Alice and Bob, vehicle "Van 1" and partner Acme.
func seedFleet(t *testing.T, repo *db.SQLite) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"Alice", "Bob"} {
		d, err := booking.NewDriver(name, "")
		if err != nil {
			t.Fatal(err)
		}
		if err := repo.CreateDriver(ctx, d); err != nil {
			t.Fatalf("creating driver %s: %v", name, err)
		}
	}
	v, err := booking.NewVehicle("Van 1", "AB-123", 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateVehicle(ctx, v); err != nil {
		t.Fatalf("creating vehicle: %v", err)
	}
	p, err := booking.NewPartner("Acme", "ops@acme.test")
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.CreatePartner(ctx, p); err != nil {
		t.Fatalf("creating partner: %v", err)
	}
}

// createBooking is a helper to build and insert a booking.
func createBooking(t *testing.T, repo *db.SQLite, p booking.Params) *booking.Booking {
	t.Helper()
	b, err := booking.New(p)
	if err != nil {
		t.Fatalf("failed to build booking: %v", err)
	}
	if err := repo.CreateBooking(context.Background(), b); err != nil {
		t.Fatalf("failed to insert booking: %v", err)
	}
	return b
}

func TestDispatchWorkflow(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	seedFleet(t, repo)

	// An airport run with an evening return.
	first := createBooking(t, repo, booking.Params{
		Pickup:       booking.Leg{Date: "2025-03-10", Time: "09:00"},
		Return:       &booking.Leg{Date: "2025-03-10", Time: "17:00"},
		Driver:       "Alice",
		Vehicle:      "Van 1",
		CustomerName: "Ada",
	})
	if err := repo.SetBookingStatus(ctx, first.ID, booking.StatusConfirmed); err != nil {
		t.Fatalf("confirming: %v", err)
	}

	// A second job for Alice an hour later collides with the outbound leg.
	candidate, err := booking.New(booking.Params{
		Pickup:       booking.Leg{Date: "2025-03-10", Time: "10:00"},
		Driver:       "Alice",
		CustomerName: "Grace",
	})
	if err != nil {
		t.Fatal(err)
	}

	existing, err := repo.ListAllBookings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	res := conflict.Check(candidate, existing)
	if len(res.Driver) != 1 || len(res.Vehicle) != 0 {
		t.Fatalf("check = %d driver, %d vehicle hits, want 1, 0", len(res.Driver), len(res.Vehicle))
	}
	if res.Driver[0].OverlapMinutes != 60 {
		t.Errorf("overlap = %d, want 60", res.Driver[0].OverlapMinutes)
	}

	// Dispatch offers Bob instead, and keeps the busy van out.
	snap, err := booking.LoadSnapshot(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	opts := utilization.DefaultOptions()
	opts.Now = monday
	sugg := dispatch.Suggest(candidate, snap, opts)
	if len(sugg.Drivers) != 1 || sugg.Drivers[0].Name != "Bob" {
		t.Fatalf("suggested drivers = %+v, want only Bob", sugg.Drivers)
	}
	if len(sugg.Vehicles) != 0 {
		t.Errorf("suggested vehicles = %+v, want none", sugg.Vehicles)
	}

	candidate.Driver = "Bob"
	if err := repo.CreateBooking(ctx, candidate); err != nil {
		t.Fatal(err)
	}

	all, err := repo.ListAllBookings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c := conflict.Scan(all); len(c) != 0 {
		t.Fatalf("scan = %+v, want no conflicts after reassignment", c)
	}

	r, err := report.Build(ctx, repo, report.Options{Utilization: opts})
	if err != nil {
		t.Fatalf("building report: %v", err)
	}
	hours := map[string]float64{}
	states := map[string]utilization.State{}
	for _, e := range r.Utilization.All() {
		hours[e.Name] = e.TotalHours
		states[e.Name] = e.Availability
	}
	if hours["Alice"] != 4 || hours["Bob"] != 2 || hours["Van 1"] != 4 {
		t.Errorf("hours = %v, want Alice 4, Bob 2, Van 1 4", hours)
	}
	if states["Alice"] != utilization.Busy || states["Bob"] != utilization.Available {
		t.Errorf("states = %v, want Alice busy, Bob available (pending)", states)
	}
	if r.Utilization.Summary.TotalResources != 4 {
		t.Errorf("total resources = %d, want 4", r.Utilization.Summary.TotalResources)
	}
}

func TestStatusLifecycle(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	b := createBooking(t, repo, booking.Params{
		Pickup: booking.Leg{Date: "2025-03-10", Time: "09:00"},
		Driver: "Alice",
	})

	steps := []struct {
		to      booking.Status
		wantErr error
	}{
		{booking.StatusCompleted, booking.ErrInvalidTransition},
		{booking.StatusConfirmed, nil},
		{booking.StatusCompleted, nil},
		{booking.StatusCancelled, booking.ErrInvalidTransition},
	}
	for _, s := range steps {
		err := repo.SetBookingStatus(ctx, b.ID, s.to)
		if !errors.Is(err, s.wantErr) {
			t.Fatalf("-> %s: err = %v, want %v", s.to, err, s.wantErr)
		}
	}

	got, err := repo.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != booking.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}

	if err := repo.SetBookingStatus(ctx, "missing", booking.StatusConfirmed); !errors.Is(err, booking.ErrBookingNotFound) {
		t.Fatalf("missing booking err = %v", err)
	}
}

func TestCancelledBookingsFreeTheDriver(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	b := createBooking(t, repo, booking.Params{
		Pickup: booking.Leg{Date: "2025-03-10", Time: "09:00"},
		Driver: "Alice",
	})
	if err := repo.SetBookingStatus(ctx, b.ID, booking.StatusCancelled); err != nil {
		t.Fatal(err)
	}

	candidate, err := booking.New(booking.Params{
		Pickup: booking.Leg{Date: "2025-03-10", Time: "09:30"},
		Driver: "Alice",
	})
	if err != nil {
		t.Fatal(err)
	}
	all, err := repo.ListAllBookings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res := conflict.Check(candidate, all); res.HasConflicts() {
		t.Fatalf("cancelled booking still conflicts: %+v", res)
	}
}

func TestResourceStatusMakesUnavailable(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	seedFleet(t, repo)

	if err := repo.SetResourceStatus(ctx, booking.KindVehicle, "Van 1", booking.VehicleMaintenance); err != nil {
		t.Fatalf("setting status: %v", err)
	}
	if err := repo.SetResourceStatus(ctx, booking.KindDriver, "Nobody", booking.DriverOffline); !errors.Is(err, booking.ErrResourceNotFound) {
		t.Fatalf("unknown driver err = %v", err)
	}

	snap, err := booking.LoadSnapshot(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range utilization.FleetStatus(snap, monday) {
		want := utilization.Available
		if s.Name == "Van 1" {
			want = utilization.Unavailable
		}
		if s.State != want {
			t.Errorf("%s %s = %s, want %s", s.Kind, s.Name, s.State, want)
		}
	}

	candidate, err := booking.New(booking.Params{Pickup: booking.Leg{Date: "2025-03-10", Time: "14:00"}})
	if err != nil {
		t.Fatal(err)
	}
	opts := utilization.DefaultOptions()
	opts.Now = monday
	if sugg := dispatch.Suggest(candidate, snap, opts); len(sugg.Vehicles) != 0 {
		t.Fatalf("vehicle in maintenance suggested: %+v", sugg.Vehicles)
	}
}

func TestImportSnapshotUpserts(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	snap := &booking.Snapshot{
		Drivers: []*booking.Driver{{Name: "Alice"}},
		Partners: []*booking.Partner{{Name: "Acme"}},
		Bookings: []*booking.Booking{
			{ID: "t1", Type: booking.TypeTour, Status: booking.StatusConfirmed,
				TourStartDate: "2025-03-11", TourEndDate: "2025-03-12", Driver: "Alice"},
			{ID: "o1", Source: booking.SourceOutsourced, Status: booking.StatusPending,
				Date: "2025-03-11", Time: "08:00", Partner: "Acme"},
		},
	}
	snap.Normalize()

	for i := 0; i < 2; i++ {
		if err := repo.ImportSnapshot(ctx, snap); err != nil {
			t.Fatalf("import %d: %v", i, err)
		}
	}

	got, err := booking.LoadSnapshot(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Bookings) != 2 || len(got.Drivers) != 1 || len(got.Partners) != 1 {
		t.Fatalf("loaded %d bookings, %d drivers, %d partners, want 2, 1, 1",
			len(got.Bookings), len(got.Drivers), len(got.Partners))
	}

	tour := got.FindBooking("t1")
	if tour == nil || tour.DriverID != snap.Drivers[0].ID {
		t.Fatalf("tour driver id not resolved: %+v", tour)
	}

	opts := utilization.DefaultOptions()
	opts.Now = monday
	r := report.Summarize(got, opts)
	for _, e := range r.Utilization.Partners {
		if e.Name == "Acme" && len(e.Bookings) != 1 {
			t.Errorf("Acme has %d bookings, want the outsourced one", len(e.Bookings))
		}
	}
}
