package utilization

import (
	"testing"

	"github.com/javiermolinar/fleetdesk/internal/booking"
)

func TestAvailability(t *testing.T) {
	// now is 2024-06-01 08:00.
	inProgress := transfer("a", "Alice", "Van1", "2024-06-01", "07:00", booking.StatusConfirmed)
	pendingNow := transfer("p", "Alice", "Van1", "2024-06-01", "07:00", booking.StatusPending)
	later := transfer("b", "Alice", "Van1", "2024-06-01", "12:00", booking.StatusConfirmed)

	tests := []struct {
		name     string
		kind     booking.Kind
		status   string
		bookings []*booking.Booking
		want     State
	}{
		{name: "available driver, idle", kind: booking.KindDriver, status: booking.DriverAvailable, want: Available},
		{name: "available driver, on a job", kind: booking.KindDriver, status: booking.DriverAvailable, bookings: []*booking.Booking{inProgress}, want: Busy},
		{name: "pending booking does not block", kind: booking.KindDriver, status: booking.DriverAvailable, bookings: []*booking.Booking{pendingNow}, want: Available},
		{name: "later booking does not block", kind: booking.KindDriver, status: booking.DriverAvailable, bookings: []*booking.Booking{later}, want: Available},
		{name: "driver marked busy", kind: booking.KindDriver, status: booking.DriverBusy, want: Busy},
		{name: "driver offline beats booking", kind: booking.KindDriver, status: booking.DriverOffline, bookings: []*booking.Booking{inProgress}, want: Unavailable},
		{name: "vehicle in maintenance", kind: booking.KindVehicle, status: booking.VehicleMaintenance, want: Unavailable},
		{name: "vehicle inactive", kind: booking.KindVehicle, status: booking.VehicleInactive, want: Unavailable},
		{name: "vehicle on a job", kind: booking.KindVehicle, status: booking.VehicleActive, bookings: []*booking.Booking{inProgress}, want: Busy},
		{name: "partner inactive", kind: booking.KindPartner, status: booking.PartnerInactive, want: Unavailable},
		{name: "partner active", kind: booking.KindPartner, status: booking.PartnerActive, want: Available},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Availability(tt.kind, tt.status, tt.bookings, now); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFleetStatus(t *testing.T) {
	inProgress := transfer("a", "Alice", "Van1", "2024-06-01", "07:00", booking.StatusConfirmed)
	next := transfer("b", "Alice", "Van2", "2024-06-01", "12:00", booking.StatusConfirmed)
	afterThat := transfer("c", "Alice", "Van2", "2024-06-02", "09:00", booking.StatusConfirmed)

	snap := &booking.Snapshot{
		Drivers:  []*booking.Driver{{ID: "d1", Name: "Alice", Status: booking.DriverAvailable}},
		Vehicles: []*booking.Vehicle{{ID: "v1", Name: "Van2", Status: booking.VehicleActive}},
		Bookings: []*booking.Booking{afterThat, next, inProgress},
	}

	got := FleetStatus(snap, now)
	if len(got) != 2 {
		t.Fatalf("got %d statuses, want 2", len(got))
	}

	alice := got[0]
	if alice.State != Busy || alice.Current != inProgress || alice.Next != next {
		t.Errorf("unexpected driver status %+v", alice)
	}

	van := got[1]
	if van.State != Available || van.Current != nil || van.Next != next {
		t.Errorf("unexpected vehicle status %+v", van)
	}

	if FleetStatus(nil, now) != nil {
		t.Error("nil snapshot should give no statuses")
	}
}

func TestBookingsFor_UnknownResource(t *testing.T) {
	bookings := []*booking.Booking{transfer("a", "Alice", "Van1", "2024-06-01", "07:00", booking.StatusConfirmed)}
	if got := BookingsFor(booking.KindDriver, "", "Zed", bookings); len(got) != 0 {
		t.Errorf("got %d bookings, want 0", len(got))
	}
	if got := BookingsFor(booking.KindDriver, "", "", bookings); len(got) != 0 {
		t.Errorf("empty name matched %d bookings", len(got))
	}
}
