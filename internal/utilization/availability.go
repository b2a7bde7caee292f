package utilization

import (
	"time"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// State is the availability of a resource at a given instant.
type State string

const (
	Available   State = "available"
	Busy        State = "busy"
	Unavailable State = "unavailable"
)

// Availability is the single source of truth for whether a resource can take
// work at now. The management status decides first: a resource switched off
// (offline, inactive, in maintenance) is unavailable and a driver marked busy
// is busy. Otherwise the resource is busy while one of its confirmed
// bookings covers now.
//
// bookings must already be restricted to the resource.
func Availability(kind booking.Kind, status string, bookings []*booking.Booking, now time.Time) State {
	switch kind {
	case booking.KindDriver:
		switch status {
		case booking.DriverOffline:
			return Unavailable
		case booking.DriverBusy:
			return Busy
		}
	case booking.KindVehicle:
		if status == booking.VehicleInactive || status == booking.VehicleMaintenance {
			return Unavailable
		}
	case booking.KindPartner:
		if status == booking.PartnerInactive {
			return Unavailable
		}
	}

	at := dateutil.WallClock(now)
	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		for _, r := range booking.Ranges(b) {
			if r.Contains(at) {
				return Busy
			}
		}
	}
	return Available
}

// BookingsFor returns the bookings assigned to a resource. Partners only
// serve outsourced bookings.
func BookingsFor(kind booking.Kind, id, name string, bookings []*booking.Booking) []*booking.Booking {
	var out []*booking.Booking
	for _, b := range bookings {
		if b != nil && assigned(kind, b, id, name) {
			out = append(out, b)
		}
	}
	return out
}

func assigned(kind booking.Kind, b *booking.Booking, id, name string) bool {
	switch kind {
	case booking.KindDriver:
		return b.AssignedDriver(id, name)
	case booking.KindVehicle:
		return b.AssignedVehicle(id, name)
	case booking.KindPartner:
		return b.IsOutsourced() && b.AssignedPartner(id, name)
	default:
		return false
	}
}

// Status is the current availability of one resource.
type Status struct {
	Kind  booking.Kind
	ID    string
	Name  string
	State State
	// Current is the confirmed booking in progress, if any.
	Current *booking.Booking
	// Next is the earliest confirmed booking starting after now, if any.
	Next *booking.Booking
}

// FleetStatus computes the status of every resource in the snapshot at now.
// It backs the fleet and driver status views.
func FleetStatus(s *booking.Snapshot, now time.Time) []Status {
	if s == nil {
		return nil
	}

	var out []Status
	add := func(kind booking.Kind, id, name, mgmt string) {
		mine := BookingsFor(kind, id, name, s.Bookings)
		current, next := currentAndNext(mine, now)
		out = append(out, Status{
			Kind:    kind,
			ID:      id,
			Name:    name,
			State:   Availability(kind, mgmt, mine, now),
			Current: current,
			Next:    next,
		})
	}

	for _, d := range s.Drivers {
		add(booking.KindDriver, d.ID, d.Name, d.Status)
	}
	for _, v := range s.Vehicles {
		add(booking.KindVehicle, v.ID, v.Name, v.Status)
	}
	for _, p := range s.Partners {
		add(booking.KindPartner, p.ID, p.Name, p.Status)
	}
	return out
}

func currentAndNext(bookings []*booking.Booking, now time.Time) (current, next *booking.Booking) {
	at := dateutil.WallClock(now)
	var nextStart time.Time
	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		for _, r := range booking.Ranges(b) {
			if current == nil && r.Contains(at) {
				current = b
			}
			start, ok := r.Start()
			if !ok || !start.After(at) {
				continue
			}
			if next == nil || start.Before(nextStart) {
				next, nextStart = b, start
			}
		}
	}
	return current, next
}
