// Package dispatch suggests drivers, vehicles and partners for a booking.
package dispatch

import (
	"sort"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/conflict"
	"github.com/javiermolinar/fleetdesk/internal/utilization"
)

// Candidate is a resource that can take the booking.
type Candidate struct {
	Kind        booking.Kind
	ID          string
	Name        string
	Utilization float64
	Label       utilization.Label
	State       utilization.State
}

// Suggestion lists the candidates per resource kind, least utilized first.
type Suggestion struct {
	Drivers  []Candidate
	Vehicles []Candidate
	Partners []Candidate
}

// Empty reports whether no resource can take the booking.
func (s Suggestion) Empty() bool {
	return len(s.Drivers) == 0 && len(s.Vehicles) == 0 && len(s.Partners) == 0
}

// Suggest ranks the resources that could serve candidate.
//
// Internal bookings get drivers and vehicles that are not switched off and
// would not be double-booked. Outsourced bookings get active partners. Ties
// on utilization are broken by name.
func Suggest(candidate *booking.Booking, s *booking.Snapshot, opts utilization.Options) Suggestion {
	var out Suggestion
	if candidate == nil || s == nil || len(booking.Ranges(candidate)) == 0 {
		return out
	}

	report := utilization.Calculate(s, opts)

	if candidate.IsOutsourced() {
		for _, e := range report.Partners {
			if e.Availability != utilization.Unavailable {
				out.Partners = append(out.Partners, toCandidate(e))
			}
		}
		rank(out.Partners)
		return out
	}

	for _, e := range report.Drivers {
		if e.Availability == utilization.Unavailable {
			continue
		}
		probe := *candidate
		probe.Driver, probe.DriverID = e.Name, e.ID
		probe.Vehicle, probe.VehicleID = "", ""
		if len(conflict.Check(&probe, s.Bookings).Driver) == 0 {
			out.Drivers = append(out.Drivers, toCandidate(e))
		}
	}

	for _, e := range report.Vehicles {
		if e.Availability == utilization.Unavailable {
			continue
		}
		probe := *candidate
		probe.Driver, probe.DriverID = "", ""
		probe.Vehicle, probe.VehicleID = e.Name, e.ID
		if len(conflict.Check(&probe, s.Bookings).Vehicle) == 0 {
			out.Vehicles = append(out.Vehicles, toCandidate(e))
		}
	}

	rank(out.Drivers)
	rank(out.Vehicles)
	return out
}

func toCandidate(e utilization.Entry) Candidate {
	return Candidate{
		Kind:        e.Kind,
		ID:          e.ID,
		Name:        e.Name,
		Utilization: e.Utilization,
		Label:       e.Label,
		State:       e.Availability,
	}
}

func rank(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Utilization != cs[j].Utilization {
			return cs[i].Utilization < cs[j].Utilization
		}
		return cs[i].Name < cs[j].Name
	})
}
