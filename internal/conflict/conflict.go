// Package conflict detects double-booked drivers and vehicles.
package conflict

import (
	"sort"

	"github.com/javiermolinar/fleetdesk/internal/booking"
)

// Hit is one overlap between a candidate range and a range of an existing
// booking. ConflictDate and ConflictTime anchor on the existing range start.
type Hit struct {
	Booking        *booking.Booking
	ConflictDate   string
	ConflictTime   string
	OverlapMinutes int
}

// Result holds the hits of a candidate check, split by resource.
type Result struct {
	Driver  []Hit
	Vehicle []Hit
}

// HasConflicts returns true if any hit was recorded.
func (r Result) HasConflicts() bool {
	return len(r.Driver) > 0 || len(r.Vehicle) > 0
}

// Count returns the total number of hits.
func (r Result) Count() int {
	return len(r.Driver) + len(r.Vehicle)
}

// Check tests a candidate booking against the existing collection.
//
// Outsourced candidates occupy no driver or vehicle and never conflict. The
// candidate's own stored record, cancelled bookings and outsourced bookings
// are skipped. One hit is recorded per overlapping range pair, so a booking
// that collides with both legs of the candidate appears twice.
func Check(candidate *booking.Booking, existing []*booking.Booking) Result {
	var res Result
	if candidate == nil || candidate.IsOutsourced() {
		return res
	}

	candRanges := booking.Ranges(candidate)
	if len(candRanges) == 0 {
		return res
	}

	for _, other := range existing {
		if other == nil || (candidate.ID != "" && other.ID == candidate.ID) {
			continue
		}
		if !occupiesFleet(other) {
			continue
		}

		sameDriver := booking.SameResource(candidate.DriverID, candidate.Driver, other.DriverID, other.Driver)
		sameVehicle := sameVehicle(candidate, other)
		if !sameDriver && !sameVehicle {
			continue
		}

		for _, er := range booking.Ranges(other) {
			for _, cr := range candRanges {
				if !booking.Overlaps(er, cr) {
					continue
				}
				hit := Hit{
					Booking:        other,
					ConflictDate:   er.StartDate,
					ConflictTime:   er.StartTime,
					OverlapMinutes: booking.OverlapMinutes(er, cr),
				}
				if sameDriver {
					res.Driver = append(res.Driver, hit)
				}
				if sameVehicle {
					res.Vehicle = append(res.Vehicle, hit)
				}
			}
		}
	}

	return res
}

// Conflict is a double-booking found inside a collection.
type Conflict struct {
	Resource       string
	Field          booking.Kind
	First          *booking.Booking
	Second         *booking.Booking
	OverlapMinutes int
}

// Scan reports every pair of internal, non-cancelled bookings that share a
// driver or a vehicle and overlap in time. OverlapMinutes sums all
// overlapping range pairs of the two bookings. Results are ordered by the
// first booking's primary date, then resource.
func Scan(bookings []*booking.Booking) []Conflict {
	type entry struct {
		b      *booking.Booking
		ranges []booking.TimeRange
	}

	var live []entry
	for _, b := range bookings {
		if b == nil || !occupiesFleet(b) {
			continue
		}
		if r := booking.Ranges(b); len(r) > 0 {
			live = append(live, entry{b: b, ranges: r})
		}
	}

	var out []Conflict
	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			a, b := live[i], live[j]

			minutes, overlapping := 0, false
			for _, ra := range a.ranges {
				for _, rb := range b.ranges {
					if booking.Overlaps(ra, rb) {
						overlapping = true
						minutes += booking.OverlapMinutes(ra, rb)
					}
				}
			}
			if !overlapping {
				continue
			}

			if booking.SameResource(a.b.DriverID, a.b.Driver, b.b.DriverID, b.b.Driver) {
				out = append(out, Conflict{
					Resource:       a.b.Driver,
					Field:          booking.KindDriver,
					First:          a.b,
					Second:         b.b,
					OverlapMinutes: minutes,
				})
			}
			if sameVehicle(a.b, b.b) {
				out = append(out, Conflict{
					Resource:       a.b.Vehicle,
					Field:          booking.KindVehicle,
					First:          a.b,
					Second:         b.b,
					OverlapMinutes: minutes,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].First.PrimaryDate(), out[j].First.PrimaryDate()
		if di != dj {
			return di < dj
		}
		return out[i].Resource < out[j].Resource
	})
	return out
}

// ForResource filters conflicts down to one resource.
func ForResource(conflicts []Conflict, kind booking.Kind, name string) []Conflict {
	var out []Conflict
	for _, c := range conflicts {
		if c.Field == kind && c.Resource == name {
			out = append(out, c)
		}
	}
	return out
}

// occupiesFleet reports whether a booking holds an internal driver or
// vehicle.
func occupiesFleet(b *booking.Booking) bool {
	return !b.IsCancelled() && !b.IsOutsourced()
}

func sameVehicle(a, b *booking.Booking) bool {
	if booking.SameResource(a.VehicleID, a.Vehicle, b.VehicleID, b.Vehicle) {
		return true
	}
	// The vehicle field may carry an id on one side only.
	return (a.VehicleID != "" && a.VehicleID == b.Vehicle) ||
		(b.VehicleID != "" && b.VehicleID == a.Vehicle)
}
