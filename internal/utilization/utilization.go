// Package utilization computes booked hours, utilization and availability of
// drivers, vehicles and partners over a look-ahead window.
package utilization

import (
	"time"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// Entry is the utilization of one resource.
type Entry struct {
	Kind         booking.Kind
	ID           string
	Name         string
	Status       string // management status
	Bookings     []*booking.Booking
	TotalHours   float64
	Utilization  float64 // percent
	Availability State
	Label        Label
}

// Summary aggregates all entries of a report.
type Summary struct {
	TotalResources int
	Available      int
	Busy           int
	Unavailable    int
	AvgUtilization float64
}

// Report is the utilization of every resource over [From, To].
type Report struct {
	From     time.Time
	To       time.Time
	Drivers  []Entry
	Vehicles []Entry
	Partners []Entry
	Summary  Summary
}

// All returns every entry, drivers first.
func (r *Report) All() []Entry {
	out := make([]Entry, 0, len(r.Drivers)+len(r.Vehicles)+len(r.Partners))
	out = append(out, r.Drivers...)
	out = append(out, r.Vehicles...)
	out = append(out, r.Partners...)
	return out
}

// Calculate builds the utilization report for a snapshot. It never modifies
// the snapshot.
func Calculate(s *booking.Snapshot, opts Options) *Report {
	now := opts.now()
	window := dateutil.Window(now, opts.DateRange)
	r := &Report{From: window.Start, To: window.End}
	if s == nil {
		return r
	}

	counted := Filter(s.Bookings, window, opts)

	entry := func(kind booking.Kind, id, name, status string, capacity float64) Entry {
		mine := BookingsFor(kind, id, name, counted)
		hours := TotalHours(mine)
		pct := Percent(hours, opts.DateRange, capacity)
		return Entry{
			Kind:         kind,
			ID:           id,
			Name:         name,
			Status:       status,
			Bookings:     mine,
			TotalHours:   hours,
			Utilization:  pct,
			Availability: Availability(kind, status, BookingsFor(kind, id, name, s.Bookings), now),
			Label:        LabelFor(pct),
		}
	}

	for _, d := range s.Drivers {
		r.Drivers = append(r.Drivers, entry(booking.KindDriver, d.ID, d.Name, d.Status, opts.Capacity.DriverHours))
	}
	for _, v := range s.Vehicles {
		r.Vehicles = append(r.Vehicles, entry(booking.KindVehicle, v.ID, v.Name, v.Status, opts.Capacity.VehicleHours))
	}
	for _, p := range s.Partners {
		r.Partners = append(r.Partners, entry(booking.KindPartner, p.ID, p.Name, p.Status, opts.Capacity.PartnerHours))
	}

	r.Summary = summarize(r.All())
	return r
}

// Filter keeps the bookings whose primary date lies in the window and whose
// status is enabled by opts. Bookings with an unparseable date are dropped.
func Filter(bookings []*booking.Booking, window dateutil.DateRange, opts Options) []*booking.Booking {
	var out []*booking.Booking
	for _, b := range bookings {
		if b == nil || !statusEnabled(b.Status, opts) {
			continue
		}
		d, err := time.Parse(dateutil.DateLayout, b.PrimaryDate())
		if err != nil {
			continue
		}
		if d.Before(window.Start) || d.After(window.End) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func statusEnabled(s booking.Status, opts Options) bool {
	switch s {
	case booking.StatusCompleted:
		return opts.IncludeCompleted
	case booking.StatusConfirmed:
		return opts.IncludeConfirmed
	case booking.StatusPending:
		return opts.IncludePending
	default:
		return false
	}
}

// BookingHours returns the hours a booking occupies its resource. Tours count
// their full span; any other booking counts one service duration plus one
// more for a return leg.
func BookingHours(b *booking.Booking) float64 {
	if b == nil {
		return 0
	}
	if b.IsTour() {
		ranges := booking.Ranges(b)
		if len(ranges) == 0 {
			return 0
		}
		return ranges[0].Duration().Hours()
	}
	hours := booking.ServiceDuration.Hours()
	if b.HasReturn {
		hours += booking.ServiceDuration.Hours()
	}
	return hours
}

// TotalHours sums BookingHours over the bookings.
func TotalHours(bookings []*booking.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += BookingHours(b)
	}
	return total
}

// Percent returns hours as a percentage of days × capacity hours, or 0 when
// there is no capacity.
func Percent(hours float64, days int, capacity float64) float64 {
	denom := float64(days) * capacity
	if denom <= 0 || hours <= 0 {
		return 0
	}
	return hours / denom * 100
}

func summarize(entries []Entry) Summary {
	s := Summary{TotalResources: len(entries)}
	if len(entries) == 0 {
		return s
	}
	var sum float64
	for _, e := range entries {
		sum += e.Utilization
		switch e.Availability {
		case Available:
			s.Available++
		case Busy:
			s.Busy++
		default:
			s.Unavailable++
		}
	}
	s.AvgUtilization = sum / float64(len(entries))
	return s
}
