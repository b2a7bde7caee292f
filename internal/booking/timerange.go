package booking

import (
	"time"

	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// Scheduling defaults applied when a booking leaves a time blank.
const (
	DefaultPickupTime  = "09:00"
	DefaultTourEndTime = "17:00"

	// ServiceDuration is the assumed length of one transfer leg. It is a
	// product approximation, not derived from the journey.
	ServiceDuration = 2 * time.Hour
)

// TimeRange is one occupied interval derived from a booking.
type TimeRange struct {
	StartDate string // "YYYY-MM-DD"
	EndDate   string // "YYYY-MM-DD"
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// Ranges returns the intervals a booking occupies: one for a tour, one for a
// pickup leg plus one for an optional return leg. Bookings without dates
// yield none.
func Ranges(b *Booking) []TimeRange {
	if b == nil {
		return nil
	}

	if b.IsTour() {
		if b.TourStartDate == "" || b.TourEndDate == "" {
			return nil
		}
		return []TimeRange{{
			StartDate: b.TourStartDate,
			EndDate:   b.TourEndDate,
			StartTime: orDefault(b.TourPickupTime, DefaultPickupTime),
			EndTime:   orDefault(b.TourReturnPickupTime, DefaultTourEndTime),
		}}
	}

	var ranges []TimeRange
	if b.Date != "" {
		ranges = append(ranges, legRange(b.Date, b.Time))
	}
	if b.HasReturn && b.ReturnDate != "" {
		ranges = append(ranges, legRange(b.ReturnDate, b.ReturnTime))
	}
	return ranges
}

// legRange builds the range for a single leg. The end rolls over to the next
// calendar day when the leg crosses midnight.
func legRange(date, clock string) TimeRange {
	start := orDefault(clock, DefaultPickupTime)
	end, days := AddMinutes(start, int(ServiceDuration/time.Minute))
	return TimeRange{
		StartDate: date,
		EndDate:   shiftDate(date, days),
		StartTime: start,
		EndTime:   end,
	}
}

func shiftDate(date string, days int) string {
	if days == 0 {
		return date
	}
	t, err := time.Parse(dateutil.DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(dateutil.DateLayout)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Instants returns the start and end instants of the range. ok is false when
// any component cannot be parsed.
//
// Dates and times are wall-clock values, so they are combined in UTC to keep
// durations free of DST shifts.
func (r TimeRange) Instants() (start, end time.Time, ok bool) {
	start, ok = dateutil.Combine(r.StartDate, r.StartTime)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok = dateutil.Combine(r.EndDate, r.EndTime)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Start returns the start instant of the range.
func (r TimeRange) Start() (time.Time, bool) {
	return dateutil.Combine(r.StartDate, r.StartTime)
}

// Duration returns the length of the range, zero when invalid or inverted.
func (r TimeRange) Duration() time.Duration {
	start, end, ok := r.Instants()
	if !ok || !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// Overlaps returns true if two ranges intersect.
// Two ranges overlap if: start1 < end2 AND start2 < end1
// Touching endpoints do not overlap, and invalid ranges never do.
func Overlaps(a, b TimeRange) bool {
	s1, e1, ok := a.Instants()
	if !ok {
		return false
	}
	s2, e2, ok := b.Instants()
	if !ok {
		return false
	}
	return s1.Before(e2) && s2.Before(e1)
}

// OverlapMinutes returns the number of minutes two ranges share.
// Returns 0 if there is no overlap.
func OverlapMinutes(a, b TimeRange) int {
	s1, e1, ok := a.Instants()
	if !ok {
		return 0
	}
	s2, e2, ok := b.Instants()
	if !ok {
		return 0
	}

	start := s1
	if s2.After(start) {
		start = s2
	}
	end := e1
	if e2.Before(end) {
		end = e2
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// Contains reports whether the instant falls inside the range [start, end).
func (r TimeRange) Contains(t time.Time) bool {
	start, end, ok := r.Instants()
	if !ok {
		return false
	}
	return !t.Before(start) && t.Before(end)
}
