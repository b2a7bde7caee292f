package utilization

import "time"

// Capacity holds the assumed bookable hours per day of each resource kind.
type Capacity struct {
	DriverHours  float64
	VehicleHours float64
	PartnerHours float64
}

// DefaultCapacity returns the standard working day per resource kind.
func DefaultCapacity() Capacity {
	return Capacity{
		DriverHours:  8,
		VehicleHours: 12,
		PartnerHours: 10,
	}
}

// Options control which bookings a report counts.
type Options struct {
	// DateRange is the number of days to look ahead from Now.
	DateRange        int
	IncludeCompleted bool
	IncludeConfirmed bool
	IncludePending   bool
	MinGapHours      float64
	Capacity         Capacity
	// Now is the reference instant. Zero means time.Now().
	Now time.Time
}

// DefaultOptions returns a one-week look-ahead over confirmed and pending
// bookings.
func DefaultOptions() Options {
	return Options{
		DateRange:        7,
		IncludeConfirmed: true,
		IncludePending:   true,
		MinGapHours:      2,
		Capacity:         DefaultCapacity(),
	}
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}
