package scheduler

import (
	"sort"
	"time"

	"github.com/javiermolinar/fleetdesk/internal/booking"
)

// DefaultMinGap is the shortest idle stretch worth reporting.
const DefaultMinGap = 2 * time.Hour

// Gap is idle time between two consecutive confirmed bookings of one
// resource.
type Gap struct {
	After  *booking.Booking
	Before *booking.Booking
	Start  time.Time
	End    time.Time
}

// Duration returns the gap length.
func (g Gap) Duration() time.Duration {
	return g.End.Sub(g.Start)
}

// Gaps orders the confirmed bookings by start and returns the idle windows
// between consecutive ones of at least minGap. Each booking is assumed to
// end one service duration after it starts. Bookings without a parseable
// start are skipped.
func Gaps(bookings []*booking.Booking, minGap time.Duration) []Gap {
	type started struct {
		b     *booking.Booking
		start time.Time
	}

	var jobs []started
	for _, b := range bookings {
		if b == nil || !b.IsConfirmed() {
			continue
		}
		ranges := booking.Ranges(b)
		if len(ranges) == 0 {
			continue
		}
		start, ok := ranges[0].Start()
		if !ok {
			continue
		}
		jobs = append(jobs, started{b: b, start: start})
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].start.Before(jobs[j].start)
	})

	var gaps []Gap
	for i := 1; i < len(jobs); i++ {
		prevEnd := jobs[i-1].start.Add(booking.ServiceDuration)
		next := jobs[i].start
		if next.Sub(prevEnd) < minGap {
			continue
		}
		gaps = append(gaps, Gap{
			After:  jobs[i-1].b,
			Before: jobs[i].b,
			Start:  prevEnd,
			End:    next,
		})
	}
	return gaps
}
