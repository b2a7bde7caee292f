// Package scheduler answers when drivers and vehicles are idle: free windows
// inside operating hours and gaps between consecutive jobs.
package scheduler

import (
	"sort"
	"strings"
	"time"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/dateutil"
)

// Scheduler knows the dispatch operating hours.
type Scheduler struct {
	workdays map[string]bool
	dayStart string // "HH:MM"
	dayEnd   string // "HH:MM"
}

// New creates a Scheduler for the given workdays and operating hours.
func New(workdays []string, dayStart, dayEnd string) *Scheduler {
	wd := make(map[string]bool)
	for _, d := range workdays {
		wd[strings.ToLower(d)] = true
	}
	return &Scheduler{
		workdays: wd,
		dayStart: dayStart,
		dayEnd:   dayEnd,
	}
}

// Window is a free interval of a resource.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Slot is a start time on a date from which work can be dispatched.
type Slot struct {
	Date  time.Time
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// DayStart returns the configured opening time.
func (s *Scheduler) DayStart() string {
	return s.dayStart
}

// DayEnd returns the configured closing time.
func (s *Scheduler) DayEnd() string {
	return s.dayEnd
}

// IsWorkday returns true if t falls on a configured workday.
func (s *Scheduler) IsWorkday(t time.Time) bool {
	return s.workdays[strings.ToLower(t.Weekday().String())]
}

// IsWithinWorkHours returns true if t is inside operating hours on a workday.
func (s *Scheduler) IsWithinWorkHours(t time.Time) bool {
	if !s.IsWorkday(t) {
		return false
	}
	clock := t.Format(dateutil.ClockLayout)
	return clock >= s.dayStart && clock < s.dayEnd
}

// NextAvailableStart returns the earliest dispatchable slot from now:
// opening time when before hours, now rounded up to the quarter hour during
// hours, otherwise opening time of the next workday.
func (s *Scheduler) NextAvailableStart(now time.Time) Slot {
	now = dateutil.WallClock(now)
	if s.IsWorkday(now) {
		clock := now.Format(dateutil.ClockLayout)
		switch {
		case clock < s.dayStart:
			return Slot{Date: dateutil.Today(now), Start: s.dayStart, End: s.dayEnd}
		case clock < s.dayEnd:
			start := roundUpTo15Min(now)
			if dateutil.Today(start).Equal(dateutil.Today(now)) && start.Format(dateutil.ClockLayout) < s.dayEnd {
				return Slot{Date: dateutil.Today(now), Start: start.Format(dateutil.ClockLayout), End: s.dayEnd}
			}
		}
	}
	return s.nextWorkday(now)
}

func (s *Scheduler) nextWorkday(from time.Time) Slot {
	next := dateutil.Today(from).AddDate(0, 0, 1)
	for range 7 {
		if s.IsWorkday(next) {
			return Slot{Date: next, Start: s.dayStart, End: s.dayEnd}
		}
		next = next.AddDate(0, 0, 1)
	}
	// No workdays configured.
	return Slot{Date: dateutil.Today(from).AddDate(0, 0, 1), Start: s.dayStart, End: s.dayEnd}
}

// FreeWindows returns the parts of the operating day on date that none of
// the bookings occupy. Cancelled bookings and unparseable ranges are
// ignored. A non-workday has no free windows.
func (s *Scheduler) FreeWindows(date time.Time, bookings []*booking.Booking) []Window {
	if !s.IsWorkday(date) {
		return nil
	}

	day := dateutil.Today(date).Format(dateutil.DateLayout)
	open, ok1 := dateutil.Combine(day, s.dayStart)
	closing, ok2 := dateutil.Combine(day, s.dayEnd)
	if !ok1 || !ok2 || !closing.After(open) {
		return nil
	}

	busy := busyIntervals(bookings)

	var free []Window
	cursor := open
	for _, b := range busy {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(closing) {
			break
		}
		if b.Start.After(cursor) {
			free = append(free, Window{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(closing) {
		free = append(free, Window{Start: cursor, End: closing})
	}
	return free
}

// NextFree returns the first free window of at least d starting from now,
// searching up to days workdays ahead.
func (s *Scheduler) NextFree(now time.Time, bookings []*booking.Booking, d time.Duration, days int) (Window, bool) {
	slot := s.NextAvailableStart(now)
	from, ok := dateutil.Combine(slot.Date.Format(dateutil.DateLayout), slot.Start)
	if !ok {
		return Window{}, false
	}

	date := slot.Date
	for i := 0; i <= days; i++ {
		for _, w := range s.FreeWindows(date, bookings) {
			if w.Start.Before(from) {
				w.Start = from
			}
			if w.Duration() >= d {
				return w, true
			}
		}
		date = date.AddDate(0, 0, 1)
	}
	return Window{}, false
}

// AvailableMinutes returns the minutes between a slot's start and end.
func AvailableMinutes(slot Slot) int {
	start := booking.TimeToMinutes(slot.Start)
	end := booking.TimeToMinutes(slot.End)
	if start >= end {
		return 0
	}
	return end - start
}

func busyIntervals(bookings []*booking.Booking) []Window {
	var busy []Window
	for _, b := range bookings {
		if b == nil || b.IsCancelled() {
			continue
		}
		for _, r := range booking.Ranges(b) {
			start, end, ok := r.Instants()
			if !ok || !end.After(start) {
				continue
			}
			busy = append(busy, Window{Start: start, End: end})
		}
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})
	return busy
}

// roundUpTo15Min rounds a time up to the next 15-minute boundary.
func roundUpTo15Min(t time.Time) time.Time {
	remainder := t.Minute() % 15
	if remainder == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	return t.Add(time.Duration(15-remainder) * time.Minute).Truncate(time.Minute)
}
