// Package dateutil provides date parsing and validation utilities.
//
// Booking dates and times are wall-clock values. They are represented as
// time.Time in UTC so that comparisons and durations are never shifted by
// daylight saving transitions.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Layouts used across fleetdesk.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrDateInPast         = errors.New("cannot schedule in the past")
)

// weekdays maps lower-case weekday names to their values.
var weekdays = func() map[string]time.Weekday {
	m := make(map[string]time.Weekday, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		m[strings.ToLower(d.String())] = d
	}
	return m
}()

// dayOffsets are the keywords ParseRelativeDate resolves to a fixed offset.
var dayOffsets = map[string]int{"": 0, "today": 0, "tomorrow": 1, "next-week": 7}

// DateRange represents a validated, inclusive date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the day of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := Today(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days covered, counting both ends.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if endDate == "" {
		end = start
	} else {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Window returns the range from the day of now through days days later.
func Window(now time.Time, days int) DateRange {
	start := Today(now)
	if days < 0 {
		days = 0
	}
	return DateRange{Start: start, End: start.AddDate(0, 0, days)}
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return Today(time.Now()), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// Combine joins a "YYYY-MM-DD" date and an "HH:MM" clock into one instant.
// ok is false if either part is malformed.
func Combine(date, clock string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	c, err := time.Parse(ClockLayout, clock)
	if err != nil || len(clock) != 5 {
		return time.Time{}, false
	}
	return d.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute), true
}

// Today returns the calendar day of t as a UTC midnight.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WallClock returns the wall-clock reading of t as a UTC instant, comparable
// with values produced by Combine.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// ParseRelativeDate resolves s against the calendar day of relativeTo.
//
// Accepted, case-insensitive: "" or "today", "tomorrow", "next-week" (seven
// days on), a weekday name with an optional "next-" prefix (its next
// occurrence, never today), or a YYYY-MM-DD date. Dates before today return
// ErrDateInPast and anything else ErrInvalidDateFormat.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := Today(relativeTo)
	in := strings.ToLower(strings.TrimSpace(s))

	if off, ok := dayOffsets[in]; ok {
		return today.AddDate(0, 0, off), nil
	}
	if wd, ok := weekdays[strings.TrimPrefix(in, "next-")]; ok {
		return nextWeekday(today, wd), nil
	}

	d, err := time.Parse(DateLayout, in)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if d.Before(today) {
		return time.Time{}, ErrDateInPast
	}
	return d, nil
}

// nextWeekday returns the first day strictly after today that falls on target.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	return today.AddDate(0, 0, (int(target)-int(today.Weekday())+6)%7+1)
}
