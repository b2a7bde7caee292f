package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-10")
	if err != nil || !got.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDate = %v, %v", got, err)
	}

	got, err = ParseDate("")
	if err != nil || !got.Equal(Today(time.Now())) {
		t.Fatalf("ParseDate(\"\") = %v, %v, want today", got, err)
	}

	for _, in := range []string{"10-03-2025", "2025/03/10", "2025-13-01", "2025-02-30", "tomorrow"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDate(%q) err = %v, want %v", in, err, ErrInvalidDateFormat)
		}
	}
}

func TestNewDateRange(t *testing.T) {
	tests := []struct {
		start, end string
		wantDays   int
		wantErr    error
	}{
		{"2025-03-10", "2025-03-16", 7, nil},
		{"2025-03-10", "", 1, nil},
		{"2025-03-10", "2025-03-10", 1, nil},
		{"2025-02-27", "2025-03-02", 4, nil},
		{"2025-03-10", "2025-03-09", 0, ErrEndDateBeforeStart},
		{"bad", "2025-03-09", 0, ErrInvalidDateFormat},
		{"2025-03-10", "bad", 0, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		r, err := NewDateRange(tt.start, tt.end)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("NewDateRange(%q, %q) err = %v, want %v", tt.start, tt.end, err, tt.wantErr)
			continue
		}
		if err == nil && r.Days() != tt.wantDays {
			t.Errorf("NewDateRange(%q, %q) days = %d, want %d", tt.start, tt.end, r.Days(), tt.wantDays)
		}
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday, late in the evening in a zone east of UTC.
	now := time.Date(2025, 3, 12, 23, 30, 0, 0, time.FixedZone("UTC+4", 4*60*60))
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		in      string
		want    time.Time
		wantErr error
	}{
		{"", day(12), nil},
		{"today", day(12), nil},
		{" Today ", day(12), nil},
		{"tomorrow", day(13), nil},
		{"next-week", day(19), nil},
		{"thursday", day(13), nil},
		{"FRIDAY", day(14), nil},
		{"monday", day(17), nil},
		{"wednesday", day(19), nil},
		{"next-wednesday", day(19), nil},
		{"next-sunday", day(16), nil},
		{"2025-03-12", day(12), nil},
		{"2025-04-01", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), nil},
		{"2025-03-11", time.Time{}, ErrDateInPast},
		{"next-month", time.Time{}, ErrInvalidDateFormat},
		{"someday", time.Time{}, ErrInvalidDateFormat},
		{"12/03/2025", time.Time{}, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		got, err := ParseRelativeDate(tt.in, now)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseRelativeDate(%q) err = %v, want %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && !got.Equal(tt.want) {
			t.Errorf("ParseRelativeDate(%q) = %v, want %v", tt.in, got.Format(DateLayout), tt.want.Format(DateLayout))
		}
	}
}

func TestNextWeekdayNeverToday(t *testing.T) {
	start := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) // Sunday
	for i := 0; i < 7; i++ {
		today := start.AddDate(0, 0, i)
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			got := nextWeekday(today, wd)
			gap := int(got.Sub(today).Hours() / 24)
			if got.Weekday() != wd || gap < 1 || gap > 7 {
				t.Fatalf("nextWeekday(%s, %s) = %s (+%d)", today.Weekday(), wd, got.Weekday(), gap)
			}
		}
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		clock  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "morning pickup",
			date:   "2025-03-30",
			clock:  "09:15",
			want:   time.Date(2025, 3, 30, 9, 15, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "midnight",
			date:   "2025-03-30",
			clock:  "00:00",
			want:   time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "late evening",
			date:   "2025-12-31",
			clock:  "23:59",
			want:   time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "bad date", date: "30-03-2025", clock: "09:00"},
		{name: "empty date", date: "", clock: "09:00"},
		{name: "bad clock", date: "2025-03-30", clock: "9am"},
		{name: "short clock", date: "2025-03-30", clock: "9:00"},
		{name: "hour out of range", date: "2025-03-30", clock: "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Combine(tt.date, tt.clock)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	input := time.Date(2025, 6, 1, 23, 30, 0, 0, loc)
	got := Today(input)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWallClock(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	input := time.Date(2025, 6, 1, 10, 45, 0, 0, loc)
	got := WallClock(input)
	want, _ := Combine("2025-06-01", "10:45")
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWindow(t *testing.T) {
	now := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	w := Window(now, 7)
	if !w.Start.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", w.Start)
	}
	if !w.End.Equal(time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", w.End)
	}
	if w.Days() != 8 {
		t.Errorf("days = %d, want 8", w.Days())
	}
	if !w.Contains(time.Date(2025, 1, 17, 22, 0, 0, 0, time.UTC)) {
		t.Error("window should contain its last day")
	}
	if w.Contains(time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)) {
		t.Error("window should not contain the day after")
	}

	if got := Window(now, -3); !got.Start.Equal(got.End) {
		t.Errorf("negative days should collapse to one day, got %v..%v", got.Start, got.End)
	}
}
