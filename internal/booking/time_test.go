package booking

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "9am", input: "09:00", want: 540},
		{name: "with minutes", input: "09:30", want: 570},
		{name: "11:59pm", input: "23:59", want: 1439},
		{name: "invalid short", input: "9:00", want: 0},
		{name: "hour out of range", input: "25:00", want: 0},
		{name: "minute out of range", input: "10:75", want: 0},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeToMinutes(tt.input)
			if got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{name: "midnight", input: 0, want: "00:00"},
		{name: "noon", input: 720, want: "12:00"},
		{name: "with minutes", input: 570, want: "09:30"},
		{name: "negative clamps to zero", input: -10, want: "00:00"},
		{name: "over 24h clamps", input: 1500, want: "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesToTime(tt.input)
			if got != tt.want {
				t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:05", "23:59"}
	invalid := []string{"", "9:00", "24:00", "12:60", "ab:cd", "12-30", "12:3"}

	for _, s := range valid {
		if !ValidClock(s) {
			t.Errorf("ValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidClock(s) {
			t.Errorf("ValidClock(%q) = true, want false", s)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	tests := []struct {
		name     string
		clock    string
		minutes  int
		want     string
		wantDays int
	}{
		{name: "same day", clock: "09:00", minutes: 120, want: "11:00"},
		{name: "ends exactly at midnight", clock: "22:00", minutes: 120, want: "00:00", wantDays: 1},
		{name: "crosses midnight", clock: "23:00", minutes: 120, want: "01:00", wantDays: 1},
		{name: "two days", clock: "12:00", minutes: 48 * 60, want: "12:00", wantDays: 2},
		{name: "negative goes back a day", clock: "01:00", minutes: -120, want: "23:00", wantDays: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, days := AddMinutes(tt.clock, tt.minutes)
			if got != tt.want || days != tt.wantDays {
				t.Errorf("AddMinutes(%q, %d) = %q, %d, want %q, %d",
					tt.clock, tt.minutes, got, days, tt.want, tt.wantDays)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{120, "2h"},
		{150, "2h30m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.input); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
