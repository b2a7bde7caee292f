package input

import (
	"errors"
	"testing"
	"time"
)

func TestParseJump(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // Monday
	today := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"+3", time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)},
		{"-10", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"+0", from},
		{"2024-12-25", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"today", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)},
		{"friday", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"  Next-Week ", time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseJump(tt.input, from, today)
			if err != nil {
				t.Fatalf("ParseJump(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseJump(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseJump_Errors(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := ParseJump("   ", from, from); !errors.Is(err, ErrEmptyJump) {
		t.Errorf("blank input error = %v, want ErrEmptyJump", err)
	}
	for _, in := range []string{"+x", "-", "someday", "2025-13-40"} {
		if _, err := ParseJump(in, from, from); err == nil {
			t.Errorf("ParseJump(%q) expected error", in)
		}
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{" 30 ", 30, false},
		{"1", 1, false},
		{"366", 366, false},
		{"0", 0, true},
		{"367", 0, true},
		{"week", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDays(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDays(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input, name, arg string
	}{
		{"/jump tomorrow", "/jump", "tomorrow"},
		{"/DAYS  14", "/days", "14"},
		{"/copy", "/copy", ""},
		{"2025-03-10", "/jump", "2025-03-10"},
		{"  +2 ", "/jump", "+2"},
	}

	for _, tt := range tests {
		name, arg := ParseCommand(tt.input)
		if name != tt.name || arg != tt.arg {
			t.Errorf("ParseCommand(%q) = %q, %q, want %q, %q", tt.input, name, arg, tt.name, tt.arg)
		}
	}
}
