package theme

import (
	"slices"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mocha", "mocha"},
		{"macchiato", "macchiato"},
		{"frappe", "frappe"},
		{"latte", "latte"},
		{"light", "light"},
		{" Latte ", "latte"},
		{"", DefaultName},
		{"nonexistent", DefaultName},
		{"../mocha", DefaultName},
	}

	for _, tt := range tests {
		th, err := Load(tt.in)
		if err != nil {
			t.Fatalf("Load(%q) unexpected error: %v", tt.in, err)
		}
		if th.Name != tt.want {
			t.Errorf("Load(%q).Name = %q, want %q", tt.in, th.Name, tt.want)
		}
	}
}

func TestEmbeddedThemesAreComplete(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		colors := map[string]string{
			"bg": th.Bg, "bg_highlight": th.BgHighlight, "bg_selection": th.BgSelection,
			"fg": th.Fg, "fg_muted": th.FgMuted, "accent": th.Accent, "warning": th.Warning,
			"critical": th.Critical, "high": th.High, "good": th.Good, "low": th.Low, "minimal": th.Minimal,
		}
		for key, hex := range colors {
			if _, err := colorful.Hex(hex); err != nil {
				t.Errorf("%s.%s = %q is not a hex color", name, key, hex)
			}
		}
	}
}

func TestSeverity(t *testing.T) {
	th := &Theme{
		FgMuted:  "#999999",
		Critical: "#ff0000",
		High:     "#ff8800",
		Good:     "#00ff00",
		Low:      "#ffff00",
		Minimal:  "#888888",
	}

	tests := map[string]string{
		"critical": "#ff0000",
		"high":     "#ff8800",
		"good":     "#00ff00",
		"low":      "#ffff00",
		"minimal":  "#888888",
		"unknown":  "#999999",
	}
	for sev, want := range tests {
		if got := th.Severity(sev); got != want {
			t.Errorf("Severity(%q) = %q, want %q", sev, got, want)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	th := &Theme{Accent: "#0000ff", FgMuted: "#999999"}
	th.applyDefaults()

	if th.Warning != "#0000ff" {
		t.Errorf("Warning = %q, want accent", th.Warning)
	}
	if th.Critical != "#0000ff" || th.High != "#0000ff" {
		t.Errorf("Critical/High = %q/%q, want warning fallback", th.Critical, th.High)
	}
	if th.Good != "#0000ff" {
		t.Errorf("Good = %q, want accent", th.Good)
	}
	if th.Low != "#999999" || th.Minimal != "#999999" {
		t.Errorf("Low/Minimal = %q/%q, want muted", th.Low, th.Minimal)
	}

	th = &Theme{Accent: "#0000ff", Warning: "#ff0000", Critical: "#aa0000"}
	th.applyDefaults()
	if th.Critical != "#aa0000" || th.High != "#ff0000" {
		t.Errorf("explicit colors overwritten: %+v", th)
	}
}

func TestAvailable(t *testing.T) {
	want := []string{"frappe", "latte", "light", "macchiato", "mocha"}
	if got := Available(); !slices.Equal(got, want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}

	for name, want := range map[string]bool{"mocha": true, "Mocha": true, "unknown": false, "": false} {
		if got := IsAvailable(name); got != want {
			t.Errorf("IsAvailable(%q) = %t, want %t", name, got, want)
		}
	}
}
