// Package theme provides color themes for the dashboard.
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a dashboard theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Tab bar, alternate rows
	BgSelection string `toml:"bg_selection"` // Cursor row
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Secondary text
	Accent      string `toml:"accent"`       // Title, active tab, borders
	Warning     string `toml:"warning"`      // Status line, prompts

	// Utilization severities, from overbooked to nearly idle
	Critical string `toml:"critical"`
	High     string `toml:"high"`
	Good     string `toml:"good"`
	Low      string `toml:"low"`
	Minimal  string `toml:"minimal"`
}

// DefaultName is the theme used when none is configured or the configured
// one does not exist.
const DefaultName = "mocha"

// Load loads a theme by name from the embedded files, falling back to the
// default theme for unknown names.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile(path.Join("embedded", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.applyDefaults()
	return &t, nil
}

// Severity returns the hex color of a utilization severity
// ("critical", "high", "good", "low", "minimal"). Unknown severities get
// the muted foreground.
func (t *Theme) Severity(severity string) string {
	switch severity {
	case "critical":
		return t.Critical
	case "high":
		return t.High
	case "good":
		return t.Good
	case "low":
		return t.Low
	case "minimal":
		return t.Minimal
	default:
		return t.FgMuted
	}
}

func (t *Theme) applyDefaults() {
	t.Warning = coalesce(t.Warning, t.Accent)
	t.Critical = coalesce(t.Critical, t.Warning)
	t.High = coalesce(t.High, t.Warning)
	t.Good = coalesce(t.Good, t.Accent)
	t.Low = coalesce(t.Low, t.FgMuted)
	t.Minimal = coalesce(t.Minimal, t.FgMuted)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the names of the embedded themes, sorted.
func Available() []string {
	files, _ := fs.Glob(embeddedThemes, "embedded/*.toml")
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".toml"))
	}
	sort.Strings(names)
	return names
}

// IsAvailable reports whether a theme name is available, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
