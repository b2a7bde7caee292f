package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Warning:     "#888888",
		Critical:    "#f38ba8",
		High:        "#fab387",
		Good:        "#a6e3a1",
		Low:         "#f9e2af",
		Minimal:     "#7f849c",
	}
}

func TestNewPalette_Severities(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	for _, sev := range severities {
		if palette.Severity[sev] != lipgloss.Color(base.Severity(sev)) {
			t.Errorf("Severity[%s] = %q, want %q", sev, palette.Severity[sev], base.Severity(sev))
		}
		if palette.SeverityBg[sev] != lipgloss.Color(barBg(base.Severity(sev), base.Bg, false)) {
			t.Errorf("SeverityBg[%s] = %q, want faded severity", sev, palette.SeverityBg[sev])
		}
		if _, ok := palette.TextOn[sev]; !ok {
			t.Errorf("TextOn[%s] missing", sev)
		}
	}
}

func TestNewPalette_DarkThemeBars(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	bg := luminance(string(palette.SeverityBg["good"]))
	if bg >= luminance(base.Good) {
		t.Fatalf("good bar background luminance = %f, want darker than Good", bg)
	}
	if luminance(string(palette.BgAlt)) <= luminance(base.Bg) {
		t.Fatalf("BgAlt should be lighter than Bg on a dark theme")
	}
}

func TestNewPalette_LightThemeBars(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Warning:     "#c2410c",
		Critical:    "#d20f39",
		High:        "#fe640b",
		Good:        "#40a02b",
		Low:         "#df8e1d",
		Minimal:     "#8c8fa1",
	}

	palette := NewPalette(base)
	if luminance(string(palette.SeverityBg["critical"])) <= luminance(base.Critical) {
		t.Fatalf("critical bar background should be lighter than Critical on a light theme")
	}
	if luminance(string(palette.BgAlt)) >= luminance(base.Bg) {
		t.Fatalf("BgAlt should be darker than Bg on a light theme")
	}
}

func TestNewPalette_NilLoadsDefault(t *testing.T) {
	palette := NewPalette(nil)
	if palette.Bg == "" || palette.Accent == "" {
		t.Fatalf("NewPalette(nil) left base colors empty: %+v", palette)
	}
}

func TestReadableOnPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := readableOn(bg, lightText, darkText); got != darkText {
		t.Fatalf("readableOn(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b  string
		ratio float64
		want  string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ffffff", 2, "#ffffff"},
		{"#ff0000", "#0000ff", -1, "#ff0000"},
		{"not-a-color", "#ffffff", 0.5, "not-a-color"},
		{"#123456", "bad", 0.5, "#123456"},
	}

	for _, tt := range tests {
		if got := blend(tt.a, tt.b, tt.ratio); got != tt.want {
			t.Errorf("blend(%q, %q, %v) = %q, want %q", tt.a, tt.b, tt.ratio, got, tt.want)
		}
	}
}

func TestLuminance(t *testing.T) {
	if got := luminance("#ffffff"); got < 0.99 {
		t.Errorf("luminance(white) = %f, want 1", got)
	}
	if got := luminance("#000000"); got != 0 {
		t.Errorf("luminance(black) = %f, want 0", got)
	}
	if got := luminance("oops"); got != 0 {
		t.Errorf("luminance(oops) = %f, want 0", got)
	}
	if c := contrast("#ffffff", "#000000"); c < 20.9 || c > 21.1 {
		t.Errorf("contrast(white, black) = %f, want 21", c)
	}
}
