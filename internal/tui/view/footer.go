package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW      int
	FooterH     int
	FullFooter  bool
	StatsLine   string
	StatusText  string
	HelpText    string
	PromptLines []string
	ShowPrompt  bool
	FooterStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
	VAlign      lipgloss.Position
	Bg          lipgloss.Color
}

// RenderFooter renders the stats, prompt, status and help lines. A compact
// footer drops the stats line.
func RenderFooter(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	statusLine := footerLine(model.InnerW, model.StatusStyle, model.StatusText)
	helpLine := footerLine(model.InnerW, model.HelpStyle, model.HelpText)

	var s string
	if model.FullFooter {
		s += footerLine(model.InnerW, model.FooterStyle, model.StatsLine) + "\n"
	}
	if model.ShowPrompt {
		s += RenderPrompt(model.InnerW, model.PromptStyle, model.PromptLines) + "\n"
	}
	s += statusLine + "\n"
	s += helpLine

	return PlaceBox(model.InnerW, model.FooterH, model.VAlign, s, model.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}
