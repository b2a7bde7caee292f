package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render a modal frame.
type ModalStyles struct {
	HeaderStyle lipgloss.Style
	TitleStyle  lipgloss.Style
	FooterStyle lipgloss.Style
	FrameStyle  lipgloss.Style
	BodyStyle   lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body lines and
// footer.
func RenderModalFrame(title string, body []string, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render(styles.TitleStyle.Render(title)))
	if len(body) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.BodyStyle.Render(strings.Join(body, "\n")))
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FooterStyle.Render(footer))
	}

	return styles.FrameStyle.Render(b.String())
}
