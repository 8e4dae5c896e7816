package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/diagassist/cmd/diagassist/tui/help"
)

var (
	helpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Width(60)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	helpDetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// HelpPanel shows the help text of the focused field.
type HelpPanel struct {
	currentField string
	width        int
}

func NewHelpPanel() *HelpPanel {
	return &HelpPanel{width: 60}
}

// SetField selects the help entry to display.
func (h *HelpPanel) SetField(field string) {
	h.currentField = field
}

// Field returns the key of the displayed entry.
func (h *HelpPanel) Field() string {
	return h.currentField
}

// SetWidth updates the panel width. Narrow terminals keep the default.
func (h *HelpPanel) SetWidth(width int) {
	if width >= 30 {
		h.width = width
	}
}

func (h *HelpPanel) View() string {
	style := helpPanelStyle.Width(h.width - 4)

	text, ok := help.Texts[h.currentField]
	if !ok {
		return style.Render("Select a field to see help")
	}

	var sb strings.Builder
	sb.WriteString(helpTitleStyle.Render(text.Title))
	sb.WriteString("\n\n")
	sb.WriteString(helpDescStyle.Render(text.Description))
	if text.Details != "" {
		sb.WriteString("\n\n")
		sb.WriteString(helpDetailStyle.Render(text.Details))
	}

	return style.Render(sb.String())
}
