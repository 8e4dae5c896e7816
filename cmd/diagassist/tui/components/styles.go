package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/diagassist/internal/lexicon"
	"github.com/mrsinham/diagassist/internal/report"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			MarginBottom(1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var (
	highColor   = lipgloss.Color("42")
	mediumColor = lipgloss.Color("214")
	lowColor    = lipgloss.Color("196")
)

// BandStyle colours a confidence score: green when high, red when low.
func BandStyle(band report.Band) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch band {
	case report.BandHigh:
		return style.Foreground(highColor)
	case report.BandMedium:
		return style.Foreground(mediumColor)
	default:
		return style.Foreground(lowColor)
	}
}

// UrgencyStyle colours an urgency tier: red when high, green when low.
func UrgencyStyle(u lexicon.Urgency) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch u {
	case lexicon.UrgencyHigh:
		return style.Foreground(lowColor)
	case lexicon.UrgencyMedium:
		return style.Foreground(mediumColor)
	default:
		return style.Foreground(highColor)
	}
}
