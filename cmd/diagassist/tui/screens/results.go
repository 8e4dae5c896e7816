package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/diagassist/cmd/diagassist/tui/components"
	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/imaging"
	"github.com/mrsinham/diagassist/internal/report"
)

// ResultsAction is the action chosen on the results screen.
type ResultsAction string

const (
	ActionNewAnalysis ResultsAction = "new"
	ActionExportYAML  ResultsAction = "yaml"
	ActionExportPDF   ResultsAction = "pdf"
	ActionQuit        ResultsAction = "quit"
)

const previewWidth = 40

// ResultsScreen shows a finished report.
type ResultsScreen struct {
	form      *huh.Form
	report    *analysis.Report
	image     *imaging.Image
	status    string
	action    ResultsAction
	width     int
	height    int
	done      bool
	cancelled bool
}

// NewResultsScreen renders r. img may be nil. status is shown under the
// panels, e.g. after an export.
func NewResultsScreen(r *analysis.Report, img *imaging.Image, status string) *ResultsScreen {
	s := &ResultsScreen{
		report: r,
		image:  img,
		status: status,
		action: ActionNewAnalysis,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ResultsAction]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Start new analysis", ActionNewAnalysis),
					huh.NewOption("Export report to YAML", ActionExportYAML),
					huh.NewOption("Export report to PDF", ActionExportPDF),
					huh.NewOption("Quit", ActionQuit),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *ResultsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.action = ActionNewAnalysis
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

func (s *ResultsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("ANALYSIS RESULTS")

	panelWidth := 48
	panels := []string{components.PanelStyle.Width(panelWidth).Render(s.symptomPanel())}
	if s.report.ImageAnalysis != nil {
		panels = append(panels, "  ", components.PanelStyle.Width(panelWidth).Render(s.imagePanel()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	parts := []string{title, "", row}
	if s.status != "" {
		parts = append(parts, "", components.SuccessStyle.Render(s.status))
	}
	parts = append(parts,
		"",
		components.HintStyle.Render(report.Disclaimer),
		"",
		s.form.View(),
		"",
		"Enter: Select action | Esc: New analysis",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ResultsScreen) symptomPanel() string {
	sa := s.report.SymptomAnalysis

	var sb strings.Builder
	sb.WriteString(components.TitleStyle.Render("Symptom Analysis"))
	sb.WriteString("\n")
	sb.WriteString(components.LabelStyle.Render("Possible conditions:"))
	sb.WriteString("\n")
	for _, c := range sa.Conditions {
		sb.WriteString("  • ")
		sb.WriteString(components.ValueStyle.Render(c))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	band := report.ConfidenceBand(sa.Confidence)
	sb.WriteString(components.LabelStyle.Render("Confidence: "))
	sb.WriteString(components.BandStyle(band).Render(report.Percent(sa.Confidence)))
	sb.WriteString("\n")
	sb.WriteString(components.LabelStyle.Render("Urgency:    "))
	sb.WriteString(components.UrgencyStyle(sa.Urgency).Render(sa.Urgency.String()))

	return sb.String()
}

func (s *ResultsScreen) imagePanel() string {
	ia := s.report.ImageAnalysis

	var sb strings.Builder
	sb.WriteString(components.TitleStyle.Render(fmt.Sprintf("Image Analysis (%s)", s.report.Category)))
	sb.WriteString("\n")
	if s.image != nil {
		sb.WriteString(imaging.Preview(s.image, previewWidth))
		sb.WriteString("\n\n")
	}
	sb.WriteString(components.LabelStyle.Render("Finding: "))
	sb.WriteString(components.ValueStyle.Render(ia.Finding))
	sb.WriteString("\n")

	band := report.ConfidenceBand(ia.Confidence)
	sb.WriteString(components.LabelStyle.Render("Confidence: "))
	sb.WriteString(components.BandStyle(band).Render(report.Percent(ia.Confidence)))
	sb.WriteString("\n")

	if len(ia.Recommendations) > 0 {
		sb.WriteString("\n")
		sb.WriteString(components.LabelStyle.Render("Recommendations:"))
		sb.WriteString("\n")
		for _, rec := range ia.Recommendations {
			sb.WriteString("  • ")
			sb.WriteString(rec)
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// Done reports whether an action was chosen.
func (s *ResultsScreen) Done() bool {
	return s.done
}

// Cancelled reports whether the user quit with Ctrl+C.
func (s *ResultsScreen) Cancelled() bool {
	return s.cancelled
}

// Action returns the chosen action.
func (s *ResultsScreen) Action() ResultsAction {
	return s.action
}
