package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/diagassist/cmd/diagassist/tui/components"
	"github.com/mrsinham/diagassist/internal/analysis"
)

// AnalysisDoneMsg carries the outcome of one analysis run.
type AnalysisDoneMsg struct {
	Run    int
	Report *analysis.Report
	Err    error
}

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	elapsedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// AnalyzingScreen shows an indeterminate indicator while a run is in flight.
type AnalyzingScreen struct {
	spinner   spinner.Model
	request   analysis.Request
	startTime time.Time
	aborted   bool
	cancelled bool
	width     int
	height    int
}

func NewAnalyzingScreen(req analysis.Request) *AnalyzingScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &AnalyzingScreen{
		spinner:   sp,
		request:   req,
		startTime: time.Now(),
	}
}

func (s *AnalyzingScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *AnalyzingScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.aborted = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *AnalyzingScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	var sb strings.Builder
	sb.WriteString(components.TitleStyle.Render("Analyzing..."))
	sb.WriteString("\n\n")
	sb.WriteString(s.spinner.View())
	sb.WriteString(" Processing symptoms")
	if img := s.request.Image; img != nil {
		sb.WriteString(fmt.Sprintf(" and %s (%s, %s)", img.Name, img.HumanSize(), s.request.Category))
	}
	sb.WriteString("\n\n")

	elapsed := time.Since(s.startTime)
	sb.WriteString(elapsedStyle.Render(fmt.Sprintf("Elapsed: %.1fs", elapsed.Seconds())))
	sb.WriteString("\n\n")
	sb.WriteString(components.HintStyle.Render("Esc: Abandon and start over | Ctrl+C: Quit"))

	return sb.String()
}

// Aborted reports whether the user abandoned the run.
func (s *AnalyzingScreen) Aborted() bool {
	return s.aborted
}

// Cancelled reports whether the user quit.
func (s *AnalyzingScreen) Cancelled() bool {
	return s.cancelled
}
