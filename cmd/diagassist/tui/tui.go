// Package tui is the interactive terminal front-end of the diagnostic
// assistant. Its phase always follows the workflow controller's step.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/diagassist/cmd/diagassist/tui/components"
	"github.com/mrsinham/diagassist/cmd/diagassist/tui/screens"
	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/observability"
	"github.com/mrsinham/diagassist/internal/report"
	"github.com/mrsinham/diagassist/internal/workflow"
)

// Phase is the screen currently shown.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseAnalyzing
	PhaseResults
	PhaseExport
)

// MessageNothingToAnalyze is shown when the form is submitted empty.
const MessageNothingToAnalyze = "Describe your symptoms or select an image first"

// Model drives the screens from a workflow controller.
type Model struct {
	controller *workflow.Controller
	ctx        context.Context

	phase Phase

	inputScreen     *screens.InputScreen
	analyzingScreen *screens.AnalyzingScreen
	resultsScreen   *screens.ResultsScreen

	// Export dialog
	exportForm   *huh.Form
	exportKind   screens.ResultsAction
	exportPath   string
	exportStatus string

	// imagePath is what the user typed, kept so the form can be refilled.
	imagePath string
	cancelRun context.CancelFunc

	width  int
	height int

	cancelled bool
}

// New creates a model in the Input phase.
func New(ctx context.Context, controller *workflow.Controller) *Model {
	m := &Model{
		controller: controller,
		ctx:        ctx,
		phase:      PhaseInput,
	}
	m.inputScreen = m.newInputScreen()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.inputScreen.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	// Completions arrive whatever the phase; the controller drops stale ones.
	if done, ok := msg.(screens.AnalysisDoneMsg); ok {
		return m.finishAnalysis(done)
	}

	switch m.phase {
	case PhaseInput:
		return m.updateInput(msg)
	case PhaseAnalyzing:
		return m.updateAnalyzing(msg)
	case PhaseResults:
		return m.updateResults(msg)
	case PhaseExport:
		return m.updateExport(msg)
	}

	return m, nil
}

func (m *Model) View() string {
	switch m.phase {
	case PhaseInput:
		return m.inputScreen.View()
	case PhaseAnalyzing:
		return m.analyzingScreen.View()
	case PhaseResults:
		return m.resultsScreen.View()
	case PhaseExport:
		return m.viewExport()
	}
	return ""
}

// Phase returns the current phase.
func (m *Model) Phase() Phase {
	return m.phase
}

func (m *Model) newInputScreen() *screens.InputScreen {
	state := m.controller.Snapshot()
	path := m.imagePath
	if state.Image == nil {
		path = ""
	}
	return screens.NewInputScreen(screens.InputValues{
		Symptoms:  state.SymptomText,
		ImagePath: path,
		Category:  state.Category,
	}, state.Error)
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.inputScreen.Update(msg)
	if is, ok := model.(*screens.InputScreen); ok {
		m.inputScreen = is
	}

	if m.inputScreen.Cancelled() {
		m.cancelled = true
		return m, tea.Quit
	}

	if m.inputScreen.Done() {
		return m.submitInput(m.inputScreen.Values())
	}

	return m, cmd
}

// submitInput pushes the form values into the controller and starts an
// analysis when the guard allows it.
func (m *Model) submitInput(values screens.InputValues) (tea.Model, tea.Cmd) {
	m.controller.SetSymptoms(values.Symptoms)
	m.controller.SetCategory(values.Category)

	switch {
	case values.ImagePath == "":
		m.controller.ClearImage()
		m.imagePath = ""
	case values.ImagePath != m.imagePath || m.controller.Snapshot().Image == nil:
		if err := m.controller.StageImageFile(values.ImagePath); err != nil {
			return m.showInput()
		}
		m.imagePath = values.ImagePath
	}

	if !m.controller.Snapshot().CanGenerate() {
		m.inputScreen = screens.NewInputScreen(values, MessageNothingToAnalyze)
		return m, m.inputScreen.Init()
	}
	return m.startAnalysis()
}

func (m *Model) showInput() (tea.Model, tea.Cmd) {
	m.phase = PhaseInput
	m.inputScreen = m.newInputScreen()
	return m, m.inputScreen.Init()
}

func (m *Model) startAnalysis() (tea.Model, tea.Cmd) {
	req, run, ok := m.controller.Begin()
	if !ok {
		return m.showInput()
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelRun = cancel
	m.phase = PhaseAnalyzing
	m.analyzingScreen = screens.NewAnalyzingScreen(req)

	return m, tea.Batch(m.analyzingScreen.Init(), analyzeCmd(ctx, m.controller, req, run))
}

func analyzeCmd(ctx context.Context, c *workflow.Controller, req analysis.Request, run int) tea.Cmd {
	return func() tea.Msg {
		r, err := c.Run(ctx, req)
		return screens.AnalysisDoneMsg{Run: run, Report: r, Err: err}
	}
}

func (m *Model) updateAnalyzing(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.analyzingScreen.Update(msg)
	if as, ok := model.(*screens.AnalyzingScreen); ok {
		m.analyzingScreen = as
	}

	if m.analyzingScreen.Cancelled() {
		m.stopRun()
		m.cancelled = true
		return m, tea.Quit
	}

	if m.analyzingScreen.Aborted() {
		m.stopRun()
		m.controller.Reset()
		m.imagePath = ""
		return m.showInput()
	}

	return m, cmd
}

func (m *Model) stopRun() {
	if m.cancelRun != nil {
		m.cancelRun()
		m.cancelRun = nil
	}
}

func (m *Model) finishAnalysis(msg screens.AnalysisDoneMsg) (tea.Model, tea.Cmd) {
	state := m.controller.Finish(msg.Run, msg.Report, msg.Err)
	if msg.Err != nil {
		observability.Logger().Warn("analysis failed", "run", msg.Run, "error", msg.Err)
	}

	switch {
	case m.phase != PhaseAnalyzing:
		// Abandoned run; nothing on screen depends on it.
		return m, nil
	case state.Step == workflow.StepResults:
		m.stopRun()
		m.phase = PhaseResults
		m.exportStatus = ""
		m.resultsScreen = screens.NewResultsScreen(state.Report, state.Image, "")
		return m, m.resultsScreen.Init()
	case state.Step == workflow.StepInput:
		m.stopRun()
		return m.showInput()
	}
	return m, nil
}

func (m *Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.resultsScreen.Update(msg)
	if rs, ok := model.(*screens.ResultsScreen); ok {
		m.resultsScreen = rs
	}

	if m.resultsScreen.Cancelled() {
		m.cancelled = true
		return m, tea.Quit
	}

	if m.resultsScreen.Done() {
		switch action := m.resultsScreen.Action(); action {
		case screens.ActionNewAnalysis:
			m.controller.Reset()
			m.imagePath = ""
			return m.showInput()
		case screens.ActionExportYAML, screens.ActionExportPDF:
			return m.transitionToExport(action)
		case screens.ActionQuit:
			return m, tea.Quit
		}
	}

	return m, cmd
}

// DefaultExportPath names the export file after the report id.
func DefaultExportPath(r *analysis.Report, kind screens.ResultsAction) string {
	id := r.ID.String()
	if len(id) > 8 {
		id = id[:8]
	}
	ext := ".yaml"
	if kind == screens.ActionExportPDF {
		ext = ".pdf"
	}
	return "diagnosis-" + id + ext
}

func (m *Model) transitionToExport(kind screens.ResultsAction) (tea.Model, tea.Cmd) {
	m.phase = PhaseExport
	m.exportKind = kind
	m.exportPath = DefaultExportPath(m.controller.Snapshot().Report, kind)

	m.exportForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("export_path").
				Title("Export report to").
				Description("Enter the path of the file to write").
				Value(&m.exportPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return m, m.exportForm.Init()
}

func (m *Model) updateExport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m.showResults(m.exportStatus)
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	form, cmd := m.exportForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.exportForm = f
	}

	if m.exportForm.State == huh.StateCompleted {
		path := strings.TrimSpace(m.exportPath)
		if err := m.export(m.exportKind, path); err != nil {
			return m.showResults("Export failed: " + err.Error())
		}
		return m.showResults("Report saved to " + path)
	}

	return m, cmd
}

func (m *Model) export(kind screens.ResultsAction, path string) error {
	r := m.controller.Snapshot().Report
	if r == nil {
		return fmt.Errorf("no report to export")
	}
	var err error
	if kind == screens.ActionExportPDF {
		err = report.WritePDF(r, path)
	} else {
		err = report.WriteYAML(r, path)
	}
	log := observability.WithFields("report_id", r.ID.String(), "path", path)
	if err != nil {
		log.Error("export failed", "error", err)
		return err
	}
	log.Info("report exported", "format", string(kind))
	return nil
}

func (m *Model) showResults(status string) (tea.Model, tea.Cmd) {
	state := m.controller.Snapshot()
	m.phase = PhaseResults
	m.exportStatus = status
	m.resultsScreen = screens.NewResultsScreen(state.Report, state.Image, status)
	return m, m.resultsScreen.Init()
}

func (m *Model) viewExport() string {
	title := components.TitleStyle.Render("Export Report")
	helpPanel := components.NewHelpPanel()
	helpPanel.SetField("export_path")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.exportForm.View(),
		"",
		helpPanel.View(),
		"",
		"Enter: Save | Esc: Back",
	)
}

// Run starts the interactive front-end and blocks until the user quits.
func Run(ctx context.Context, controller *workflow.Controller) error {
	m := New(ctx, controller)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running interface: %w", err)
	}

	if fm, ok := finalModel.(*Model); ok {
		fm.stopRun()
	}
	return nil
}
