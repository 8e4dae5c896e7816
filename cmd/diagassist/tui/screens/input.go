package screens

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/diagassist/cmd/diagassist/tui/components"
	"github.com/mrsinham/diagassist/internal/lexicon"
)

// InputValues is what the input form collects.
type InputValues struct {
	Symptoms  string
	ImagePath string
	Category  lexicon.Category
}

// InputScreen collects symptoms, an optional image and its category.
type InputScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	values    InputValues
	message   string
	width     int
	height    int
	done      bool
	cancelled bool
}

// NewInputScreen creates the input form prefilled with values. A non-empty
// message is displayed above the form.
func NewInputScreen(values InputValues, message string) *InputScreen {
	if !values.Category.IsValid() {
		values.Category = lexicon.Chest
	}

	s := &InputScreen{
		helpPanel: components.NewHelpPanel(),
		values:    values,
		message:   message,
	}

	categories := make([]huh.Option[lexicon.Category], 0, len(lexicon.AllCategories()))
	for _, c := range lexicon.AllCategories() {
		categories = append(categories, huh.NewOption(categoryLabel(c), c))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("symptoms").
				Title("Describe your symptoms").
				Placeholder("e.g. I have had a headache and a fever since yesterday").
				CharLimit(2000).
				Value(&s.values.Symptoms),

			huh.NewInput().
				Key("image").
				Title("Medical image (optional)").
				Placeholder("path/to/xray.png").
				Value(&s.values.ImagePath).
				Validate(validateImagePath),

			huh.NewSelect[lexicon.Category]().
				Key("category").
				Title("Image type").
				Options(categories...).
				Value(&s.values.Category),
		),
	).WithShowHelp(false).WithShowErrors(true)

	s.helpPanel.SetField("symptoms")
	return s
}

func categoryLabel(c lexicon.Category) string {
	switch c {
	case lexicon.Chest:
		return "Chest X-ray"
	case lexicon.Brain:
		return "Brain MRI"
	default:
		return string(c)
	}
}

func validateImagePath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found")
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	return nil
}

func (s *InputScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *InputScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetWidth(msg.Width / 2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
		s.values.ImagePath = strings.TrimSpace(s.values.ImagePath)
	}

	return s, cmd
}

func (s *InputScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("DIAGNOSTIC ASSISTANT - Describe your symptoms")
	subtitle := components.SubtitleStyle.Render(
		"Simulated analysis for demonstration purposes only. Not medical advice.")

	parts := []string{title, subtitle}
	if s.message != "" {
		parts = append(parts, components.ErrorStyle.Render("! "+s.message), "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Analyze | Esc: Quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done reports whether the form was submitted.
func (s *InputScreen) Done() bool {
	return s.done
}

// Cancelled reports whether the user quit.
func (s *InputScreen) Cancelled() bool {
	return s.cancelled
}

// Values returns the submitted values.
func (s *InputScreen) Values() InputValues {
	return s.values
}

// Message returns the displayed error message.
func (s *InputScreen) Message() string {
	return s.message
}
