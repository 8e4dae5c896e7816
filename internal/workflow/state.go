// Package workflow drives the three-step diagnosis screen: collect input,
// analyse, show results. Transitions are pure functions over State so they
// can be tested without any front-end.
package workflow

import (
	"errors"
	"strings"

	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/imaging"
	"github.com/mrsinham/diagassist/internal/lexicon"
)

// Step is the current screen of the workflow.
type Step int

const (
	StepInput Step = iota
	StepAnalyzing
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepAnalyzing:
		return "Analyzing"
	case StepResults:
		return "Results"
	default:
		return "Input"
	}
}

// User-facing error messages.
const (
	MessageInvalidImage    = "Please upload an image file"
	MessageUnreadableImage = "Could not read the selected image"
	MessageAnalysisFailed  = "Error processing diagnosis. Please try again."
)

// State is the whole workflow state. It is plain data; only Apply produces
// new states.
type State struct {
	Step        Step
	SymptomText string
	Image       *imaging.Image
	Category    lexicon.Category
	Report      *analysis.Report
	Error       string

	// Pending is the request captured when analysis started. Run identifies
	// that analysis so late completions of an abandoned run are dropped.
	Pending *analysis.Request
	Run     int
}

// NewState returns the initial Input state.
func NewState(category lexicon.Category) State {
	return State{Step: StepInput, Category: category}
}

// CanGenerate reports whether a generate action would start an analysis.
func (s State) CanGenerate() bool {
	if s.Step != StepInput {
		return false
	}
	return strings.TrimSpace(s.SymptomText) != "" || s.Image != nil
}

// Event is an input to Apply.
type Event interface {
	event()
}

type (
	SymptomsChanged   struct{ Text string }
	CategoryChanged   struct{ Category lexicon.Category }
	ImageStaged       struct{ Image *imaging.Image }
	ImageRejected     struct{ Err error }
	ImageCleared      struct{}
	GenerateRequested struct{}
	AnalysisSucceeded struct {
		Run    int
		Report *analysis.Report
	}
	AnalysisFailed struct {
		Run int
		Err error
	}
	ResetRequested struct{}
	ErrorDismissed struct{}
)

func (SymptomsChanged) event()   {}
func (CategoryChanged) event()   {}
func (ImageStaged) event()       {}
func (ImageRejected) event()     {}
func (ImageCleared) event()      {}
func (GenerateRequested) event() {}
func (AnalysisSucceeded) event() {}
func (AnalysisFailed) event()    {}
func (ResetRequested) event()    {}
func (ErrorDismissed) event()    {}

// Apply returns the state that follows s after ev. Events that are not
// allowed in the current step return s unchanged.
func Apply(s State, ev Event) State {
	switch ev := ev.(type) {
	case SymptomsChanged:
		if s.Step == StepInput {
			s.SymptomText = ev.Text
			s.Error = ""
		}

	case CategoryChanged:
		if s.Step == StepInput {
			s.Category = ev.Category
			s.Error = ""
		}

	case ImageStaged:
		if s.Step == StepInput && ev.Image != nil {
			s.Image = ev.Image
			s.Error = ""
		}

	case ImageRejected:
		// The previously staged image, if any, stays.
		if s.Step == StepInput {
			s.Error = imageErrorMessage(ev.Err)
		}

	case ImageCleared:
		if s.Step == StepInput {
			s.Image = nil
			s.Error = ""
		}

	case GenerateRequested:
		if !s.CanGenerate() {
			return s
		}
		s.Step = StepAnalyzing
		s.Error = ""
		s.Report = nil
		s.Run++
		s.Pending = &analysis.Request{
			SymptomText: s.SymptomText,
			Image:       s.Image,
			Category:    s.Category,
		}

	case AnalysisSucceeded:
		if s.Step != StepAnalyzing || ev.Run != s.Run || ev.Report == nil {
			return s
		}
		s.Step = StepResults
		s.Report = ev.Report
		s.Pending = nil

	case AnalysisFailed:
		if s.Step != StepAnalyzing || ev.Run != s.Run {
			return s
		}
		s.Step = StepInput
		s.Report = nil
		s.Pending = nil
		s.Error = MessageAnalysisFailed

	case ResetRequested:
		return State{Step: StepInput, Category: s.Category, Run: s.Run}

	case ErrorDismissed:
		s.Error = ""
	}

	return s
}

// imageErrorMessage tells a payload of the wrong type apart from an image
// that failed to decode.
func imageErrorMessage(err error) string {
	var invalid *imaging.InvalidImageTypeError
	if err == nil || (errors.As(err, &invalid) && invalid.Err == nil) {
		return MessageInvalidImage
	}
	return MessageUnreadableImage
}
