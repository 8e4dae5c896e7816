package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/imaging"
	"github.com/mrsinham/diagassist/internal/lexicon"
)

var testImage = &imaging.Image{Name: "scan.png", MediaType: "image/png", Format: "png", Width: 2, Height: 2}

func TestStep_String(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{StepInput, "Input"},
		{StepAnalyzing, "Analyzing"},
		{StepResults, "Results"},
	}
	for _, tt := range tests {
		if got := tt.step.String(); got != tt.want {
			t.Errorf("Step(%d).String() = %q, want %q", tt.step, got, tt.want)
		}
	}
}

func TestCanGenerate(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"empty", State{}, false},
		{"whitespace only", State{SymptomText: "  \n\t "}, false},
		{"text", State{SymptomText: "cough"}, true},
		{"image only", State{Image: testImage}, true},
		{"analyzing", State{Step: StepAnalyzing, SymptomText: "cough"}, false},
		{"results", State{Step: StepResults, SymptomText: "cough"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.CanGenerate(); got != tt.want {
				t.Errorf("CanGenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_GenerateIsNoOpWithoutInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		s := NewState(lexicon.Chest)
		s = Apply(s, SymptomsChanged{Text: text})
		next := Apply(s, GenerateRequested{})

		if next.Step != StepInput {
			t.Errorf("text %q: Step = %v, want Input", text, next.Step)
		}
		if next.Run != 0 || next.Pending != nil {
			t.Errorf("text %q: no analysis should have started", text)
		}
	}
}

func TestApply_GenerateCapturesRequest(t *testing.T) {
	s := NewState(lexicon.Brain)
	s = Apply(s, SymptomsChanged{Text: "headache"})
	s = Apply(s, ImageStaged{Image: testImage})
	s = Apply(s, GenerateRequested{})

	if s.Step != StepAnalyzing {
		t.Fatalf("Step = %v, want Analyzing", s.Step)
	}
	if s.Run != 1 {
		t.Errorf("Run = %d, want 1", s.Run)
	}
	want := analysis.Request{SymptomText: "headache", Image: testImage, Category: lexicon.Brain}
	if s.Pending == nil || *s.Pending != want {
		t.Errorf("Pending = %+v, want %+v", s.Pending, want)
	}
}

func TestApply_GenerateWhileAnalyzingIsIgnored(t *testing.T) {
	s := Apply(Apply(NewState(lexicon.Chest), SymptomsChanged{Text: "fever"}), GenerateRequested{})
	again := Apply(s, GenerateRequested{})

	if again.Run != s.Run {
		t.Errorf("Run changed from %d to %d on re-entrant generate", s.Run, again.Run)
	}
	if again.Step != StepAnalyzing {
		t.Errorf("Step = %v, want Analyzing", again.Step)
	}
}

func TestApply_InputEditsIgnoredOutsideInput(t *testing.T) {
	s := Apply(Apply(NewState(lexicon.Chest), SymptomsChanged{Text: "fever"}), GenerateRequested{})

	s = Apply(s, SymptomsChanged{Text: "cough"})
	s = Apply(s, CategoryChanged{Category: lexicon.Brain})
	s = Apply(s, ImageStaged{Image: testImage})

	if s.SymptomText != "fever" || s.Category != lexicon.Chest || s.Image != nil {
		t.Errorf("input changed while analyzing: %+v", s)
	}
}

func TestApply_Success(t *testing.T) {
	s := Apply(Apply(NewState(lexicon.Chest), SymptomsChanged{Text: "fever"}), GenerateRequested{})
	report := &analysis.Report{SymptomAnalysis: lexicon.DefaultSymptomLexicon().Lookup("fever")}

	s = Apply(s, AnalysisSucceeded{Run: s.Run, Report: report})

	if s.Step != StepResults {
		t.Fatalf("Step = %v, want Results", s.Step)
	}
	if s.Report != report {
		t.Error("Report was not stored")
	}
	if s.Pending != nil {
		t.Error("Pending should be cleared")
	}
}

func TestApply_Failure(t *testing.T) {
	s := Apply(Apply(NewState(lexicon.Chest), SymptomsChanged{Text: "fever"}), GenerateRequested{})

	s = Apply(s, AnalysisFailed{Run: s.Run, Err: errors.New("boom")})

	if s.Step != StepInput {
		t.Fatalf("Step = %v, want Input", s.Step)
	}
	if s.Error != MessageAnalysisFailed {
		t.Errorf("Error = %q, want %q", s.Error, MessageAnalysisFailed)
	}
	if s.SymptomText != "fever" {
		t.Errorf("SymptomText = %q, input should survive a failure", s.SymptomText)
	}
	if s.Report != nil {
		t.Error("no report expected after failure")
	}
}

func TestApply_StaleCompletionDropped(t *testing.T) {
	s := Apply(Apply(NewState(lexicon.Chest), SymptomsChanged{Text: "fever"}), GenerateRequested{})
	abandoned := s.Run

	s = Apply(s, ResetRequested{})
	s = Apply(s, SymptomsChanged{Text: "cough"})
	s = Apply(s, GenerateRequested{})

	stale := Apply(s, AnalysisSucceeded{Run: abandoned, Report: &analysis.Report{}})
	if stale.Step != StepAnalyzing || stale.Report != nil {
		t.Errorf("stale success applied: %+v", stale)
	}
	stale = Apply(s, AnalysisFailed{Run: abandoned, Err: errors.New("late")})
	if stale.Step != StepAnalyzing || stale.Error != "" {
		t.Errorf("stale failure applied: %+v", stale)
	}

	// Outside Analyzing every completion is dropped.
	idle := Apply(NewState(lexicon.Chest), AnalysisSucceeded{Run: 0, Report: &analysis.Report{}})
	if idle.Step != StepInput {
		t.Errorf("completion in Input moved to %v", idle.Step)
	}
}

func TestApply_ResetFromEveryStep(t *testing.T) {
	input := NewState(lexicon.Brain)
	input = Apply(input, SymptomsChanged{Text: "chest pain"})
	input = Apply(input, ImageStaged{Image: testImage})
	input.Error = "stale"

	analyzing := Apply(input, GenerateRequested{})
	results := Apply(analyzing, AnalysisSucceeded{Run: analyzing.Run, Report: &analysis.Report{}})

	for _, s := range []State{input, analyzing, results} {
		t.Run(s.Step.String(), func(t *testing.T) {
			got := Apply(s, ResetRequested{})
			if got.Step != StepInput {
				t.Errorf("Step = %v, want Input", got.Step)
			}
			if got.SymptomText != "" || got.Image != nil || got.Report != nil || got.Error != "" || got.Pending != nil {
				t.Errorf("Reset left data behind: %+v", got)
			}
			if got.Category != lexicon.Brain {
				t.Errorf("Category = %q, want it kept", got.Category)
			}
			if got.Run != s.Run {
				t.Errorf("Run = %d, want %d", got.Run, s.Run)
			}
		})
	}
}

func TestApply_ImageRejected(t *testing.T) {
	invalid := &imaging.InvalidImageTypeError{Name: "notes.txt", MediaType: "text/plain"}
	corrupt := &imaging.InvalidImageTypeError{Name: "scan.png", MediaType: "image/png", Err: errors.New("png: invalid format")}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"wrong type", invalid, MessageInvalidImage},
		{"wrapped wrong type", fmt.Errorf("staging: %w", invalid), MessageInvalidImage},
		{"corrupt image", corrupt, MessageUnreadableImage},
		{"unreadable file", errors.New("reading image: permission denied"), MessageUnreadableImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Apply(NewState(lexicon.Chest), ImageStaged{Image: testImage})
			s = Apply(s, ImageRejected{Err: tt.err})

			if s.Error != tt.want {
				t.Errorf("Error = %q, want %q", s.Error, tt.want)
			}
			if s.Image != testImage {
				t.Error("previously staged image should be kept")
			}
		})
	}
}

func TestApply_EditsClearError(t *testing.T) {
	events := []Event{
		SymptomsChanged{Text: "cough"},
		CategoryChanged{Category: lexicon.Brain},
		ImageStaged{Image: testImage},
		ImageCleared{},
		ErrorDismissed{},
	}
	for _, ev := range events {
		s := NewState(lexicon.Chest)
		s.Error = MessageInvalidImage
		if got := Apply(s, ev); got.Error != "" {
			t.Errorf("%T left Error = %q", ev, got.Error)
		}
	}
}

func TestApply_ImageCleared(t *testing.T) {
	s := Apply(NewState(lexicon.Chest), ImageStaged{Image: testImage})
	s = Apply(s, ImageCleared{})
	if s.Image != nil {
		t.Error("image should be cleared")
	}
	if s.CanGenerate() {
		t.Error("nothing left to analyse")
	}
}
