package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/imaging"
	"github.com/mrsinham/diagassist/internal/lexicon"
	"github.com/mrsinham/diagassist/internal/observability"
)

// ErrNotReady is returned by Generate when the guard rejected the action:
// there is nothing to analyse, or an analysis is already running.
var ErrNotReady = errors.New("workflow: generate ignored")

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Report, error)
}

// Controller owns the workflow state. All mutations go through Apply.
type Controller struct {
	mu       sync.Mutex
	state    State
	analyzer Analyzer
}

// NewController creates a controller in the Input step.
func NewController(analyzer Analyzer, category lexicon.Category) *Controller {
	return &Controller{
		state:    NewState(category),
		analyzer: analyzer,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Apply(c.state, ev)
	return c.state
}

// SetSymptoms replaces the symptom text.
func (c *Controller) SetSymptoms(text string) {
	c.dispatch(SymptomsChanged{Text: text})
}

// SetCategory selects the image category.
func (c *Controller) SetCategory(category lexicon.Category) {
	c.dispatch(CategoryChanged{Category: category})
}

// StageImage validates data and stages it, replacing any previous image.
// A rejected payload sets the state's error message and is also returned.
func (c *Controller) StageImage(name string, data []byte) error {
	img, err := imaging.Acquire(name, data)
	return c.stage(name, img, err)
}

// StageImageFile is StageImage for a file on disk.
func (c *Controller) StageImageFile(path string) error {
	img, err := imaging.LoadFile(path)
	return c.stage(path, img, err)
}

func (c *Controller) stage(name string, img *imaging.Image, err error) error {
	log := observability.WithFields("image", name)
	if err != nil {
		log.Warn("image rejected", "error", err)
		c.dispatch(ImageRejected{Err: err})
		return err
	}
	log.Info("image staged", "media_type", img.MediaType, "size", img.Size())
	c.dispatch(ImageStaged{Image: img})
	return nil
}

// ClearImage drops the staged image.
func (c *Controller) ClearImage() {
	c.dispatch(ImageCleared{})
}

// Begin applies a generate action. When the guard accepts it, the captured
// request and its run number are returned; the caller must hand the outcome
// back through Finish with that run number.
func (c *Controller) Begin() (analysis.Request, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.state.Run
	c.state = Apply(c.state, GenerateRequested{})
	if c.state.Run == before {
		return analysis.Request{}, 0, false
	}
	return *c.state.Pending, c.state.Run, true
}

// Finish records the outcome of run.
func (c *Controller) Finish(run int, report *analysis.Report, err error) State {
	if err != nil {
		return c.dispatch(AnalysisFailed{Run: run, Err: err})
	}
	return c.dispatch(AnalysisSucceeded{Run: run, Report: report})
}

// Generate runs a whole analysis synchronously: Begin, analyse, Finish.
// It returns ErrNotReady, without touching the state, when the guard rejects
// the action. Analysis failures are returned after the state went back to
// Input with its error message set.
func (c *Controller) Generate(ctx context.Context) (*analysis.Report, error) {
	req, run, ok := c.Begin()
	if !ok {
		return nil, ErrNotReady
	}

	report, err := c.Run(ctx, req)
	c.Finish(run, report, err)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Run executes req with the controller's analyzer without touching state.
// Front-ends that analyse in the background call it between Begin and Finish.
// Every failure comes back as an *analysis.AnalysisError.
func (c *Controller) Run(ctx context.Context, req analysis.Request) (*analysis.Report, error) {
	report, err := c.analyzer.Analyze(ctx, req)
	if err != nil {
		var analysisErr *analysis.AnalysisError
		if !errors.As(err, &analysisErr) {
			err = &analysis.AnalysisError{Stage: "orchestrator", Err: err}
		}
		return nil, err
	}
	return report, nil
}

// Reset returns to a fresh Input step.
func (c *Controller) Reset() {
	c.dispatch(ResetRequested{})
}

// DismissError clears the displayed error.
func (c *Controller) DismissError() {
	c.dispatch(ErrorDismissed{})
}
