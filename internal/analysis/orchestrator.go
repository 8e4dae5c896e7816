// Package analysis runs the symptom and image stages of a mock diagnosis and
// merges their answers into a single report.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mrsinham/diagassist/internal/imaging"
	"github.com/mrsinham/diagassist/internal/lexicon"
	"github.com/mrsinham/diagassist/internal/observability"
)

// Stage names used in errors and logs.
const (
	StageSymptoms = "symptoms"
	StageImage    = "image"
)

// Request is one analysis run's input.
type Request struct {
	SymptomText string
	Image       *imaging.Image
	Category    lexicon.Category
}

// Report is the merged output of a successful run. ImageAnalysis is nil
// exactly when the request carried no image.
type Report struct {
	ID              uuid.UUID               `yaml:"id"`
	SymptomAnalysis lexicon.SymptomAnalysis `yaml:"symptom_analysis"`
	ImageAnalysis   *lexicon.ImageFinding   `yaml:"image_analysis,omitempty"`
	Category        lexicon.Category        `yaml:"category,omitempty"`
	Timestamp       time.Time               `yaml:"timestamp"`
}

// AnalysisError reports a failed stage. A run that returns it produced no report.
type AnalysisError struct {
	Stage string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis: %s stage failed: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Orchestrator fans a request out to its stages.
type Orchestrator struct {
	symptoms SymptomStage
	images   ImageStage
	timeout  time.Duration
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout bounds a whole run. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// WithClock replaces the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// New creates an orchestrator over the given stages.
func New(symptoms SymptomStage, images ImageStage, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		symptoms: symptoms,
		images:   images,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Delays holds the simulated latency of each mock stage.
type Delays struct {
	Symptoms time.Duration
	Image    time.Duration
}

// DefaultDelays returns the stock mock latencies.
func DefaultDelays() Delays {
	return Delays{Symptoms: DefaultSymptomDelay, Image: DefaultImageDelay}
}

// NewMock creates an orchestrator backed by lookup tables.
func NewMock(tables *lexicon.Tables, delays Delays, opts ...Option) *Orchestrator {
	return New(
		&LexiconStage{Lexicon: tables.Symptoms, Delay: delays.Symptoms},
		&FindingStage{Table: tables.Images, Delay: delays.Image},
		opts...,
	)
}

type stageResult struct {
	stage    string
	symptoms lexicon.SymptomAnalysis
	finding  lexicon.ImageFinding
	err      error
}

// Analyze runs the symptom stage and, when an image is present, the image
// stage concurrently. The first stage failure cancels the other and is
// returned as an *AnalysisError.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*Report, error) {
	id := uuid.New()
	ctx = observability.WithRunID(ctx, id.String())
	log := observability.LoggerFromContext(ctx)

	if o.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, o.timeout)
		defer cancelTimeout()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	log.Info("analysis started",
		"symptom_chars", len(req.SymptomText),
		"has_image", req.Image != nil,
		"category", string(req.Category))

	// Buffered so a stage still running after a failure never blocks.
	results := make(chan stageResult, 2)
	pending := 1

	go o.run(ctx, StageSymptoms, results, func(ctx context.Context) stageResult {
		analysis, err := o.symptoms.AnalyzeSymptoms(ctx, req.SymptomText)
		return stageResult{symptoms: analysis, err: err}
	})

	if req.Image != nil {
		pending++
		go o.run(ctx, StageImage, results, func(ctx context.Context) stageResult {
			finding, err := o.images.AnalyzeImage(ctx, req.Image, req.Category)
			return stageResult{finding: finding, err: err}
		})
	}

	report := &Report{ID: id}
	for i := 0; i < pending; i++ {
		res := <-results
		if res.err != nil {
			cancel()
			log.Error("analysis failed", "stage", res.stage, "error", res.err)
			return nil, &AnalysisError{Stage: res.stage, Err: res.err}
		}
		switch res.stage {
		case StageSymptoms:
			report.SymptomAnalysis = res.symptoms
		case StageImage:
			finding := res.finding
			report.ImageAnalysis = &finding
			report.Category = req.Category
		}
	}
	report.Timestamp = o.now()

	log.Info("analysis finished",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"urgency", report.SymptomAnalysis.Urgency.String(),
		"conditions", len(report.SymptomAnalysis.Conditions))

	return report, nil
}

func (o *Orchestrator) run(ctx context.Context, stage string, results chan<- stageResult, fn func(context.Context) stageResult) {
	log := observability.LoggerFromContext(ctx)
	start := time.Now()
	log.Debug("stage start", "stage", stage)

	res := fn(ctx)
	res.stage = stage

	log.Debug("stage end", "stage", stage, "elapsed_ms", time.Since(start).Milliseconds(), "ok", res.err == nil)
	results <- res
}
