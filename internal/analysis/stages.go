package analysis

import (
	"context"
	"time"

	"github.com/mrsinham/diagassist/internal/imaging"
	"github.com/mrsinham/diagassist/internal/lexicon"
)

// Default simulated latencies of the mock stages.
const (
	DefaultSymptomDelay = 2 * time.Second
	DefaultImageDelay   = 1500 * time.Millisecond
)

// SymptomStage turns free-text symptoms into a symptom analysis.
type SymptomStage interface {
	AnalyzeSymptoms(ctx context.Context, text string) (lexicon.SymptomAnalysis, error)
}

// ImageStage turns an uploaded image into a finding.
type ImageStage interface {
	AnalyzeImage(ctx context.Context, img *imaging.Image, category lexicon.Category) (lexicon.ImageFinding, error)
}

// SymptomStageFunc adapts a function to SymptomStage.
type SymptomStageFunc func(ctx context.Context, text string) (lexicon.SymptomAnalysis, error)

func (f SymptomStageFunc) AnalyzeSymptoms(ctx context.Context, text string) (lexicon.SymptomAnalysis, error) {
	return f(ctx, text)
}

// ImageStageFunc adapts a function to ImageStage.
type ImageStageFunc func(ctx context.Context, img *imaging.Image, category lexicon.Category) (lexicon.ImageFinding, error)

func (f ImageStageFunc) AnalyzeImage(ctx context.Context, img *imaging.Image, category lexicon.Category) (lexicon.ImageFinding, error) {
	return f(ctx, img, category)
}

// LexiconStage answers from the symptom lexicon after Delay.
type LexiconStage struct {
	Lexicon *lexicon.SymptomLexicon
	Delay   time.Duration
}

func (s *LexiconStage) AnalyzeSymptoms(ctx context.Context, text string) (lexicon.SymptomAnalysis, error) {
	if err := simulateLatency(ctx, s.Delay); err != nil {
		return lexicon.SymptomAnalysis{}, err
	}
	return s.Lexicon.Lookup(text), nil
}

// FindingStage answers from the image finding table after Delay. The image
// content is not inspected; only its category matters.
type FindingStage struct {
	Table *lexicon.ImageFindingTable
	Delay time.Duration
}

func (s *FindingStage) AnalyzeImage(ctx context.Context, _ *imaging.Image, category lexicon.Category) (lexicon.ImageFinding, error) {
	if err := simulateLatency(ctx, s.Delay); err != nil {
		return lexicon.ImageFinding{}, err
	}
	return s.Table.Lookup(category)
}

// simulateLatency blocks for d or until ctx is done.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
