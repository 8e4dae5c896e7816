// Package report renders an analysis report for people: a plain-text summary
// for the terminal, and YAML or PDF files for export.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrsinham/diagassist/internal/analysis"
	"gopkg.in/yaml.v3"
)

// Disclaimer is printed with every rendering.
const Disclaimer = "This is a simulated analysis for demonstration only. It is not medical advice."

// Band is a coarse confidence level used for colouring.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	default:
		return "low"
	}
}

// ConfidenceBand maps a confidence score to its band.
func ConfidenceBand(score float64) Band {
	switch {
	case score >= 0.9:
		return BandHigh
	case score >= 0.7:
		return BandMedium
	default:
		return BandLow
	}
}

// Percent formats a confidence score as a whole percentage.
func Percent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}

// Summary renders r as plain text.
func Summary(r *analysis.Report) string {
	var b strings.Builder

	sa := r.SymptomAnalysis
	fmt.Fprintln(&b, "Symptom analysis")
	fmt.Fprintln(&b, "----------------")
	fmt.Fprintln(&b, "Possible conditions:")
	for _, c := range sa.Conditions {
		fmt.Fprintf(&b, "  - %s\n", c)
	}
	fmt.Fprintf(&b, "Confidence: %s (%s)\n", Percent(sa.Confidence), ConfidenceBand(sa.Confidence))
	fmt.Fprintf(&b, "Urgency:    %s\n", sa.Urgency)
	if len(sa.MatchedKeywords) > 0 {
		fmt.Fprintf(&b, "Matched:    %s\n", strings.Join(sa.MatchedKeywords, ", "))
	}

	if ia := r.ImageAnalysis; ia != nil {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Image analysis (%s)\n", r.Category)
		fmt.Fprintln(&b, "--------------")
		fmt.Fprintf(&b, "Finding:    %s\n", ia.Finding)
		fmt.Fprintf(&b, "Confidence: %s (%s)\n", Percent(ia.Confidence), ConfidenceBand(ia.Confidence))
		if len(ia.Recommendations) > 0 {
			fmt.Fprintln(&b, "Recommendations:")
			for _, rec := range ia.Recommendations {
				fmt.Fprintf(&b, "  - %s\n", rec)
			}
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Report %s, %s\n", r.ID, r.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(&b, Disclaimer)
	return b.String()
}

// WriteYAML writes r to path, creating parent directories.
func WriteYAML(r *analysis.Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadYAML loads a report written by WriteYAML.
func ReadYAML(path string) (*analysis.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r analysis.Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
