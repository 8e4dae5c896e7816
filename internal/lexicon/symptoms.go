// Package lexicon holds the static lookup tables behind the mock diagnosis:
// symptom keywords to candidate conditions, and image categories to canned findings.
package lexicon

import (
	"strings"

	"golang.org/x/text/cases"
)

// FallbackCondition is reported when no keyword matches the symptom text.
const FallbackCondition = "Non-specific symptoms detected"

// FallbackConfidence is the confidence of the fallback record.
const FallbackConfidence = 0.5

// SymptomRecord maps one keyword to its candidate conditions.
type SymptomRecord struct {
	Keyword    string   `yaml:"keyword"`
	Conditions []string `yaml:"conditions"`
	Confidence float64  `yaml:"confidence"`
	Urgency    Urgency  `yaml:"urgency"`
}

// SymptomAnalysis is the merged result of a lexicon lookup.
type SymptomAnalysis struct {
	Conditions      []string `yaml:"conditions"`
	Confidence      float64  `yaml:"confidence"`
	Urgency         Urgency  `yaml:"urgency"`
	MatchedKeywords []string `yaml:"matched_keywords,omitempty"`
}

// Fallback returns a fresh copy of the record used when nothing matches.
func Fallback() SymptomAnalysis {
	return SymptomAnalysis{
		Conditions: []string{FallbackCondition},
		Confidence: FallbackConfidence,
		Urgency:    UrgencyLow,
	}
}

// SymptomLexicon is an ordered, immutable keyword table.
type SymptomLexicon struct {
	records []SymptomRecord
}

// DefaultSymptomRecords returns the built-in keyword table in lookup order.
func DefaultSymptomRecords() []SymptomRecord {
	return []SymptomRecord{
		{
			Keyword:    "headache",
			Conditions: []string{"Migraine", "Tension Headache", "Sinusitis"},
			Confidence: 0.85,
			Urgency:    UrgencyLow,
		},
		{
			Keyword:    "chest pain",
			Conditions: []string{"Angina", "Gastric Reflux", "Muscle Strain"},
			Confidence: 0.92,
			Urgency:    UrgencyHigh,
		},
		{
			Keyword:    "cough",
			Conditions: []string{"Upper Respiratory Infection", "Bronchitis", "COVID-19"},
			Confidence: 0.88,
			Urgency:    UrgencyMedium,
		},
		{
			Keyword:    "fever",
			Conditions: []string{"Viral Infection", "Bacterial Infection", "Inflammation"},
			Confidence: 0.87,
			Urgency:    UrgencyMedium,
		},
	}
}

// NewSymptomLexicon builds a lexicon from records. Records are copied and
// keywords are folded once so lookups only fold the input text.
func NewSymptomLexicon(records []SymptomRecord) *SymptomLexicon {
	l := &SymptomLexicon{records: make([]SymptomRecord, len(records))}
	for i, r := range records {
		l.records[i] = SymptomRecord{
			Keyword:    normalize(r.Keyword),
			Conditions: append([]string(nil), r.Conditions...),
			Confidence: r.Confidence,
			Urgency:    r.Urgency,
		}
	}
	return l
}

// DefaultSymptomLexicon returns the lexicon built from DefaultSymptomRecords.
func DefaultSymptomLexicon() *SymptomLexicon {
	return NewSymptomLexicon(DefaultSymptomRecords())
}

// Records returns a copy of the table in lookup order.
func (l *SymptomLexicon) Records() []SymptomRecord {
	out := make([]SymptomRecord, len(l.records))
	for i, r := range l.records {
		r.Conditions = append([]string(nil), r.Conditions...)
		out[i] = r
	}
	return out
}

// Lookup matches every keyword contained in text and merges the hits.
// Conditions are concatenated in table order without deduplication, the
// confidence is the maximum over hits and urgency only ever escalates.
func (l *SymptomLexicon) Lookup(text string) SymptomAnalysis {
	normalized := normalize(text)

	var result SymptomAnalysis
	for _, r := range l.records {
		if r.Keyword == "" || !strings.Contains(normalized, r.Keyword) {
			continue
		}
		result.Conditions = append(result.Conditions, r.Conditions...)
		if r.Confidence > result.Confidence {
			result.Confidence = r.Confidence
		}
		result.Urgency = MaxUrgency(result.Urgency, r.Urgency)
		result.MatchedKeywords = append(result.MatchedKeywords, r.Keyword)
	}

	if len(result.Conditions) == 0 {
		return Fallback()
	}
	return result
}

// normalize case-folds s. A Caser is stateful, so each call gets its own.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
