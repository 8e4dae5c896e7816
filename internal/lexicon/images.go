package lexicon

import (
	"fmt"
	"strings"
)

// Category is the body region an uploaded image belongs to.
type Category string

const (
	Chest Category = "chest"
	Brain Category = "brain"
)

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{Chest, Brain}
}

// IsValid reports whether c is a supported category.
func (c Category) IsValid() bool {
	for _, valid := range AllCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// ParseCategory trims and lower-cases s before validating it.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", &UnknownCategoryError{Category: c}
	}
	return c, nil
}

// UnknownCategoryError is returned for categories outside the finding table.
type UnknownCategoryError struct {
	Category Category
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown image category %q (valid: %v)", string(e.Category), AllCategories())
}

// ImageFinding is the canned result for one image category.
type ImageFinding struct {
	Finding         string   `yaml:"finding"`
	Confidence      float64  `yaml:"confidence"`
	Recommendations []string `yaml:"recommendations"`
}

// ImageFindingTable maps categories to findings.
type ImageFindingTable struct {
	findings map[Category]ImageFinding
}

// DefaultImageFindings returns the built-in findings.
func DefaultImageFindings() map[Category]ImageFinding {
	return map[Category]ImageFinding{
		Chest: {
			Finding:         "Potential opacity in right upper lobe",
			Confidence:      0.85,
			Recommendations: []string{"Follow-up chest X-ray", "Pulmonary function test"},
		},
		Brain: {
			Finding:         "No significant abnormalities detected",
			Confidence:      0.92,
			Recommendations: []string{"Clinical correlation recommended"},
		},
	}
}

// NewImageFindingTable copies findings into a new table.
func NewImageFindingTable(findings map[Category]ImageFinding) *ImageFindingTable {
	t := &ImageFindingTable{findings: make(map[Category]ImageFinding, len(findings))}
	for c, f := range findings {
		f.Recommendations = append([]string(nil), f.Recommendations...)
		t.findings[c] = f
	}
	return t
}

// DefaultImageFindingTable returns the table built from DefaultImageFindings.
func DefaultImageFindingTable() *ImageFindingTable {
	return NewImageFindingTable(DefaultImageFindings())
}

// Lookup returns a copy of the finding for category.
func (t *ImageFindingTable) Lookup(category Category) (ImageFinding, error) {
	f, ok := t.findings[category]
	if !ok {
		return ImageFinding{}, &UnknownCategoryError{Category: category}
	}
	f.Recommendations = append([]string(nil), f.Recommendations...)
	return f, nil
}
