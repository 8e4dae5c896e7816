package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables bundles the two lookup tables used by an analysis.
type Tables struct {
	Symptoms *SymptomLexicon
	Images   *ImageFindingTable
}

// DefaultTables returns the built-in lexicon and finding table.
func DefaultTables() *Tables {
	return &Tables{
		Symptoms: DefaultSymptomLexicon(),
		Images:   DefaultImageFindingTable(),
	}
}

// tablesFile is the on-disk layout of a custom tables file.
type tablesFile struct {
	Symptoms []SymptomRecord         `yaml:"symptoms"`
	Images   map[string]ImageFinding `yaml:"images"`
}

// LoadTablesFromYAML reads custom tables from path. A section that is absent
// from the file keeps its built-in default.
func LoadTablesFromYAML(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file: %w", err)
	}
	return ParseTablesYAML(data)
}

// ParseTablesYAML parses and validates tables from YAML bytes.
func ParseTablesYAML(data []byte) (*Tables, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing tables YAML: %w", err)
	}

	tables := DefaultTables()

	if len(f.Symptoms) > 0 {
		for i, r := range f.Symptoms {
			if err := validateRecord(r); err != nil {
				return nil, fmt.Errorf("symptoms[%d]: %w", i, err)
			}
		}
		tables.Symptoms = NewSymptomLexicon(f.Symptoms)
	}

	if len(f.Images) > 0 {
		findings := make(map[Category]ImageFinding, len(f.Images))
		for name, finding := range f.Images {
			c, err := ParseCategory(name)
			if err != nil {
				return nil, fmt.Errorf("images: %w", err)
			}
			if finding.Finding == "" {
				return nil, fmt.Errorf("images[%s]: finding is required", c)
			}
			if err := validateConfidence(finding.Confidence); err != nil {
				return nil, fmt.Errorf("images[%s]: %w", c, err)
			}
			findings[c] = finding
		}
		tables.Images = NewImageFindingTable(findings)
	}

	return tables, nil
}

func validateRecord(r SymptomRecord) error {
	if normalize(r.Keyword) == "" {
		return fmt.Errorf("keyword is required")
	}
	if len(r.Conditions) == 0 {
		return fmt.Errorf("keyword %q has no conditions", r.Keyword)
	}
	return validateConfidence(r.Confidence)
}

func validateConfidence(c float64) error {
	if c < 0 || c > 1 {
		return fmt.Errorf("confidence must be within [0,1], got %v", c)
	}
	return nil
}
