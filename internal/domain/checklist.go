package domain

import "fmt"

// Dimension is the top-level category a checklist item belongs to.
type Dimension string

const (
	DimensionCodeQuality   Dimension = "code_quality"
	DimensionTesting       Dimension = "testing"
	DimensionDocumentation Dimension = "documentation"
)

// ValidDimensions enumerates all recognized dimensions, in report order.
var ValidDimensions = []Dimension{
	DimensionCodeQuality,
	DimensionTesting,
	DimensionDocumentation,
}

// ValidMaxPoints enumerates the point values a checklist item may carry.
var ValidMaxPoints = []int{4, 6, 7, 8, 10, 12, 15}

// TotalPoints is what all max_points in a checklist must sum to.
const TotalPoints = 100

// EvaluationCriteria holds the criterion expressions for each target status.
// Groups are tried in order: met first, then partial; the unmet list is
// informational and never evaluated.
type EvaluationCriteria struct {
	Met     []string `yaml:"met"     json:"met"`
	Partial []string `yaml:"partial" json:"partial"`
	Unmet   []string `yaml:"unmet"   json:"unmet"`
}

// MetricsMapping ties an item to the region of the metrics document it reads.
// RequiredFields is informational only; resolution works field by field.
type MetricsMapping struct {
	SourcePath     string   `yaml:"source_path"     json:"source_path"`
	RequiredFields []string `yaml:"required_fields" json:"required_fields,omitempty"`
}

// ChecklistItem is one scored criterion loaded from the checklist definition.
// Immutable once loaded.
type ChecklistItem struct {
	ID                  string                        `yaml:"id"                   json:"id"`
	Name                string                        `yaml:"name"                 json:"name"`
	Dimension           Dimension                     `yaml:"dimension"            json:"dimension"`
	MaxPoints           int                           `yaml:"max_points"           json:"max_points"`
	Description         string                        `yaml:"description"          json:"description,omitempty"`
	EvaluationCriteria  EvaluationCriteria            `yaml:"evaluation_criteria"  json:"evaluation_criteria"`
	MetricsMapping      MetricsMapping                `yaml:"metrics_mapping"      json:"metrics_mapping"`
	LanguageAdaptations map[string]EvaluationCriteria `yaml:"language_adaptations,omitempty" json:"language_adaptations,omitempty"`
}

// ValidateChecklist checks definition-level invariants and returns a
// descriptive error. These are configuration errors: they fail the run
// before any evaluation starts.
func ValidateChecklist(items []ChecklistItem) error {
	if len(items) == 0 {
		return fmt.Errorf("checklist has no items")
	}

	seen := make(map[string]bool, len(items))
	sum := 0

	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("checklist item with empty id")
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate checklist item id %q", item.ID)
		}
		seen[item.ID] = true

		if !isValidDimension(item.Dimension) {
			return fmt.Errorf("item %q: unknown dimension %q (valid: code_quality, testing, documentation)", item.ID, item.Dimension)
		}
		if !isValidMaxPoints(item.MaxPoints) {
			return fmt.Errorf("item %q: max_points %d not in allowed set %v", item.ID, item.MaxPoints, ValidMaxPoints)
		}
		sum += item.MaxPoints
	}

	if sum != TotalPoints {
		return fmt.Errorf("checklist max_points sum to %d (must be exactly %d)", sum, TotalPoints)
	}

	return nil
}

// ApplyLanguage returns a copy of items with evaluation criteria swapped for
// the given language where an adaptation exists. Items without an adaptation
// keep their default criteria. The core engine never consults adaptations;
// this selection happens before evaluation.
func ApplyLanguage(items []ChecklistItem, lang string) []ChecklistItem {
	if lang == "" {
		return items
	}

	adapted := make([]ChecklistItem, len(items))
	copy(adapted, items)

	for i, item := range adapted {
		if criteria, ok := item.LanguageAdaptations[lang]; ok {
			adapted[i].EvaluationCriteria = criteria
		}
	}

	return adapted
}

func isValidDimension(d Dimension) bool {
	for _, valid := range ValidDimensions {
		if d == valid {
			return true
		}
	}
	return false
}

func isValidMaxPoints(points int) bool {
	for _, valid := range ValidMaxPoints {
		if points == valid {
			return true
		}
	}
	return false
}
