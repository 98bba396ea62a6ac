package application

import (
	"fmt"
	"sort"

	"github.com/checklight/checklight/internal/domain"
)

// ValidateService checks a checklist definition without running an
// evaluation. Loading already enforces the definition invariants; this
// service summarizes what was loaded.
type ValidateService struct {
	checklists domain.ChecklistLoader
}

func NewValidateService(checklists domain.ChecklistLoader) *ValidateService {
	return &ValidateService{checklists: checklists}
}

// ChecklistSummary describes a valid checklist definition.
type ChecklistSummary struct {
	Items           int                      `json:"items"`
	PointsTotal     int                      `json:"points_total"`
	PointsByDim     map[domain.Dimension]int `json:"points_by_dimension"`
	ItemsByDim      map[domain.Dimension]int `json:"items_by_dimension"`
	AdaptedLangs    []string                 `json:"adapted_languages,omitempty"`
	ChecklistSource string                   `json:"checklist_source"`
}

func (s *ValidateService) Validate(path string) (*ChecklistSummary, error) {
	items, err := s.checklists.Load(path)
	if err != nil {
		return nil, fmt.Errorf("validating checklist: %w", err)
	}

	summary := &ChecklistSummary{
		Items:           len(items),
		PointsByDim:     make(map[domain.Dimension]int),
		ItemsByDim:      make(map[domain.Dimension]int),
		ChecklistSource: path,
	}

	langs := make(map[string]bool)
	for _, item := range items {
		summary.PointsTotal += item.MaxPoints
		summary.PointsByDim[item.Dimension] += item.MaxPoints
		summary.ItemsByDim[item.Dimension]++
		for lang := range item.LanguageAdaptations {
			langs[lang] = true
		}
	}
	for lang := range langs {
		summary.AdaptedLangs = append(summary.AdaptedLangs, lang)
	}
	sort.Strings(summary.AdaptedLangs)

	return summary, nil
}
