package eval

import (
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/checklight/checklight/internal/domain"
)

// EvaluateChecklist scores every checklist item against one metrics
// document. Each item's evaluation is a pure function of the immutable
// inputs, so items are classified concurrently, one goroutine per item,
// and merged back in definition order to keep the output deterministic.
//
// A criterion that fails to parse never aborts the run: the item is forced
// to unmet with score 0 and a warning is recorded, so every input item
// always yields exactly one output item.
func EvaluateChecklist(items []domain.ChecklistItem, doc Document) domain.EvaluationResult {
	results := make([]domain.ChecklistItemResult, len(items))
	warnings := make([]string, len(items))

	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			status, evidence, err := Classify(item, doc)
			if err != nil {
				warnings[i] = fmt.Sprintf("Error evaluating %s: %v", item.ID, err)
				status = domain.StatusUnmet
				evidence = nil
			}
			results[i] = domain.ChecklistItemResult{
				ID:        item.ID,
				Name:      item.Name,
				Dimension: item.Dimension,
				MaxPoints: item.MaxPoints,
				Status:    status,
				Score:     ScoreFor(status, item.MaxPoints),
				Evidence:  evidence,
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail; evaluation errors become warnings

	var total float64
	for _, r := range results {
		total += r.Score
	}

	var runWarnings []string
	for _, w := range warnings {
		if w != "" {
			runWarnings = append(runWarnings, w)
		}
	}

	return domain.EvaluationResult{
		Items:               results,
		TotalScore:          total,
		MaxPossibleScore:    domain.TotalPoints,
		ScorePercentage:     total / float64(domain.TotalPoints) * 100,
		CategoryBreakdowns:  BuildBreakdowns(results),
		Warnings:            runWarnings,
		MetricsCompleteness: Completeness(doc),
	}
}

// Completeness reports the percentage of the three top-level metric
// sections (code_quality, testing, documentation under the document's
// metrics root) that are present and non-empty.
func Completeness(doc Document) float64 {
	root := doc.root
	if m := root.Get("metrics"); m.Exists() {
		root = m
	}

	present := 0
	for _, dim := range domain.ValidDimensions {
		if res := root.Get(string(dim)); sectionNonEmpty(res) {
			present++
		}
	}
	return float64(present) / float64(len(domain.ValidDimensions)) * 100
}

func sectionNonEmpty(res gjson.Result) bool {
	switch {
	case !res.Exists() || res.Type == gjson.Null:
		return false
	case res.IsObject():
		return len(res.Map()) > 0
	case res.IsArray():
		return len(res.Array()) > 0
	default:
		return true
	}
}
