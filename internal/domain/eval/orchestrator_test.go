package eval_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checklight/checklight/internal/domain"
	"github.com/checklight/checklight/internal/domain/eval"
)

func buildChecklist() []domain.ChecklistItem {
	return []domain.ChecklistItem{
		{
			ID:        "cq_build",
			Name:      "Build succeeds",
			Dimension: domain.DimensionCodeQuality,
			MaxPoints: 10,
			EvaluationCriteria: domain.EvaluationCriteria{
				Met: []string{"metrics.code_quality.build_success == true"},
			},
		},
		{
			ID:        "t_coverage",
			Name:      "Test coverage",
			Dimension: domain.DimensionTesting,
			MaxPoints: 15,
			EvaluationCriteria: domain.EvaluationCriteria{
				Met:     []string{"metrics.testing.coverage >= 80"},
				Partial: []string{"metrics.testing.coverage >= 50"},
			},
		},
		{
			ID:        "d_readme",
			Name:      "README present",
			Dimension: domain.DimensionDocumentation,
			MaxPoints: 4,
			EvaluationCriteria: domain.EvaluationCriteria{
				Met: []string{"metrics.documentation.readme_present == true"},
			},
		},
	}
}

const fullDocument = `{
	"metrics": {
		"code_quality": {"build_success": true},
		"testing": {"coverage": 65},
		"documentation": {"readme_present": false}
	}
}`

func TestEvaluateChecklist_EndToEnd(t *testing.T) {
	result := eval.EvaluateChecklist(buildChecklist(), mustParse(t, fullDocument))

	require.Len(t, result.Items, 3)

	assert.Equal(t, domain.StatusMet, result.Items[0].Status)
	assert.Equal(t, 10.0, result.Items[0].Score)

	assert.Equal(t, domain.StatusPartial, result.Items[1].Status)
	assert.Equal(t, 7.5, result.Items[1].Score)

	assert.Equal(t, domain.StatusUnmet, result.Items[2].Status)
	assert.Equal(t, 0.0, result.Items[2].Score)

	assert.Equal(t, 17.5, result.TotalScore)
	assert.Equal(t, 100, result.MaxPossibleScore)
	assert.InDelta(t, 17.5, result.ScorePercentage, 1e-9)
	assert.InDelta(t, 100.0, result.MetricsCompleteness, 1e-9)
	assert.Empty(t, result.Warnings)
}

func TestEvaluateChecklist_ItemMet(t *testing.T) {
	items := []domain.ChecklistItem{{
		ID:        "cq_build",
		Dimension: domain.DimensionCodeQuality,
		MaxPoints: 10,
		EvaluationCriteria: domain.EvaluationCriteria{
			Met: []string{"metrics.code_quality.build_success == true"},
		},
	}}
	doc := mustParse(t, `{"metrics":{"code_quality":{"build_success":true}}}`)

	result := eval.EvaluateChecklist(items, doc)

	require.Len(t, result.Items, 1)
	assert.Equal(t, domain.StatusMet, result.Items[0].Status)
	assert.Equal(t, 10.0, result.Items[0].Score)
}

func TestEvaluateChecklist_ItemUnmetWithSyntheticEvidence(t *testing.T) {
	items := []domain.ChecklistItem{{
		ID:        "cq_build",
		Dimension: domain.DimensionCodeQuality,
		MaxPoints: 10,
		EvaluationCriteria: domain.EvaluationCriteria{
			Met: []string{"metrics.code_quality.build_success == true"},
		},
	}}
	doc := mustParse(t, `{"metrics":{"code_quality":{"build_success":false}}}`)

	result := eval.EvaluateChecklist(items, doc)

	require.Len(t, result.Items, 1)
	assert.Equal(t, domain.StatusUnmet, result.Items[0].Status)
	assert.Equal(t, 0.0, result.Items[0].Score)
	require.Len(t, result.Items[0].Evidence, 1)
	assert.Equal(t, domain.SourceFileCheck, result.Items[0].Evidence[0].SourceType)
}

func TestEvaluateChecklist_MalformedCriterionBecomesWarning(t *testing.T) {
	items := buildChecklist()
	items[1].EvaluationCriteria.Met = []string{"coverage AND ("}

	result := eval.EvaluateChecklist(items, mustParse(t, fullDocument))

	// The bad item is forced to unmet; the run still completes with one
	// result per input item.
	require.Len(t, result.Items, 3)
	assert.Equal(t, domain.StatusUnmet, result.Items[1].Status)
	assert.Equal(t, 0.0, result.Items[1].Score)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "t_coverage")
	assert.Contains(t, result.Warnings[0], "Error evaluating")

	// Other items are unaffected.
	assert.Equal(t, domain.StatusMet, result.Items[0].Status)
}

func TestEvaluateChecklist_Idempotent(t *testing.T) {
	doc := mustParse(t, fullDocument)
	items := buildChecklist()

	first := eval.EvaluateChecklist(items, doc)
	second := eval.EvaluateChecklist(items, doc)

	assert.Equal(t, first, second)
}

func TestEvaluateChecklist_DefinitionOrderPreserved(t *testing.T) {
	var items []domain.ChecklistItem
	for i := 0; i < 20; i++ {
		items = append(items, domain.ChecklistItem{
			ID:        fmt.Sprintf("item_%02d", i),
			Dimension: domain.DimensionCodeQuality,
			MaxPoints: 4,
			EvaluationCriteria: domain.EvaluationCriteria{
				Met: []string{"true"},
			},
		})
	}

	result := eval.EvaluateChecklist(items, mustParse(t, `{}`))

	require.Len(t, result.Items, len(items))
	for i, item := range result.Items {
		assert.Equal(t, fmt.Sprintf("item_%02d", i), item.ID)
	}
}

func TestEvaluateChecklist_TotalIsSumOfItemScores(t *testing.T) {
	result := eval.EvaluateChecklist(buildChecklist(), mustParse(t, fullDocument))

	var sum float64
	for _, item := range result.Items {
		sum += item.Score
	}
	assert.Equal(t, sum, result.TotalScore)
	assert.InDelta(t, sum/100*100, result.ScorePercentage, 1e-9)
}

func TestCompleteness_AllSectionsPresent(t *testing.T) {
	doc := mustParse(t, fullDocument)
	assert.InDelta(t, 100.0, eval.Completeness(doc), 1e-9)
}

func TestCompleteness_MissingSection(t *testing.T) {
	doc := mustParse(t, `{"metrics":{"code_quality":{"a":1},"testing":{"b":2}}}`)
	assert.InDelta(t, 200.0/3, eval.Completeness(doc), 1e-6)
}

func TestCompleteness_EmptySectionDoesNotCount(t *testing.T) {
	doc := mustParse(t, `{"metrics":{"code_quality":{},"testing":null,"documentation":{"readme":true}}}`)
	assert.InDelta(t, 100.0/3, eval.Completeness(doc), 1e-6)
}

func TestCompleteness_SectionsAtDocumentRoot(t *testing.T) {
	doc := mustParse(t, `{"code_quality":{"a":1},"testing":{"b":1},"documentation":{"c":1}}`)
	assert.InDelta(t, 100.0, eval.Completeness(doc), 1e-9)
}
