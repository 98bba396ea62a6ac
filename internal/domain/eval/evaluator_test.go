package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checklight/checklight/internal/domain"
	"github.com/checklight/checklight/internal/domain/eval"
)

func evaluate(t *testing.T, criterion, document, basePath string) (bool, []domain.Evidence) {
	t.Helper()
	node, err := eval.Parse(criterion)
	require.NoError(t, err)
	return eval.Evaluate(node, mustParse(t, document), basePath)
}

func TestEvaluate_ComparisonTrue(t *testing.T) {
	ok, evidence := evaluate(t,
		"metrics.code_quality.build_success == true",
		`{"metrics":{"code_quality":{"build_success":true}}}`, "")

	assert.True(t, ok)
	require.Len(t, evidence, 1)
	assert.Equal(t, 0.95, evidence[0].Confidence)
	assert.Equal(t, "metrics.code_quality.build_success", evidence[0].SourcePath)
	assert.Equal(t, "true", evidence[0].RawData)
}

func TestEvaluate_ComparisonFalse(t *testing.T) {
	ok, evidence := evaluate(t,
		"metrics.code_quality.build_success == true",
		`{"metrics":{"code_quality":{"build_success":false}}}`, "")

	assert.False(t, ok)
	require.Len(t, evidence, 1)
	assert.Equal(t, 0.85, evidence[0].Confidence)
}

func TestEvaluate_ComparisonAgainstAbsentFieldFails(t *testing.T) {
	ok, evidence := evaluate(t, "build_success == true", `{}`, "")

	assert.False(t, ok)
	require.Len(t, evidence, 1)
	assert.Equal(t, "absent", evidence[0].RawData)
}

func TestEvaluate_NotEqual(t *testing.T) {
	ok, _ := evaluate(t, `tool != "none"`, `{"tool":"golangci-lint"}`, "")
	assert.True(t, ok)

	ok, _ = evaluate(t, `tool != "golangci-lint"`, `{"tool":"golangci-lint"}`, "")
	assert.False(t, ok)
}

func TestEvaluate_NumericOrdering(t *testing.T) {
	ok, _ := evaluate(t, "coverage >= 80", `{"coverage":82.5}`, "")
	assert.True(t, ok)

	ok, _ = evaluate(t, "coverage >= 80", `{"coverage":71}`, "")
	assert.False(t, ok)
}

func TestEvaluate_NumericCoercionOfStringValue(t *testing.T) {
	ok, _ := evaluate(t, "coverage > 80", `{"coverage":"82.5"}`, "")
	assert.True(t, ok)
}

func TestEvaluate_CoercionFailureFailsComparisonNotEvaluation(t *testing.T) {
	ok, evidence := evaluate(t, "coverage > 80", `{"coverage":"not-a-number"}`, "")
	assert.False(t, ok)
	assert.Len(t, evidence, 1)
}

func TestEvaluate_Existence(t *testing.T) {
	ok, evidence := evaluate(t, "lint_results", `{"lint_results":{"tool":"x"}}`, "")
	assert.True(t, ok)
	require.Len(t, evidence, 1)
	assert.Equal(t, 0.9, evidence[0].Confidence)

	ok, evidence = evaluate(t, "lint_results", `{}`, "")
	assert.False(t, ok)
	require.Len(t, evidence, 1)
	assert.Equal(t, 0.9, evidence[0].Confidence)
}

func TestEvaluate_ExistenceFailsOnExplicitNull(t *testing.T) {
	ok, _ := evaluate(t, "lint_results", `{"lint_results":null}`, "")
	assert.False(t, ok)
}

func TestEvaluate_BoolLiteralProducesNoEvidence(t *testing.T) {
	ok, evidence := evaluate(t, "true", `{}`, "")
	assert.True(t, ok)
	assert.Empty(t, evidence)
}

func TestEvaluate_AndCollectsEvidenceFromBothBranches(t *testing.T) {
	ok, evidence := evaluate(t,
		"a == 1 AND b == 2",
		`{"a":0,"b":2}`, "")

	assert.False(t, ok)
	// No short-circuit: the failing left branch must not suppress the right.
	assert.Len(t, evidence, 2)
}

func TestEvaluate_OrCollectsEvidenceFromBothBranches(t *testing.T) {
	ok, evidence := evaluate(t,
		"a == 1 OR b == 2",
		`{"a":1,"b":0}`, "")

	assert.True(t, ok)
	assert.Len(t, evidence, 2)
}

func TestEvaluate_TruthTable(t *testing.T) {
	doc := `{"yes":true,"no":false}`

	cases := []struct {
		expr string
		want bool
	}{
		{"yes == true AND no == false", true},
		{"yes == true AND no == true", false},
		{"yes == false OR no == false", true},
		{"yes == false OR no == true", false},
		{"yes == true BUT no == false", true},
	}
	for _, tc := range cases {
		ok, _ := evaluate(t, tc.expr, doc, "")
		assert.Equal(t, tc.want, ok, tc.expr)
	}
}

func TestEvaluate_ParenthesesGrouping(t *testing.T) {
	doc := `{"a":false,"b":true,"c":true}`

	ok, _ := evaluate(t, "(a == true OR b == true) AND c == true", doc, "")
	assert.True(t, ok)

	doc = `{"a":false,"b":true,"c":false}`
	ok, _ = evaluate(t, "(a == true OR b == true) AND c == true", doc, "")
	assert.False(t, ok)
}

func TestEvaluate_LengthComparison(t *testing.T) {
	ok, evidence := evaluate(t, "issues.length == 0", `{"issues":[1,2]}`, "")

	assert.False(t, ok)
	require.Len(t, evidence, 1)
	assert.Contains(t, evidence[0].Description, "2")
	assert.Equal(t, "2", evidence[0].RawData)
}

func TestEvaluate_BasePathPrefixesFields(t *testing.T) {
	ok, evidence := evaluate(t, "build_success == true",
		`{"metrics":{"code_quality":{"build_success":true}}}`,
		"$.metrics.code_quality")

	assert.True(t, ok)
	require.Len(t, evidence, 1)
	assert.Equal(t, "metrics.code_quality.build_success", evidence[0].SourcePath)
}

func TestEvaluate_BasePathOverlapSpliced(t *testing.T) {
	ok, _ := evaluate(t, `lint_results.tool_used == "golangci-lint"`,
		`{"metrics":{"code_quality":{"lint_results":{"tool_used":"golangci-lint"}}}}`,
		"$.metrics.code_quality.lint_results")

	assert.True(t, ok)
}

func TestEvaluate_ArrayLiteralEquality(t *testing.T) {
	ok, _ := evaluate(t, "tags == [1,2]", `{"tags":[1,2]}`, "")
	assert.True(t, ok)

	ok, _ = evaluate(t, "tags == [1,2]", `{"tags":[2,1]}`, "")
	assert.False(t, ok)
}

func TestEvaluate_NullLiteral(t *testing.T) {
	ok, _ := evaluate(t, "value == null", `{"value":null}`, "")
	assert.True(t, ok)

	ok, _ = evaluate(t, "value == null", `{"value":3}`, "")
	assert.False(t, ok)
}

func TestEvaluate_SourceTypeInference(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"metrics.code_quality.lint_results.errors", domain.SourceLintOutput},
		{"metrics.testing.coverage", domain.SourceTestResult},
		{"metrics.security_audit.vulnerabilities", domain.SourceSecurityAudit},
		{"metrics.documentation.readme_present", domain.SourceDocumentationAnalysis},
		{"metrics.build.artifacts", domain.SourceFileCheck},
	}
	for _, tc := range cases {
		node, err := eval.Parse(tc.path)
		require.NoError(t, err)
		_, evidence := eval.Evaluate(node, mustParse(t, `{}`), "")
		require.Len(t, evidence, 1, tc.path)
		assert.Equal(t, tc.want, evidence[0].SourceType, tc.path)
	}
}
