package domain

import "time"

// EvaluationStatus is the classification of a single checklist item.
type EvaluationStatus string

const (
	StatusMet     EvaluationStatus = "met"
	StatusPartial EvaluationStatus = "partial"
	StatusUnmet   EvaluationStatus = "unmet"
)

// Evidence source types.
const (
	SourceLintOutput            = "lint_output"
	SourceTestResult            = "test_result"
	SourceFileCheck             = "file_check"
	SourceSecurityAudit         = "security_audit"
	SourceDocumentationAnalysis = "documentation_analysis"
)

// Evidence records why a criterion evaluated the way it did.
type Evidence struct {
	SourceType  string  `json:"source_type"`
	SourcePath  string  `json:"source_path"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	RawData     string  `json:"raw_data,omitempty"`
}

// ChecklistItemResult is the evaluated outcome of one checklist item.
// Score is a pure function of Status and MaxPoints.
type ChecklistItemResult struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Dimension Dimension        `json:"dimension"`
	MaxPoints int              `json:"max_points"`
	Status    EvaluationStatus `json:"status"`
	Score     float64          `json:"score"`
	Evidence  []Evidence       `json:"evidence,omitempty"`
}

// CategoryBreakdown aggregates scores for all items sharing a dimension.
type CategoryBreakdown struct {
	ItemsCount   int     `json:"items_count"`
	MaxPoints    int     `json:"max_points"`
	ActualPoints float64 `json:"actual_points"`
	Percentage   float64 `json:"percentage"`
}

// EvaluationResult is the full output of one evaluation run: exactly one
// result per input item, plus derived totals and run-level diagnostics.
type EvaluationResult struct {
	Items               []ChecklistItemResult           `json:"items"`
	TotalScore          float64                         `json:"total_score"`
	MaxPossibleScore    int                             `json:"max_possible_score"`
	ScorePercentage     float64                         `json:"score_percentage"`
	CategoryBreakdowns  map[Dimension]CategoryBreakdown `json:"category_breakdowns"`
	Warnings            []string                        `json:"warnings,omitempty"`
	MetricsCompleteness float64                         `json:"metrics_completeness"`
}

// Grade maps the score percentage to a letter grade.
func (r EvaluationResult) Grade() string { return GradeFor(r.ScorePercentage) }

func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}

// Report wraps an evaluation result with run metadata populated by the
// caller. The result itself stays idempotent; wall-clock and repository
// context live only here.
type Report struct {
	Result     EvaluationResult `json:"result"`
	RepoPath   string           `json:"repo_path,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
	CommitHash string           `json:"commit_hash,omitempty"`
	Summary    string           `json:"summary,omitempty"`
}
