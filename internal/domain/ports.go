package domain

import "context"

// ChecklistLoader loads and validates a checklist definition file.
type ChecklistLoader interface {
	Load(path string) ([]ChecklistItem, error)
}

// GitInfo reports repository metadata for report stamping.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// Narrator turns an evaluation result into a short prose summary.
type Narrator interface {
	Summarize(ctx context.Context, result EvaluationResult) (string, error)
}

// ReportStore persists a report and its evidence artifacts.
type ReportStore interface {
	Save(projectPath string, report Report) error
}
