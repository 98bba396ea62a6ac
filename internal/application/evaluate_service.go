package application

import (
	"context"
	"fmt"
	"time"

	"github.com/checklight/checklight/internal/domain"
	"github.com/checklight/checklight/internal/domain/eval"
)

// MetricsLoader reads a metrics document produced by upstream tooling.
type MetricsLoader interface {
	Load(path string) (eval.Document, error)
}

// EvaluateService orchestrates the evaluation pipeline:
// load checklist → select language adaptations → load metrics document →
// evaluate → wrap in a report envelope.
type EvaluateService struct {
	checklists domain.ChecklistLoader
	metrics    MetricsLoader
	git        domain.GitInfo
	narrator   domain.Narrator
}

func NewEvaluateService(checklists domain.ChecklistLoader, metrics MetricsLoader, git domain.GitInfo) *EvaluateService {
	return &EvaluateService{
		checklists: checklists,
		metrics:    metrics,
		git:        git,
	}
}

// WithNarrator attaches an optional prose summarizer. Narration failure is
// never fatal to an evaluation.
func (s *EvaluateService) WithNarrator(n domain.Narrator) *EvaluateService {
	s.narrator = n
	return s
}

// EvaluateOptions selects the inputs for one evaluation run.
type EvaluateOptions struct {
	ChecklistPath string
	MetricsPath   string
	RepoPath      string
	Language      string
}

func (s *EvaluateService) Evaluate(ctx context.Context, opts EvaluateOptions) (*domain.Report, error) {
	items, err := s.checklists.Load(opts.ChecklistPath)
	if err != nil {
		return nil, fmt.Errorf("loading checklist: %w", err)
	}

	if opts.Language != "" {
		items = domain.ApplyLanguage(items, opts.Language)
	}

	doc, err := s.metrics.Load(opts.MetricsPath)
	if err != nil {
		return nil, fmt.Errorf("loading metrics document: %w", err)
	}

	result := eval.EvaluateChecklist(items, doc)

	report := &domain.Report{
		Result:    result,
		RepoPath:  opts.RepoPath,
		Timestamp: time.Now(),
	}

	if s.git != nil && opts.RepoPath != "" && s.git.IsGitRepo(opts.RepoPath) {
		if hash, err := s.git.CommitHash(opts.RepoPath); err == nil {
			report.CommitHash = hash
		}
	}

	if s.narrator != nil {
		if summary, err := s.narrator.Summarize(ctx, result); err == nil {
			report.Summary = summary
		}
	}

	return report, nil
}
