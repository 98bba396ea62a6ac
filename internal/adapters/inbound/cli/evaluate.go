package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/checklight/checklight/internal/adapters/outbound/checklist"
	"github.com/checklight/checklight/internal/adapters/outbound/gitinfo"
	"github.com/checklight/checklight/internal/adapters/outbound/metrics"
	"github.com/checklight/checklight/internal/adapters/outbound/narrator"
	"github.com/checklight/checklight/internal/adapters/outbound/report"
	"github.com/checklight/checklight/internal/adapters/outbound/tui"
	"github.com/checklight/checklight/internal/application"
	"github.com/checklight/checklight/internal/domain"
)

func newEvaluateCmd() *cobra.Command {
	var (
		checklistPath string
		metricsPath   string
		language      string
		jsonOutput    bool
		ciMode        bool
		minScore      float64
		narrate       bool
		save          bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate [path]",
		Short: "Evaluate a repository's metrics against a checklist",
		Long:  "Score a metrics document (produced by upstream tooling) against a weighted checklist definition and render the evidence-backed result.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := "."
			if len(args) > 0 {
				repoPath = args[0]
			}

			absPath, err := filepath.Abs(repoPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc := application.NewEvaluateService(
				checklist.New(),
				metrics.New(),
				gitinfo.New(),
			)

			if narrate {
				apiKey := os.Getenv("ANTHROPIC_API_KEY")
				if apiKey == "" {
					return fmt.Errorf("--narrate requires ANTHROPIC_API_KEY to be set")
				}
				svc = svc.WithNarrator(narrator.New(apiKey, ""))
			}

			rep, err := svc.Evaluate(cmd.Context(), application.EvaluateOptions{
				ChecklistPath: checklistPath,
				MetricsPath:   metricsPath,
				RepoPath:      absPath,
				Language:      language,
			})
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			if save {
				store := report.New()
				_ = store.Save(absPath, *rep) // best-effort
			}

			if jsonOutput {
				if err := renderJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(rep))
			}

			if ciMode && rep.Result.TotalScore < minScore {
				return fmt.Errorf("score %.1f is below minimum %.1f", rep.Result.TotalScore, minScore)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&checklistPath, "checklist", "checklist.yaml", "Path to the checklist definition (YAML)")
	cmd.Flags().StringVar(&metricsPath, "metrics", "metrics.json", "Path to the metrics document (JSON)")
	cmd.Flags().StringVar(&language, "lang", "", "Apply per-language criteria adaptations (e.g. go, python)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min")
	cmd.Flags().Float64Var(&minScore, "min", 0, "Minimum total score for CI mode")
	cmd.Flags().BoolVar(&narrate, "narrate", false, "Attach an LLM-written summary to the report")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the report and evidence files under .checklight/")

	return cmd
}

func renderJSON(cmd *cobra.Command, rep *domain.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
