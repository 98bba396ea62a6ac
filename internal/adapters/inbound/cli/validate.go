package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/checklight/checklight/internal/adapters/outbound/checklist"
	"github.com/checklight/checklight/internal/application"
	"github.com/checklight/checklight/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		checklistPath string
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a checklist definition",
		Long:  "Check a checklist definition file for configuration errors: duplicate ids, disallowed point values, unknown dimensions, and points not summing to 100.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewValidateService(checklist.New())

			summary, err := svc.Validate(checklistPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checklist OK: %d items, %d points\n", summary.Items, summary.PointsTotal)
			for _, dim := range domain.ValidDimensions {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %d items, %d points\n", dim, summary.ItemsByDim[dim], summary.PointsByDim[dim])
			}
			if len(summary.AdaptedLangs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  language adaptations: %v\n", summary.AdaptedLangs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&checklistPath, "checklist", "checklist.yaml", "Path to the checklist definition (YAML)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the summary as JSON")

	return cmd
}
