package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/checklight/checklight/internal/adapters/outbound/checklist"
	"github.com/checklight/checklight/internal/adapters/outbound/gitinfo"
	"github.com/checklight/checklight/internal/adapters/outbound/metrics"
	"github.com/checklight/checklight/internal/application"
	"github.com/checklight/checklight/internal/domain/eval"
)

// registerTools registers all Checklight MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. checklight_evaluate
	s.AddTool(
		mcplib.NewTool("checklight_evaluate",
			mcplib.WithDescription("Evaluate a metrics document against a checklist definition and return the scored report as JSON"),
			mcplib.WithString("checklist",
				mcplib.Required(),
				mcplib.Description("Path to the checklist definition (YAML), relative to the project root"),
			),
			mcplib.WithString("metrics",
				mcplib.Required(),
				mcplib.Description("Path to the metrics document (JSON), relative to the project root"),
			),
			mcplib.WithString("lang", mcplib.Description("Apply per-language criteria adaptations")),
		),
		handleEvaluate(projectPath),
	)

	// 2. checklight_validate_checklist
	s.AddTool(
		mcplib.NewTool("checklight_validate_checklist",
			mcplib.WithDescription("Validate a checklist definition file and return its summary"),
			mcplib.WithString("checklist",
				mcplib.Required(),
				mcplib.Description("Path to the checklist definition (YAML), relative to the project root"),
			),
		),
		handleValidateChecklist(projectPath),
	)

	// 3. checklight_completeness
	s.AddTool(
		mcplib.NewTool("checklight_completeness",
			mcplib.WithDescription("Report which of the three metric sections are present and non-empty in a metrics document"),
			mcplib.WithString("metrics",
				mcplib.Required(),
				mcplib.Description("Path to the metrics document (JSON), relative to the project root"),
			),
		),
		handleCompleteness(projectPath),
	)
}

func handleEvaluate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		checklistPath, err := request.RequireString("checklist")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		metricsPath, err := request.RequireString("metrics")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		lang, _ := request.GetArguments()["lang"].(string)

		svc := application.NewEvaluateService(checklist.New(), metrics.New(), gitinfo.New())
		report, err := svc.Evaluate(ctx, application.EvaluateOptions{
			ChecklistPath: resolvePath(projectPath, checklistPath),
			MetricsPath:   resolvePath(projectPath, metricsPath),
			RepoPath:      projectPath,
			Language:      lang,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("evaluation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleValidateChecklist(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		checklistPath, err := request.RequireString("checklist")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc := application.NewValidateService(checklist.New())
		summary, err := svc.Validate(resolvePath(projectPath, checklistPath))
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func handleCompleteness(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		metricsPath, err := request.RequireString("metrics")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		data, err := os.ReadFile(resolvePath(projectPath, metricsPath))
		if err != nil {
			return errorResult(fmt.Sprintf("reading metrics document: %v", err)), nil
		}
		doc, err := eval.ParseDocument(data)
		if err != nil {
			return errorResult(fmt.Sprintf("parsing metrics document: %v", err)), nil
		}

		result := struct {
			Completeness float64 `json:"metrics_completeness"`
		}{Completeness: eval.Completeness(doc)}

		return jsonResult(result)
	}
}

func resolvePath(projectPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
