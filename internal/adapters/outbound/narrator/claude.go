package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/checklight/checklight/internal/domain"
)

const (
	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the default model.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the API version header value.
	ClaudeAPIVersion = "2023-06-01"
)

// ClaudeNarrator implements domain.Narrator against the Anthropic messages
// API. It turns an evaluation result into a short prose summary for the
// report; it is never on the evaluation path itself.
type ClaudeNarrator struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// New creates a ClaudeNarrator. An empty model selects the default.
func New(apiKey, model string) *ClaudeNarrator {
	if model == "" {
		model = ClaudeModel
	}
	return &ClaudeNarrator{
		apiKey:   apiKey,
		model:    model,
		endpoint: ClaudeAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type claudeRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Summarize asks the model for a short assessment of the evaluation result.
func (c *ClaudeNarrator) Summarize(ctx context.Context, result domain.EvaluationResult) (string, error) {
	prompt := buildPrompt(result)

	req := claudeRequest{
		Model:     c.model,
		MaxTokens: 1024,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", errors.Wrap(err, "failed to create HTTP request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed claudeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrapf(err, "failed to parse response: %s", string(respBody))
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("no content in response")
	}

	return strings.TrimSpace(parsed.Content[0].Text), nil
}

// buildPrompt condenses the result into a compact plain-text digest so the
// model sees statuses and evidence without the full JSON payload.
func buildPrompt(result domain.EvaluationResult) string {
	var b strings.Builder

	b.WriteString("Summarize this repository quality evaluation in 3-5 sentences for an engineering audience. ")
	b.WriteString("Mention the overall score, the weakest dimension, and the most impactful unmet items.\n\n")
	fmt.Fprintf(&b, "Total score: %.1f/%d (%.1f%%)\n", result.TotalScore, result.MaxPossibleScore, result.ScorePercentage)
	fmt.Fprintf(&b, "Metrics completeness: %.0f%%\n", result.MetricsCompleteness)

	for _, dim := range domain.ValidDimensions {
		breakdown := result.CategoryBreakdowns[dim]
		fmt.Fprintf(&b, "%s: %.1f/%d points across %d items\n", dim, breakdown.ActualPoints, breakdown.MaxPoints, breakdown.ItemsCount)
	}

	b.WriteString("\nItems:\n")
	for _, item := range result.Items {
		fmt.Fprintf(&b, "- %s (%s, %s): %.1f/%d\n", item.Name, item.Dimension, item.Status, item.Score, item.MaxPoints)
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
