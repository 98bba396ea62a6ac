package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/checklight/checklight/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	metStyle      = lipgloss.NewStyle().Foreground(success)
	unmetStyle    = lipgloss.NewStyle().Foreground(danger)
	partialStyle  = lipgloss.NewStyle().Foreground(warning)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

const barWidth = 24

// RenderReport renders a full evaluation report for the terminal.
func RenderReport(report *domain.Report) string {
	result := report.Result

	var b strings.Builder

	// ── Header ──
	grade := result.Grade()
	title := headerStyle.Render("checklight")
	subtitle := dimStyle.Render("Repository Quality Score")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%.1f / %d", result.TotalScore, result.MaxPossibleScore))
	gradeStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(grade)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled))
	b.WriteString("\n\n")

	// ── Dimensions ──
	for _, dim := range domain.ValidDimensions {
		renderDimension(&b, dim, result.CategoryBreakdowns[dim])
	}

	b.WriteString("\n")

	// ── Items ──
	for _, item := range result.Items {
		renderItem(&b, item)
	}

	b.WriteString("\n  " + separatorLine + "\n\n")

	// ── Run details ──
	fmt.Fprintf(&b, "  %s %.0f%%\n", dimStyle.Render("metrics completeness"), result.MetricsCompleteness)
	if report.CommitHash != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("commit"), shortHash(report.CommitHash))
	}

	// ── Warnings ──
	if len(result.Warnings) > 0 {
		b.WriteString("\n  " + warnTagStyle.Render(fmt.Sprintf("%d warnings", len(result.Warnings))) + "\n")
		for _, w := range result.Warnings {
			b.WriteString("  " + dimStyle.Render("• "+w) + "\n")
		}
	}

	if report.Summary != "" {
		b.WriteString("\n  " + titleStyle.Render("Summary") + "\n")
		for _, line := range strings.Split(report.Summary, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	return b.String()
}

func renderDimension(b *strings.Builder, dim domain.Dimension, breakdown domain.CategoryBreakdown) {
	label := titleStyle.Render(fmt.Sprintf("%-16s", Humanize(string(dim))))
	bar := renderBar(breakdown.Percentage)
	fmt.Fprintf(b, "  %s %s %5.1f%%  %s\n",
		label, bar, breakdown.Percentage,
		dimStyle.Render(fmt.Sprintf("%.1f/%d pts, %d items", breakdown.ActualPoints, breakdown.MaxPoints, breakdown.ItemsCount)))
}

func renderItem(b *strings.Builder, item domain.ChecklistItemResult) {
	var icon string
	switch item.Status {
	case domain.StatusMet:
		icon = metStyle.Render("✓")
	case domain.StatusPartial:
		icon = partialStyle.Render("◐")
	default:
		icon = unmetStyle.Render("✗")
	}

	fmt.Fprintf(b, "  %s %-36s %s\n",
		icon,
		item.Name,
		dimStyle.Render(fmt.Sprintf("%.1f/%d  (%d evidence)", item.Score, item.MaxPoints, len(item.Evidence))))
}

func renderBar(percentage float64) string {
	filled := int(percentage / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	style := metStyle
	switch {
	case percentage < 50:
		style = unmetStyle
	case percentage < 80:
		style = partialStyle
	}

	return style.Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", barWidth-filled))
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return dim
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// Humanize turns an identifier like "lint_results" or "buildSuccess" into
// display words. Snake segments are split first, then camelCase runs.
func Humanize(identifier string) string {
	var words []string
	for _, seg := range strings.FieldsFunc(identifier, func(r rune) bool { return r == '_' || r == '.' || r == '-' }) {
		words = append(words, camelcase.Split(seg)...)
	}
	return strings.ToLower(strings.Join(words, " "))
}
