package eval

import "github.com/checklight/checklight/internal/domain"

// ScoreFor maps a classification status to points earned: met earns full
// points, partial earns half, unmet earns none.
func ScoreFor(status domain.EvaluationStatus, maxPoints int) float64 {
	switch status {
	case domain.StatusMet:
		return float64(maxPoints)
	case domain.StatusPartial:
		return float64(maxPoints) * 0.5
	default:
		return 0
	}
}

// BuildBreakdowns aggregates item results into per-dimension totals. All
// three dimensions are always present in the output, even when a dimension
// has no items (its percentage is then 0).
func BuildBreakdowns(items []domain.ChecklistItemResult) map[domain.Dimension]domain.CategoryBreakdown {
	breakdowns := make(map[domain.Dimension]domain.CategoryBreakdown, len(domain.ValidDimensions))

	for _, dim := range domain.ValidDimensions {
		var b domain.CategoryBreakdown
		for _, item := range items {
			if item.Dimension != dim {
				continue
			}
			b.ItemsCount++
			b.MaxPoints += item.MaxPoints
			b.ActualPoints += item.Score
		}
		if b.MaxPoints > 0 {
			b.Percentage = b.ActualPoints / float64(b.MaxPoints) * 100
		}
		breakdowns[dim] = b
	}

	return breakdowns
}
