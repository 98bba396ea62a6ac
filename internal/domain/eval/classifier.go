package eval

import "github.com/checklight/checklight/internal/domain"

const unmetFallbackConfidence = 0.8

// Classify decides an item's status by trying its criteria groups in
// priority order: met first, then partial. When neither group holds the
// item is unmet, with a single synthetic evidence entry; the unmet criteria
// list is never evaluated. Evidence gathered while testing a losing group
// is discarded.
func Classify(item domain.ChecklistItem, doc Document) (domain.EvaluationStatus, []domain.Evidence, error) {
	base := item.MetricsMapping.SourcePath

	satisfied, evidence, err := groupSatisfied(item.EvaluationCriteria.Met, doc, base)
	if err != nil {
		return domain.StatusUnmet, nil, err
	}
	if satisfied {
		return domain.StatusMet, evidence, nil
	}

	satisfied, evidence, err = groupSatisfied(item.EvaluationCriteria.Partial, doc, base)
	if err != nil {
		return domain.StatusUnmet, nil, err
	}
	if satisfied {
		return domain.StatusPartial, evidence, nil
	}

	fallback := domain.Evidence{
		SourceType:  domain.SourceFileCheck,
		SourcePath:  base,
		Description: "Criteria not satisfied for 'met' or 'partial' status",
		Confidence:  unmetFallbackConfidence,
	}
	return domain.StatusUnmet, []domain.Evidence{fallback}, nil
}

// groupSatisfied evaluates one criteria group. A group holds only when it is
// non-empty and every criterion in it evaluates true; entries combine
// conjunctively regardless of the operators inside each entry. Every entry
// is evaluated even after one fails, so a malformed criterion anywhere in
// the group always surfaces as a ParseError.
func groupSatisfied(criteria []string, doc Document, basePath string) (bool, []domain.Evidence, error) {
	if len(criteria) == 0 {
		return false, nil, nil
	}

	satisfied := true
	var evidence []domain.Evidence

	for _, criterion := range criteria {
		node, err := Parse(criterion)
		if err != nil {
			return false, nil, err
		}
		ok, entries := Evaluate(node, doc, basePath)
		evidence = append(evidence, entries...)
		if !ok {
			satisfied = false
		}
	}

	return satisfied, evidence, nil
}
