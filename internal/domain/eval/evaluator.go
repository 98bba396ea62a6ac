package eval

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/checklight/checklight/internal/domain"
)

// Confidence levels attached to evidence entries.
const (
	confidenceHeld      = 0.95
	confidenceFailed    = 0.85
	confidenceExistence = 0.9
)

const maxRawDataLen = 200

// Evaluate walks a parsed criterion against the document, resolving field
// paths relative to basePath. Both sides of a conjunction or disjunction are
// always evaluated so evidence from each branch is collected; there is no
// short-circuit.
func Evaluate(node Node, doc Document, basePath string) (bool, []domain.Evidence) {
	switch n := node.(type) {
	case BoolLiteralNode:
		return n.Value, nil

	case AndNode:
		leftOK, leftEv := Evaluate(n.Left, doc, basePath)
		rightOK, rightEv := Evaluate(n.Right, doc, basePath)
		return leftOK && rightOK, append(leftEv, rightEv...)

	case OrNode:
		leftOK, leftEv := Evaluate(n.Left, doc, basePath)
		rightOK, rightEv := Evaluate(n.Right, doc, basePath)
		return leftOK || rightOK, append(leftEv, rightEv...)

	case ExistenceNode:
		path := JoinPath(basePath, n.Path)
		res, present := doc.Resolve(path)
		// An explicit null is not usable data; it fails the existence check
		// the same way a missing field does.
		exists := present && res.Type != gjson.Null

		desc := fmt.Sprintf("Field %s is present", path)
		if !exists {
			desc = fmt.Sprintf("Field %s is absent", path)
		}
		return exists, []domain.Evidence{{
			SourceType:  sourceTypeFor(path),
			SourcePath:  path,
			Description: desc,
			Confidence:  confidenceExistence,
			RawData:     rawData(res, present),
		}}

	case ComparisonNode:
		path := JoinPath(basePath, n.Path)
		res, present := doc.Resolve(path)
		held := compare(res, present, n.Op, n.Literal)

		observed := "absent"
		if present {
			observed = res.String()
		}
		return held, []domain.Evidence{{
			SourceType:  sourceTypeFor(path),
			SourcePath:  path,
			Description: fmt.Sprintf("Field %s: expected %s %s, observed %s", path, n.Op, literalString(n.Literal), observed),
			Confidence:  comparisonConfidence(held),
			RawData:     rawData(res, present),
		}}

	case LengthComparisonNode:
		path := JoinPath(basePath, n.Path)
		length := doc.ResolveLength(path)
		held := compareNumeric(float64(length), n.Op, n.Literal)

		return held, []domain.Evidence{{
			SourceType:  sourceTypeFor(path),
			SourcePath:  path,
			Description: fmt.Sprintf("Field %s: expected length %s %s, observed length %d", path, n.Op, literalString(n.Literal), length),
			Confidence:  comparisonConfidence(held),
			RawData:     strconv.FormatInt(length, 10),
		}}
	}

	return false, nil
}

func comparisonConfidence(held bool) float64 {
	if held {
		return confidenceHeld
	}
	return confidenceFailed
}

// compare applies op between a resolved document value and a parsed literal.
// Absence fails the comparison; it never raises an error. Ordering operators
// coerce both sides to float and fail the comparison when coercion fails.
func compare(res gjson.Result, present bool, op Operator, literal interface{}) bool {
	if !present {
		return false
	}

	switch op {
	case OpEq:
		return valueEquals(res, literal)
	case OpNe:
		return !valueEquals(res, literal)
	default:
		observed, ok := resultToFloat(res)
		if !ok {
			return false
		}
		return compareNumeric(observed, op, literal)
	}
}

// valueEquals compares a document value to a literal with strict types:
// numbers match numbers, strings match strings, and array/object literals
// are compared structurally.
func valueEquals(res gjson.Result, literal interface{}) bool {
	switch lit := literal.(type) {
	case nil:
		return res.Type == gjson.Null
	case bool:
		return res.IsBool() && res.Bool() == lit
	case int64:
		return res.Type == gjson.Number && res.Num == float64(lit)
	case float64:
		return res.Type == gjson.Number && res.Num == lit
	case string:
		return res.Type == gjson.String && res.String() == lit
	default:
		// Array or object literal decoded from JSON: res.Value() yields the
		// same interface shapes, so structural equality applies directly.
		return reflect.DeepEqual(res.Value(), literal)
	}
}

// compareNumeric applies an ordering (or equality) operator between an
// observed float and a literal. Coercion failure fails the comparison.
func compareNumeric(observed float64, op Operator, literal interface{}) bool {
	expected, ok := literalToFloat(literal)
	if !ok {
		return false
	}

	switch op {
	case OpEq:
		return observed == expected
	case OpNe:
		return observed != expected
	case OpGe:
		return observed >= expected
	case OpGt:
		return observed > expected
	case OpLe:
		return observed <= expected
	case OpLt:
		return observed < expected
	}
	return false
}

func resultToFloat(res gjson.Result) (float64, bool) {
	switch res.Type {
	case gjson.Number:
		return res.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(res.Str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func literalToFloat(literal interface{}) (float64, bool) {
	switch v := literal.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func literalString(literal interface{}) string {
	switch v := literal.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case bool, int64, float64:
		return fmt.Sprintf("%v", v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// sourceTypeFor infers an evidence source type from the inspected path.
func sourceTypeFor(path string) string {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "lint"):
		return domain.SourceLintOutput
	case strings.Contains(p, "security") || strings.Contains(p, "audit") || strings.Contains(p, "vulnerab"):
		return domain.SourceSecurityAudit
	case strings.Contains(p, "test") || strings.Contains(p, "coverage"):
		return domain.SourceTestResult
	case strings.Contains(p, "doc") || strings.Contains(p, "readme") || strings.Contains(p, "comment"):
		return domain.SourceDocumentationAnalysis
	default:
		return domain.SourceFileCheck
	}
}

// rawData snapshots the inspected value for the evidence record.
func rawData(res gjson.Result, present bool) string {
	if !present {
		return "absent"
	}
	raw := res.Raw
	if len(raw) > maxRawDataLen {
		raw = raw[:maxRawDataLen] + "..."
	}
	return raw
}
