package eval

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Document is a read-only view over a parsed metrics document. gjson gives
// us a tagged value union (null/bool/number/string/array/object) that path
// resolution pattern-matches at each step.
type Document struct {
	root gjson.Result
}

// NewDocument wraps an already-parsed gjson value.
func NewDocument(root gjson.Result) Document { return Document{root: root} }

// ParseDocument parses raw JSON into a Document.
func ParseDocument(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, fmt.Errorf("metrics document is not well-formed JSON")
	}
	return NewDocument(gjson.ParseBytes(data)), nil
}

// Resolve walks the document along a dot-separated path. The boolean is
// false when any intermediate node is missing or not an object containing
// the next key. Absence is never an error.
func (d Document) Resolve(path string) (gjson.Result, bool) {
	path = strings.Join(splitPath(path), ".")
	if path == "" {
		return d.root, d.root.Exists()
	}
	res := d.root.Get(escapePath(path))
	return res, res.Exists()
}

// ResolveLength resolves path (with any trailing ".length" stripped) and
// returns its length: arrays count elements, objects count keys, null or
// absent is 0, any other present value is 1.
func (d Document) ResolveLength(path string) int64 {
	path = strings.TrimSuffix(path, ".length")
	res, ok := d.Resolve(path)
	switch {
	case !ok || res.Type == gjson.Null:
		return 0
	case res.IsArray():
		return int64(len(res.Array()))
	case res.IsObject():
		return int64(len(res.Map()))
	default:
		return 1
	}
}

// JoinPath combines an item's base source path with a criterion field.
// When the first field component re-states a component of the base, the
// paths are spliced at that component instead of concatenated, so
// "metrics.code_quality.lint_results" + "lint_results.tool_used" yields
// "metrics.code_quality.lint_results.tool_used" rather than a doubled
// segment.
func JoinPath(base, field string) string {
	baseParts := splitPath(base)
	fieldParts := splitPath(field)

	if len(fieldParts) == 0 {
		return strings.Join(baseParts, ".")
	}
	if len(baseParts) == 0 {
		return strings.Join(fieldParts, ".")
	}

	for i, seg := range baseParts {
		if seg == fieldParts[0] {
			joined := make([]string, 0, i+len(fieldParts))
			joined = append(joined, baseParts[:i]...)
			joined = append(joined, fieldParts...)
			return strings.Join(joined, ".")
		}
	}

	joined := make([]string, 0, len(baseParts)+len(fieldParts))
	joined = append(joined, baseParts...)
	joined = append(joined, fieldParts...)
	return strings.Join(joined, ".")
}

// splitPath breaks a dot path into components, dropping a leading "$"
// anchor and empty segments.
func splitPath(path string) []string {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "$.")
	path = strings.TrimPrefix(path, "$")

	var parts []string
	for _, seg := range strings.Split(path, ".") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return parts
}

// escapePath neutralizes gjson wildcard characters so field names are
// always matched literally.
func escapePath(path string) string {
	if !strings.ContainsAny(path, "*?") {
		return path
	}
	r := strings.NewReplacer("*", `\*`, "?", `\?`)
	return r.Replace(path)
}
