package eval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Operator is a comparison operator inside a criterion expression.
type Operator string

const (
	OpEq Operator = "=="
	OpNe Operator = "!="
	OpGe Operator = ">="
	OpGt Operator = ">"
	OpLe Operator = "<="
	OpLt Operator = "<"
)

// comparisonOps is ordered longest-first so ">=" wins over ">".
var comparisonOps = []Operator{OpEq, OpNe, OpGe, OpLe, OpGt, OpLt}

// Node is one node of a parsed criterion expression.
type Node interface{ node() }

// AndNode requires both sides to hold.
type AndNode struct{ Left, Right Node }

// OrNode requires at least one side to hold.
type OrNode struct{ Left, Right Node }

// ComparisonNode compares a resolved document value to a literal.
type ComparisonNode struct {
	Path    string
	Op      Operator
	Literal interface{}
}

// LengthComparisonNode compares the length of a resolved value to a literal.
type LengthComparisonNode struct {
	Path    string
	Op      Operator
	Literal interface{}
}

// ExistenceNode holds when the path resolves to a present value.
type ExistenceNode struct{ Path string }

// BoolLiteralNode is a constant.
type BoolLiteralNode struct{ Value bool }

func (AndNode) node()              {}
func (OrNode) node()               {}
func (ComparisonNode) node()       {}
func (LengthComparisonNode) node() {}
func (ExistenceNode) node()        {}
func (BoolLiteralNode) node()      {}

// ParseError reports a criterion expression that could not be parsed.
type ParseError struct {
	Expr   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing criterion %q: %s", e.Expr, e.Reason)
}

// Parse converts a criterion string into an expression tree. Precedence,
// highest to lowest: parentheses, AND, OR. Operators must be surrounded by
// spaces. "BUT" is an alias for "AND".
func Parse(criterion string) (Node, error) {
	p := &parser{src: criterion}

	expr := strings.TrimSpace(criterion)
	if expr == "" {
		return nil, p.errf("empty expression")
	}
	expr = strings.ReplaceAll(expr, " BUT ", " AND ")

	return p.parse(expr)
}

type parser struct {
	src  string
	subs []Node // parenthesized groups, reduced innermost-first
}

func (p *parser) errf(format string, args ...interface{}) error {
	return &ParseError{Expr: p.src, Reason: fmt.Sprintf(format, args...)}
}

// parse reduces parenthesized groups innermost-first: the first ")" is
// paired with the most recent unmatched "(", the span between them is
// parsed and replaced by a placeholder token, and the scan repeats. This
// handles nested and sibling groups alike. The remaining flat expression
// is then parsed with OR binding looser than AND.
func (p *parser) parse(expr string) (Node, error) {
	for {
		closeIdx := strings.IndexByte(expr, ')')
		if closeIdx < 0 {
			if strings.IndexByte(expr, '(') >= 0 {
				return nil, p.errf("unbalanced parenthesis")
			}
			break
		}
		openIdx := strings.LastIndexByte(expr[:closeIdx], '(')
		if openIdx < 0 {
			return nil, p.errf("unbalanced parenthesis")
		}

		inner, err := p.parseFlat(expr[openIdx+1 : closeIdx])
		if err != nil {
			return nil, err
		}

		p.subs = append(p.subs, inner)
		expr = expr[:openIdx] + placeholderToken(len(p.subs)-1) + expr[closeIdx+1:]
	}

	return p.parseFlat(expr)
}

// parseFlat parses an expression containing no parentheses.
func (p *parser) parseFlat(expr string) (Node, error) {
	orParts := strings.Split(expr, " OR ")

	var root Node
	for _, part := range orParts {
		operand, err := p.parseConjunction(part)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = operand
		} else {
			root = OrNode{Left: root, Right: operand}
		}
	}
	return root, nil
}

func (p *parser) parseConjunction(expr string) (Node, error) {
	andParts := strings.Split(expr, " AND ")

	var root Node
	for _, part := range andParts {
		operand, err := p.parseAtom(part)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = operand
		} else {
			root = AndNode{Left: root, Right: operand}
		}
	}
	return root, nil
}

func (p *parser) parseAtom(token string) (Node, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, p.errf("operator missing an operand")
	}

	if idx, ok := parsePlaceholder(token); ok {
		return p.subs[idx], nil
	}
	if strings.ContainsRune(token, placeholderMark) {
		// A reduced group glued onto other text, e.g. "(a)b".
		return nil, p.errf("malformed expression near a parenthesized group")
	}

	for _, op := range comparisonOps {
		padded := " " + string(op) + " "
		idx := strings.Index(token, padded)
		if idx < 0 {
			continue
		}
		lhs := strings.TrimSpace(token[:idx])
		rhs := strings.TrimSpace(token[idx+len(padded):])
		if lhs == "" || rhs == "" {
			return nil, p.errf("comparison %q is missing an operand", token)
		}
		literal := parseLiteral(rhs)
		if strings.HasSuffix(lhs, ".length") {
			return LengthComparisonNode{Path: strings.TrimSuffix(lhs, ".length"), Op: op, Literal: literal}, nil
		}
		return ComparisonNode{Path: lhs, Op: op, Literal: literal}, nil
	}

	switch strings.ToLower(token) {
	case "true":
		return BoolLiteralNode{Value: true}, nil
	case "false":
		return BoolLiteralNode{Value: false}, nil
	}

	// Operators are only recognized as padded tokens; stray operator
	// characters mean the expression is malformed, not a field name.
	if strings.ContainsAny(token, "=<>!") {
		return nil, p.errf("malformed operator in %q (operators need surrounding spaces)", token)
	}
	for _, word := range strings.Fields(token) {
		switch word {
		case "AND", "OR", "BUT":
			return nil, p.errf("dangling %s operator in %q", word, token)
		}
	}

	// Any other token without a recognized operator is an existence check,
	// even one containing spaces.
	return ExistenceNode{Path: token}, nil
}

// parseLiteral interprets a right-hand operand. Priority: true/false/null
// keywords, a quoted string, a JSON array or object literal, an integer,
// a float. Anything else (including an array/object that fails to parse)
// falls back to the raw string.
func parseLiteral(raw string) interface{} {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}

	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return raw[1 : len(raw)-1]
		}
	}

	if len(raw) > 0 && (raw[0] == '[' || raw[0] == '{') {
		var v interface{}
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v
		}
		return raw
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return raw
}

const placeholderMark = '\x00'

func placeholderToken(idx int) string {
	return fmt.Sprintf("%c%d%c", placeholderMark, idx, placeholderMark)
}

func parsePlaceholder(token string) (int, bool) {
	if len(token) < 3 || token[0] != placeholderMark || token[len(token)-1] != placeholderMark {
		return 0, false
	}
	idx, err := strconv.Atoi(token[1 : len(token)-1])
	if err != nil {
		return 0, false
	}
	return idx, true
}
