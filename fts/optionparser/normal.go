package optionparser

import (
	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// checkField walks a plain-SQL predicate tree and returns the single
// column every Field leaf references, or ok=false if two different
// fields are referenced (spec §4.1 step 4: "otherwise the plan is
// rejected").
func checkField(n *compiler.Node) (field int, ok bool) {
	seen := false
	var walk func(n *compiler.Node) bool
	walk = func(n *compiler.Node) bool {
		if n == nil {
			return true
		}
		if n.Type == compiler.Field {
			if !seen {
				seen = true
				field = n.FieldIndex
				return true
			}
			return field == n.FieldIndex
		}
		for _, op := range n.Operands {
			if !walk(op) {
				return false
			}
		}
		return true
	}
	if !walk(n) || !seen {
		return 0, false
	}
	return field, true
}

// literalOf returns the Literal operand's value from a comparison
// node shaped Comparison(Field, Literal).
func literalOf(n *compiler.Node) (string, bool) {
	for _, op := range n.Operands {
		if op.Type == compiler.Literal {
			return op.Value, true
		}
	}
	return "", false
}

// setNormal implements spec §4.1 step 4: plain SQL predicates against
// a full-text-indexed column, translated into a tea-expression.
// Equality/range comparisons against the indexed column are rendered
// through the same #term primitive CONTAINS uses (at the index's
// indexing-type match mode); LIKE is decomposed per spec's
// wildcard/underscore rules.
// Mixed-field predicates return (nil, nil): "cannot execute by
// index".
func setNormal(n *compiler.Node, file FileID, bulkMaxSize int) (*OpenOption, error) {
	field, ok := checkField(n)
	if !ok {
		return nil, nil
	}

	cond, termCount, err := convertNormal(n, file, bulkMaxSize)
	if err != nil {
		return nil, err
	}
	if cond == "" {
		return nil, nil
	}

	o := New()
	o.SearchType = Normal
	o.Condition = containsHeader([]int{field}, ContainsOptions{}) + "(" + cond + ")"
	o.TermCount = termCount
	o.SearchField = []int{field}
	return o, nil
}

// convertNormal recursively translates a plain predicate tree. An
// And(x, Not(y)) pair rewrites to nested #and-not per spec §4.1 step
// 4; Like nodes decompose via compileLike; other comparisons render
// as a single #term leaf at the index's indexing-type match mode.
func convertNormal(n *compiler.Node, file FileID, bulkMaxSize int) (string, int, error) {
	switch n.Type {
	case compiler.And:
		return convertAndWithNot(n, file, bulkMaxSize)
	case compiler.Or:
		return convertJoinNormal(compiler.Or, n, file, bulkMaxSize)
	case compiler.AndNot:
		return convertAndNotNormal(n, file, bulkMaxSize)
	case compiler.Like:
		lit, ok := literalOf(n)
		if !ok {
			return "", 0, ftserrors.ErrUnexpected.New("LIKE node missing literal operand")
		}
		return compileLike(lit, '*', file, bulkMaxSize)
	case compiler.Equals, compiler.NotEquals, compiler.GreaterThan,
		compiler.GreaterThanEquals, compiler.LessThan, compiler.LessThanEquals:
		lit, ok := literalOf(n)
		if !ok {
			return "", 0, ftserrors.ErrUnexpected.New("comparison node missing literal operand")
		}
		return compiler.Term(compiler.MatchChar(file.IndexingType), file.DefaultLanguage, lit), 1, nil
	case compiler.EqualsToNull:
		return compiler.Uk, 0, nil
	default:
		return "", 0, ftserrors.ErrWrongParameter.New("predicate node not supported by index")
	}
}

// convertAndWithNot detects the And(x, Not(y), ...) shape and rewrites
// it to a left-associated AndNot before falling back to a plain join.
func convertAndWithNot(n *compiler.Node, file FileID, bulkMaxSize int) (string, int, error) {
	var positive, negative []*compiler.Node
	for _, op := range n.Operands {
		if op.Type == compiler.Not {
			negative = append(negative, op.Operands[0])
		} else {
			positive = append(positive, op)
		}
	}
	if len(negative) == 0 {
		return convertJoinNormal(compiler.And, n, file, bulkMaxSize)
	}
	if len(positive) == 0 {
		return "", 0, ftserrors.ErrWrongParameter.New("AND of only negated operands cannot execute by index")
	}

	exprs := make([]string, 0, len(positive)+len(negative))
	termCount := 0
	for _, op := range append(positive, negative...) {
		e, tc, err := convertNormal(op, file, bulkMaxSize)
		if err != nil {
			return "", 0, err
		}
		exprs = append(exprs, e)
		termCount += tc
	}
	return compiler.AndNotExpr(exprs...), termCount, nil
}

func convertAndNotNormal(n *compiler.Node, file FileID, bulkMaxSize int) (string, int, error) {
	exprs := make([]string, len(n.Operands))
	termCount := 0
	for i, op := range n.Operands {
		e, tc, err := convertNormal(op, file, bulkMaxSize)
		if err != nil {
			return "", 0, err
		}
		exprs[i] = e
		termCount += tc
	}
	return compiler.AndNotExpr(exprs...), termCount, nil
}

func convertJoinNormal(kind compiler.NodeType, n *compiler.Node, file FileID, bulkMaxSize int) (string, int, error) {
	exprs := make([]string, len(n.Operands))
	termCount := 0
	for i, op := range n.Operands {
		e, tc, err := convertNormal(op, file, bulkMaxSize)
		if err != nil {
			return "", 0, err
		}
		exprs[i] = e
		termCount += tc
	}
	if kind == compiler.And {
		return compiler.AndExpr("", exprs...), termCount, nil
	}
	return compiler.OrExpr("", exprs...), termCount, nil
}
