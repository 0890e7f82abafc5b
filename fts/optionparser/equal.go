package optionparser

import (
	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/internal/escape"
)

// setEqual implements spec §4.1 step 5: the integrity-check ("verify")
// predicate shape AND(Equals(field=0, literal) [AND Equals(language,
// literal)], Equals(rowid, literal)). The row-id literal becomes the
// RowID open-option; the key literal(s) become SectionValue entries.
// Any other shape is not a Verify predicate: (nil, nil).
func setEqual(n *compiler.Node, file FileID) (*OpenOption, error) {
	if n.Type != compiler.And {
		return trySingleEqual(n, file)
	}

	var rowID *compiler.Node
	var sections []*compiler.Node
	for _, op := range n.Operands {
		eq, ok := asEquals(op)
		if !ok {
			return nil, nil
		}
		if fieldOf(eq) == RowIDField {
			rowID = eq
			continue
		}
		sections = append(sections, eq)
	}
	if rowID == nil || len(sections) == 0 {
		return nil, nil
	}

	o := New()
	o.SearchType = Equal
	rowIDLit, _ := literalOf(rowID)
	if v, ok := parseInt64Decimal(rowIDLit); ok {
		o.RowID = v
		o.HasRowID = true
	}
	for _, s := range sections {
		lit, _ := literalOf(s)
		o.SectionValue = append(o.SectionValue, escape.Encode(lit))
		if fieldOf(s) == file.LanguageField {
			o.SectionLang = append(o.SectionLang, lit)
		}
	}
	return o, nil
}

// trySingleEqual handles the degenerate Verify shape with no AND --
// a bare Equals(rowid, literal) with nothing else to check.
func trySingleEqual(n *compiler.Node, file FileID) (*OpenOption, error) {
	eq, ok := asEquals(n)
	if !ok || fieldOf(eq) != RowIDField {
		return nil, nil
	}
	o := New()
	o.SearchType = Equal
	lit, _ := literalOf(eq)
	if v, ok := parseInt64Decimal(lit); ok {
		o.RowID = v
		o.HasRowID = true
	}
	return o, nil
}

func asEquals(n *compiler.Node) (*compiler.Node, bool) {
	if n.Type != compiler.Equals {
		return nil, false
	}
	return n, true
}

func fieldOf(n *compiler.Node) int {
	for _, op := range n.Operands {
		if op.Type == compiler.Field {
			return op.FieldIndex
		}
	}
	return -2
}

// parseInt64Decimal parses lit as an exact decimal literal (via
// RewriteEndpoint's shopspring/decimal machinery, delta 0) and returns
// it as an int64 row id, rejecting any fractional literal.
func parseInt64Decimal(lit string) (int64, bool) {
	v, ok := RewriteEndpoint(lit, 0)
	if !ok {
		return 0, false
	}
	var n int64
	var neg bool
	i := 0
	if len(v) > 0 && v[0] == '-' {
		neg = true
		i = 1
	}
	for ; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, false
		}
		n = n*10 + int64(v[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
