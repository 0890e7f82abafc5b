package optionparser

import "github.com/dolthub/go-fulltext-index/fts/term"

// ParseValue is one entry of a predicate branch's condition list (spec
// §3). The source engine builds these as an intrusive singly-linked
// list; per spec §9's design note this implementation uses a flat
// slice instead ("implementations are free to use a flat vector so
// long as the order-of-emission contract is preserved").
type ParseValue struct {
	MatchMode    term.MatchMode
	Value        string
	OptionalChar rune
	HasOptional  bool
}

// ParseValueList is an ordered sequence of ParseValue entries.
type ParseValueList []ParseValue

// Stream is the #main/#other condition pair a predicate branch
// compiles to: Main drives the index scan (at most one equals or one
// range pair, spec §3), Other holds residual filters and the NO-PAD
// re-check a PAD-SPACE/NO-PAD collation mismatch requires (spec
// §4.2).
type Stream struct {
	Main  ParseValueList
	Other ParseValueList
}

// withEscape attaches an optional escape/padding character to v,
// mirroring TermElement's optional-char role (spec §3: the same field
// serves as LIKE escape or PAD-SPACE padding, never both at once).
func withEscape(mm term.MatchMode, value string, escapeChar rune) ParseValue {
	return ParseValue{MatchMode: mm, Value: value, OptionalChar: escapeChar, HasOptional: true}
}

func plain(mm term.MatchMode, value string) ParseValue {
	return ParseValue{MatchMode: mm, Value: value}
}
