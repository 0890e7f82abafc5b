// Package term implements the data model shared by the rest of the
// query-processing pipeline: Term, TermElement, TermPool and TermMap
// (spec §3).
package term

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/dolthub/go-fulltext-index/internal/charclass"
)

// Lang is an ordered, de-duplicated set of two-letter language codes,
// e.g. "ja+en". The order matters: it is the priority order the
// morphological analyzer and tea-expression renderer use.
type Lang []string

// String renders the language tag the way the compiler embeds it in a
// tea-expression, e.g. "ja+en".
func (l Lang) String() string {
	return strings.Join(l, "+")
}

// ParseLang parses a "+"-joined language tag, dropping empty segments.
func ParseLang(s string) Lang {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "+")
	out := make(Lang, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Term is a canonical string after normalization, carrying the
// language tag and character-type bitmask it was analyzed with.
//
// Invariant: two Terms comparing Equal must produce byte-identical
// Normalized() output under the active collation -- callers that need
// collation-sensitive comparison should compare Normalized(), not the
// raw Surface.
type Term struct {
	Surface string
	Lang    Lang
	Type    charclass.Class
}

// New builds a Term from surface text, folding each rune to its
// canonical width with golang.org/x/text's width.Fold (fullwidth ASCII
// becomes narrow, halfwidth katakana becomes wide) and deriving the
// character-class bitmask from the folded text.
func New(surface string, lang Lang) Term {
	norm := width.Fold.String(surface)
	var class charclass.Class
	for _, r := range norm {
		class |= charclass.ClassOf(r)
	}
	return Term{Surface: norm, Lang: lang, Type: class}
}

// Normalized returns the canonical comparison form of the term.
func (t Term) Normalized() string { return t.Surface }

// Equal reports whether two terms are identical after normalization.
// Language tags are not part of equality: the same surface form in two
// languages is still the same indexed term.
func (t Term) Equal(o Term) bool { return t.Surface == o.Surface }

// Empty reports whether the term's normalized form is the empty
// string -- such entries are dropped from a TermPool after analysis.
func (t Term) Empty() bool { return t.Surface == "" }

// MatchMode is the predicate match style carried by a TermElement.
type MatchMode int

const (
	VoidMatch MatchMode = iota
	Equals
	EqualsToNull
	EqualsToNullAll
	NotEquals
	GreaterThan
	GreaterThanEquals
	LessThan
	LessThanEquals
	Like
	Unknown
)

func (m MatchMode) String() string {
	switch m {
	case VoidMatch:
		return "void"
	case Equals:
		return "="
	case EqualsToNull:
		return "= null"
	case EqualsToNullAll:
		return "= null (all)"
	case NotEquals:
		return "<>"
	case GreaterThan:
		return ">"
	case GreaterThanEquals:
		return ">="
	case LessThan:
		return "<"
	case LessThanEquals:
		return "<="
	case Like:
		return "like"
	case Unknown:
		return "unknown"
	default:
		return "?"
	}
}

// Category classifies a TermElement's role for natural-language
// queries and pseudo-relevance feedback (spec §4.3).
type Category int

const (
	Essential Category = iota
	Important
	Helpful
	Prohibitive
	EssentialRelated
	ImportantRelated
	HelpfulRelated
	ProhibitiveRelated
)

func (c Category) String() string {
	switch c {
	case Essential:
		return "essential"
	case Important:
		return "important"
	case Helpful:
		return "helpful"
	case Prohibitive:
		return "prohibitive"
	case EssentialRelated:
		return "essentialRelated"
	case ImportantRelated:
		return "importantRelated"
	case HelpfulRelated:
		return "helpfulRelated"
	case ProhibitiveRelated:
		return "prohibitiveRelated"
	default:
		return "?"
	}
}

// TermElement is a Term plus the match-time metadata described in
// spec §3. OptionalChar is either the LIKE escape character or the
// PAD-SPACE padding character (0x20); the two roles never apply to the
// same element simultaneously.
type TermElement struct {
	Term
	MatchMode    MatchMode
	Category     Category
	Scale        float64
	DF           int64
	TWV          float64 // term weight value
	TSV          float64 // term selection value
	Position     int
	Original     string
	OptionalChar rune
	HasOptional  bool
}

// WithDF returns a copy of the element with DF set, leaving e
// unchanged.
func (e TermElement) WithDF(df int64) TermElement {
	e.DF = df
	return e
}
