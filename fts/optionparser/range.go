package optionparser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dolthub/go-fulltext-index/fts/term"
)

// PrefixBeforePadding returns k with its trailing padding bytes (0x20)
// trimmed. Under PAD SPACE the result collates equal to k, so it serves
// as an inclusive upper bound for "x < k": anything that
// PAD-SPACE-compares less than k is also less than or equal to k's
// trimmed form.
func PrefixBeforePadding(k string) string {
	return strings.TrimRight(k, " ")
}

// DecrementTrailingSOH searches from the end of k for the first byte
// that is not 0x01 and decrements it, dropping every 0x01 byte after
// it; if k is all 0x01 bytes (or empty) there is no valid lower bound
// and ok is false (spec §4.2: "decrement-trailing-SOH ... if none
// exists, the lower bound is dropped").
//
// Rationale restated from spec §4.2: under PAD-SPACE ordering
// "abb" < "abc\n" < "abc" < "abca", so a plain ">= abc" search would
// miss "abc\n"; decrementing the byte just before the run of 0x01
// bytes that a padded comparison would otherwise introduce recovers
// it.
func DecrementTrailingSOH(k string) (string, bool) {
	b := []byte(k)
	i := len(b) - 1
	for i >= 0 && b[i] == 0x01 {
		i--
	}
	if i < 0 {
		return "", false
	}
	b[i]--
	return string(b[:i+1]), true
}

// PadTo appends ASCII spaces to k until it reaches exactly n bytes,
// the literal rendering of "x = k'  with padding" from spec §4.2's
// table.
func PadTo(k string, n int) string {
	if len(k) >= n {
		return k
	}
	return k + strings.Repeat(" ", n-len(k))
}

// RewriteEndpoint applies the numeric-literal increment/decrement a
// range rewrite needs when the literal parses as an exact decimal,
// using github.com/shopspring/decimal so the adjustment never drifts
// the way a float64 +/-1 would for large or high-precision literals
// (DESIGN.md: "exact decimal literal handling for range-rewrite
// endpoints"). Non-numeric literals fall through to the byte-level
// string rewrite in DecrementTrailingSOH/PrefixBeforePadding, which is
// what spec §4.2's table actually describes for string keys.
func RewriteEndpoint(literal string, delta int64) (string, bool) {
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return "", false
	}
	return d.Add(decimal.NewFromInt(delta)).String(), true
}

// Rewrite holds the outcome of decomposing one collation-sensitive
// comparison into a PAD-SPACE main condition plus a NO-PAD residual
// filter (spec §4.2's table).
type Rewrite struct {
	Main  ParseValue
	Other ParseValue
}

// RewriteForCollation decomposes (mode, literal) per spec §4.2's
// table when the key collation is PAD-SPACE and the query wants
// NO-PAD semantics; padWidth is the key column's declared width used
// to pad an equals literal. Callers that are not under a PAD-SPACE/
// NO-PAD mismatch should not call this -- the comparison is emitted
// directly instead.
func RewriteForCollation(mode term.MatchMode, literal string, padWidth int) Rewrite {
	other := plain(mode, literal)

	switch mode {
	case term.Equals:
		return Rewrite{Main: withEscape(term.Equals, PadTo(literal, padWidth), ' '), Other: other}
	case term.LessThan, term.LessThanEquals:
		return Rewrite{Main: plain(term.LessThanEquals, PrefixBeforePadding(literal)), Other: other}
	case term.GreaterThan, term.GreaterThanEquals:
		if dec, ok := DecrementTrailingSOH(literal); ok {
			return Rewrite{Main: plain(term.GreaterThan, dec), Other: other}
		}
		// No valid lower bound: the main scan is unconstrained on this
		// side, the NO-PAD residual filter alone enforces the predicate.
		return Rewrite{Main: ParseValue{}, Other: other}
	default:
		return Rewrite{Main: other, Other: ParseValue{}}
	}
}
