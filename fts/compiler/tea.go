package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dolthub/go-fulltext-index/fts/term"
	"github.com/dolthub/go-fulltext-index/ftserrors"
	"github.com/dolthub/go-fulltext-index/internal/escape"
)

// MatchChar renders the indexing-mode letter a Pattern leaf's #term
// primitive carries, selected by the index's indexing type (spec
// §4.1: "m = m|e|n by indexing type").
type MatchChar byte

const (
	MatchDual  MatchChar = 'm'
	MatchWord  MatchChar = 'e'
	MatchNgram MatchChar = 'n'
	MatchExact MatchChar = 's'
	MatchHead  MatchChar = 'h'
	MatchTail  MatchChar = 't'
)

// Term renders a leaf full-text term primitive: #term[M,,lang](text).
// Grounded on spec §8 scenario 1's literal expected output
// "#term[m,,ja+en](kanji)".
func Term(m MatchChar, lang term.Lang, text string) string {
	return fmt.Sprintf("#term[%c,,%s](%s)", m, lang.String(), escape.Encode(text))
}

// Location renders #location[n](expr), used for Head and for a LIKE
// segment whose front is anchored (no leading '%').
func Location(n int, expr string) string {
	return fmt.Sprintf("#location[%d](%s)", n, expr)
}

// End renders #end[n](expr), used for Tail and for a LIKE segment
// whose back is anchored (no trailing '%').
func End(n int, expr string) string {
	return fmt.Sprintf("#end[%d](%s)", n, expr)
}

// Scale renders #scale[f](expr), Weight(x)[scale]'s emitted form.
func Scale(f float64, expr string) string {
	return fmt.Sprintf("#scale[%s](%s)", formatScale(f), expr)
}

func formatScale(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Window renders #window[lo,hi,o|u](expr, expr, ...), the tea form of
// a Within node; symmetric=true selects ordered ("o"), false selects
// unordered ("u").
func Window(lo, hi int, symmetric bool, exprs ...string) string {
	mode := "u"
	if symmetric {
		mode = "o"
	}
	return fmt.Sprintf("#window[%d,%d,%s](%s)", lo, hi, mode, strings.Join(exprs, ","))
}

// AndExpr renders #and[comb](expr, ...); comb is omitted when empty.
func AndExpr(comb string, exprs ...string) string {
	return combinatorExpr("and", comb, exprs)
}

// OrExpr renders #or[comb](expr, ...).
func OrExpr(comb string, exprs ...string) string {
	return combinatorExpr("or", comb, exprs)
}

func combinatorExpr(name, comb string, exprs []string) string {
	return fmt.Sprintf("#%s[%s](%s)", name, comb, strings.Join(exprs, ","))
}

// AndNotExpr left-associatively folds exprs into nested
// #and-not(#and-not(a,b),c)... per spec §4.1's table.
func AndNotExpr(exprs ...string) string {
	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = fmt.Sprintf("#and-not(%s,%s)", acc, e)
	}
	return acc
}

// WordExpr renders a weighted word-list leaf:
// #word[M,lang,cat,scale,df](text).
func WordExpr(m MatchChar, lang term.Lang, cat term.Category, scale float64, df int64, text string) string {
	return fmt.Sprintf("#word[%c,%s,%s,%s,%d](%s)",
		m, lang.String(), cat.String(), formatScale(scale), df, escape.Encode(text))
}

// FreeTextExpr renders #freetext[matchMode,lang,scaleParam,wordLimit](text).
func FreeTextExpr(m MatchChar, lang term.Lang, scale float64, wordLimit int, text string) string {
	return fmt.Sprintf("#freetext[%c,%s,%s,%d](%s)",
		m, lang.String(), formatScale(scale), wordLimit, escape.Encode(text))
}

// WordListExpr renders #wordlist[n](expr, ...) with n the operand
// count.
func WordListExpr(exprs ...string) string {
	return fmt.Sprintf("#wordlist[%d](%s)", len(exprs), strings.Join(exprs, ","))
}

// Syn renders #syn(expr, ...).
func Syn(exprs ...string) string {
	return fmt.Sprintf("#syn(%s)", strings.Join(exprs, ","))
}

// Uk renders the sticky-Unknown sentinel #eq(#uk) spec §4.2 names:
// once a branch observes an Unknown match mode (e.g. a NULL
// comparison), every subsequent element is discarded and the branch
// emits this instead.
const Uk = "#eq(#uk)"

// matchCharFor maps an ExactWord/SimpleWord/.../WordTail node type to
// its #term match-mode letter (spec §4.1's table row for those five
// node kinds).
func matchCharFor(t NodeType) (MatchChar, error) {
	switch t {
	case ExactWord:
		return MatchExact, nil
	case SimpleWord:
		return MatchWord, nil
	case StringWord:
		return MatchNgram, nil
	case WordHead:
		return MatchHead, nil
	case WordTail:
		return MatchTail, nil
	default:
		return 0, ftserrors.ErrWrongParameter.New("not a #term leaf node type")
	}
}
