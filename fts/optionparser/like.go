package optionparser

import (
	"strings"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/fts/term"
	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// likeSegment is one `%`-delimited piece of a LIKE pattern (spec
// §4.1 step 4): bFront/bBack record whether a wildcard precedes/
// follows the segment, bRegrex records whether it contains an
// underscore distance constraint.
type likeSegment struct {
	Value   string
	BFront  bool
	BBack   bool
	BRegrex bool
}

// splitLike splits pattern on unescaped '%' (escape char esc) into its
// segments, recording whether each segment is preceded/followed by a
// wildcard. For example, splitLike("abc%def", ...) yields
// [{Value:"abc",BFront:false,BBack:true},
// {Value:"def",BFront:true,BBack:false}].
func splitLike(pattern string, esc rune) ([]likeSegment, error) {
	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range pattern {
		if escaped {
			cur.WriteRune(r)
			escaped = false
			continue
		}
		if r == esc {
			escaped = true
			continue
		}
		if r == '%' {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if escaped {
		return nil, ftserrors.ErrInvalidEscape.New(pattern)
	}
	parts = append(parts, cur.String())

	segs := make([]likeSegment, len(parts))
	for i, p := range parts {
		segs[i] = likeSegment{
			Value:   p,
			BFront:  i > 0,
			BBack:   i < len(parts)-1,
			BRegrex: strings.ContainsRune(p, '_'),
		}
	}
	return segs, nil
}

// underscoreGroups splits a segment's value on runs of '_' into the
// literal sub-terms and the required #window distance between
// consecutive ones (spec §4.1 step 4: "consecutive _s count up the
// required distance").
func underscoreGroups(value string) (literals []string, distances []int) {
	var cur strings.Builder
	underscores := 0
	flushLiteral := func() {
		literals = append(literals, cur.String())
		cur.Reset()
	}
	for _, r := range value {
		if r == '_' {
			if cur.Len() > 0 || len(literals) == len(distances) {
				flushLiteral()
			}
			underscores++
			continue
		}
		if underscores > 0 {
			distances = append(distances, underscores)
			underscores = 0
		}
		cur.WriteRune(r)
	}
	flushLiteral()
	return literals, distances
}

// compileLike translates a single-field LIKE predicate into a
// tea-expression per spec §4.1 step 4. nolocation rejects the
// predicate outright (positional proximity is required); the Word
// indexing type rejects underscore constraints.
func compileLike(pattern string, esc rune, file FileID, bulkMaxSize int) (string, int, error) {
	if file.NoLocation {
		return "", 0, nil // cannot execute by index
	}
	if bulkMaxSize > 0 && len(pattern) > bulkMaxSize {
		return "", 0, ftserrors.ErrTooLongConditionalPattern.New(len(pattern), bulkMaxSize)
	}

	allSegs, err := splitLike(pattern, esc)
	if err != nil {
		return "", 0, err
	}
	// An empty segment carries no term to match (e.g. "%abc" splits
	// into ["", "abc"]): drop it, keeping its neighbors' bFront/bBack
	// flags as already computed from its position in the pattern.
	var segs []likeSegment
	for _, s := range allSegs {
		if s.Value != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		segs = allSegs
	}

	mode := compiler.MatchChar(file.IndexingType)
	termCount := 0
	exprs := make([]string, len(segs))
	for i, s := range segs {
		if s.BRegrex && file.IndexingType == Word {
			return "", 0, ftserrors.ErrWrongParameter.New("underscore wildcard not supported under Word indexing type")
		}

		var e string
		if s.BRegrex {
			e, err = compileUnderscoreSegment(s.Value, mode, file.DefaultLanguage, &termCount)
			if err != nil {
				return "", 0, err
			}
		} else {
			termCount++
			e = compiler.Term(mode, file.DefaultLanguage, s.Value)
		}

		if !s.BBack {
			e = compiler.End(i, e)
		}
		if !s.BFront {
			e = compiler.Location(i+1, e)
		}
		exprs[i] = e
	}

	if len(exprs) == 1 {
		return exprs[0], termCount, nil
	}
	return compiler.AndExpr("", exprs...), termCount, nil
}

func compileUnderscoreSegment(value string, mode compiler.MatchChar, lang term.Lang, termCount *int) (string, error) {
	literals, distances := underscoreGroups(value)
	if len(literals) == 1 {
		*termCount++
		return compiler.Term(mode, lang, literals[0]), nil
	}

	exprs := make([]string, len(literals))
	for i, lit := range literals {
		*termCount++
		exprs[i] = compiler.Term(mode, lang, lit)
	}
	// Fold left-associatively so each adjacent pair's required
	// distance is honored independently.
	acc := exprs[0]
	for i := 1; i < len(exprs); i++ {
		d := distances[i-1] + 1
		acc = compiler.Window(d, d, true, acc, exprs[i])
	}
	return acc, nil
}
