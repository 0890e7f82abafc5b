package optionparser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/fts/term"
)

// CompileStream translates a plain comparison predicate tree over one
// column into the bitmap driver's #main/#other condition stream (spec
// §1.6): Main drives the index scan (at most one equals or one range
// pair), Other holds residual filters and the NO-PAD re-checks a
// PAD-SPACE key under a NO-PAD query requires (spec §4.2's
// decomposition table). queryNoPad selects NO-PAD semantics for the
// query side; padWidth is the key column's declared width, used to pad
// PAD-SPACE endpoints.
//
// Returns (nil, nil) when the predicate cannot be executed by the
// bitmap index, so the planner falls back to another path.
func CompileStream(root *compiler.Node, file FileID, queryNoPad bool, padWidth int) (*Stream, error) {
	if _, ok := checkField(root); !ok {
		return nil, nil
	}

	conds := root.Operands
	if root.Type != compiler.And {
		conds = []*compiler.Node{root}
	}

	st := &Stream{}
	var slots mainSlots
	for _, c := range conds {
		ok, sticky, err := appendCondition(st, &slots, c, file, queryNoPad, padWidth)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if sticky {
			// Unknown is sticky: every element after it is discarded and
			// the branch collapses to a single Unknown entry (spec §4.2).
			st.Main = ParseValueList{plain(term.Unknown, "")}
			st.Other = nil
			return st, nil
		}
	}
	return st, nil
}

// mainSlots tracks how much of the Main list's budget is spent: one
// equals, or one lower plus one upper range bound (spec §3's "at most
// one equals or one range pair").
type mainSlots struct {
	equals bool
	lower  bool
	upper  bool
}

func (s *mainSlots) takeEquals() bool {
	if s.equals || s.lower || s.upper {
		return false
	}
	s.equals = true
	return true
}

func (s *mainSlots) takeLower() bool {
	if s.equals || s.lower {
		return false
	}
	s.lower = true
	return true
}

func (s *mainSlots) takeUpper() bool {
	if s.equals || s.upper {
		return false
	}
	s.upper = true
	return true
}

// appendCondition compiles one comparison node into st. ok=false means
// the predicate shape cannot execute on the bitmap index at all;
// sticky=true means an Unknown match was observed.
func appendCondition(st *Stream, slots *mainSlots, n *compiler.Node, file FileID, queryNoPad bool, padWidth int) (ok, sticky bool, err error) {
	switch n.Type {
	case compiler.EqualsToNull:
		// A comparison with NULL never matches a stored value: the whole
		// branch is Unknown.
		return true, true, nil
	case compiler.Like:
		lit, has := literalOf(n)
		if !has {
			return false, false, nil
		}
		return appendLike(st, slots, lit, file, queryNoPad, padWidth), false, nil
	case compiler.Equals, compiler.NotEquals, compiler.GreaterThan,
		compiler.GreaterThanEquals, compiler.LessThan, compiler.LessThanEquals:
		lit, has := literalOf(n)
		if !has {
			return false, false, nil
		}
		mm := matchModeFor(n.Type)
		return appendComparison(st, slots, mm, lit, file, queryNoPad, padWidth), false, nil
	default:
		return false, false, nil
	}
}

func matchModeFor(t compiler.NodeType) term.MatchMode {
	switch t {
	case compiler.Equals:
		return term.Equals
	case compiler.NotEquals:
		return term.NotEquals
	case compiler.GreaterThan:
		return term.GreaterThan
	case compiler.GreaterThanEquals:
		return term.GreaterThanEquals
	case compiler.LessThan:
		return term.LessThan
	case compiler.LessThanEquals:
		return term.LessThanEquals
	default:
		return term.VoidMatch
	}
}

func isInequality(mm term.MatchMode) bool {
	switch mm {
	case term.GreaterThan, term.GreaterThanEquals, term.LessThan, term.LessThanEquals:
		return true
	}
	return false
}

// appendComparison places one comparison into Main (honoring the
// equals-or-range-pair budget) or Other.
func appendComparison(st *Stream, slots *mainSlots, mm term.MatchMode, lit string, file FileID, queryNoPad bool, padWidth int) bool {
	// Known compatibility bug, preserved rather than fixed (spec §9's
	// open question): v1-created NO-PAD fields mishandle trailing spaces
	// in inequalities, so the index is disabled for that case and the
	// planner warned.
	if file.Collation == NoPad && isInequality(mm) && strings.HasSuffix(lit, " ") {
		logrus.WithField("literal", lit).
			Warn("optionparser: no-pad inequality on trailing-space literal, index disabled")
		return false
	}

	mismatch := file.Collation == PadSpace && queryNoPad

	switch mm {
	case term.NotEquals:
		// Never a scan driver; always a residual filter.
		st.Other = append(st.Other, plain(mm, lit))
		return true
	case term.Equals:
		if !slots.takeEquals() {
			st.Other = append(st.Other, plain(mm, lit))
			return true
		}
	case term.GreaterThan, term.GreaterThanEquals:
		if !slots.takeLower() {
			st.Other = append(st.Other, plain(mm, lit))
			return true
		}
	case term.LessThan, term.LessThanEquals:
		if !slots.takeUpper() {
			st.Other = append(st.Other, plain(mm, lit))
			return true
		}
	default:
		return false
	}

	if !mismatch {
		st.Main = append(st.Main, plain(mm, lit))
		return true
	}

	rw := RewriteForCollation(mm, lit, padWidth)
	if rw.Main != (ParseValue{}) {
		st.Main = append(st.Main, rw.Main)
	}
	if rw.Other != (ParseValue{}) {
		st.Other = append(st.Other, rw.Other)
	}
	return true
}

// appendLike rewrites `like 'abc%'` into the PAD-SPACE range pair
// `abc <= x < abd` on Main plus the NO-PAD like re-check on Other,
// per spec §4.2's table row for like patterns.
func appendLike(st *Stream, slots *mainSlots, pattern string, file FileID, queryNoPad bool, padWidth int) bool {
	segs, err := splitLike(pattern, '\\')
	if err != nil {
		return false
	}
	prefix := ""
	if len(segs) > 0 && !segs[0].BFront && !segs[0].BRegrex {
		prefix = segs[0].Value
	}

	if prefix != "" && !slots.equals && !slots.lower && !slots.upper {
		slots.lower, slots.upper = true, true
		lower := prefix
		if file.Collation == PadSpace {
			lower = PadTo(prefix, padWidth)
		}
		st.Main = append(st.Main, withEscape(term.GreaterThanEquals, lower, ' '))
		if upper, ok := incrementLastByte(prefix); ok {
			st.Main = append(st.Main, plain(term.LessThan, upper))
		}
	}
	st.Other = append(st.Other, ParseValue{
		MatchMode:    term.Like,
		Value:        pattern,
		OptionalChar: '\\',
		HasOptional:  true,
	})
	return true
}

// incrementLastByte returns the smallest string strictly greater than
// every string with prefix s: s with its last non-0xFF byte
// incremented and everything after it dropped. All-0xFF prefixes have
// no upper bound.
func incrementLastByte(s string) (string, bool) {
	b := []byte(s)
	i := len(b) - 1
	for i >= 0 && b[i] == 0xFF {
		i--
	}
	if i < 0 {
		return "", false
	}
	b[i]++
	return string(b[:i+1]), true
}
