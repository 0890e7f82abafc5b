package optionparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/fts/term"
)

func padSpaceFile() FileID {
	f := dualFile(1)
	f.Collation = PadSpace
	return f
}

func TestCompileStreamEqualsPadSpaceUnderNoPad(t *testing.T) {
	root := compiler.Comparison(compiler.Equals, 0, "abc")

	st, err := CompileStream(root, padSpaceFile(), true, 5)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Len(t, st.Main, 1)
	require.Equal(t, term.Equals, st.Main[0].MatchMode)
	require.Equal(t, "abc  ", st.Main[0].Value)
	require.True(t, st.Main[0].HasOptional)
	require.Equal(t, ' ', st.Main[0].OptionalChar)
	require.Len(t, st.Other, 1)
	require.Equal(t, "abc", st.Other[0].Value)
}

func TestCompileStreamGreaterThanDecrementsTrailingSOH(t *testing.T) {
	root := compiler.Comparison(compiler.GreaterThan, 0, "abc")

	st, err := CompileStream(root, padSpaceFile(), true, 5)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Len(t, st.Main, 1)
	require.Equal(t, term.GreaterThan, st.Main[0].MatchMode)
	require.Equal(t, "abb", st.Main[0].Value)
	require.Len(t, st.Other, 1)
	require.Equal(t, term.GreaterThan, st.Other[0].MatchMode)
	require.Equal(t, "abc", st.Other[0].Value)
}

func TestCompileStreamAllSOHDropsLowerBound(t *testing.T) {
	root := compiler.Comparison(compiler.GreaterThan, 0, "\x01\x01")

	st, err := CompileStream(root, padSpaceFile(), true, 5)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Empty(t, st.Main)
	require.Len(t, st.Other, 1)
}

func TestCompileStreamLikePrefixBecomesRangePair(t *testing.T) {
	root := compiler.Comparison(compiler.Like, 0, "abc%")

	st, err := CompileStream(root, padSpaceFile(), true, 5)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Len(t, st.Main, 2)
	require.Equal(t, term.GreaterThanEquals, st.Main[0].MatchMode)
	require.Equal(t, "abc  ", st.Main[0].Value)
	require.Equal(t, term.LessThan, st.Main[1].MatchMode)
	require.Equal(t, "abd", st.Main[1].Value)
	require.Len(t, st.Other, 1)
	require.Equal(t, term.Like, st.Other[0].MatchMode)
	require.Equal(t, "abc%", st.Other[0].Value)
}

func TestCompileStreamNullComparisonIsStickyUnknown(t *testing.T) {
	root := compiler.NewAnd("",
		compiler.Comparison(compiler.EqualsToNull, 0, ""),
		compiler.Comparison(compiler.Equals, 0, "abc"),
	)

	st, err := CompileStream(root, padSpaceFile(), true, 5)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Len(t, st.Main, 1)
	require.Equal(t, term.Unknown, st.Main[0].MatchMode)
	require.Empty(t, st.Other)
}

func TestCompileStreamRangePairPlusResidual(t *testing.T) {
	root := compiler.NewAnd("",
		compiler.Comparison(compiler.GreaterThanEquals, 0, "apple"),
		compiler.Comparison(compiler.LessThan, 0, "mango"),
		compiler.Comparison(compiler.NotEquals, 0, "kiwi"),
	)
	f := dualFile(1)
	f.Collation = NoPad

	st, err := CompileStream(root, f, true, 0)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Len(t, st.Main, 2)
	require.Len(t, st.Other, 1)
	require.Equal(t, term.NotEquals, st.Other[0].MatchMode)
}

func TestCompileStreamNoPadTrailingSpaceInequalityDisablesIndex(t *testing.T) {
	root := compiler.Comparison(compiler.GreaterThan, 0, "abc ")
	f := dualFile(1)
	f.Collation = NoPad

	st, err := CompileStream(root, f, true, 0)
	require.NoError(t, err)
	require.Nil(t, st)
}

func TestCompileStreamRejectsDisjunction(t *testing.T) {
	root := compiler.NewOr("",
		compiler.Comparison(compiler.Equals, 0, "a"),
		compiler.Comparison(compiler.Equals, 0, "b"),
	)

	st, err := CompileStream(root, padSpaceFile(), true, 5)
	require.NoError(t, err)
	require.Nil(t, st)
}
