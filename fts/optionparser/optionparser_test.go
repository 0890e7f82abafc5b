package optionparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/fts/term"
)

func dualFile(keyCount int) FileID {
	return FileID{
		IndexingType:    Dual,
		DefaultLanguage: term.ParseLang("ja+en"),
		KeyCount:        keyCount,
		LanguageField:   -1,
	}
}

func TestCompileContainsSingleWord(t *testing.T) {
	root := compiler.NewContains([]int{0}, compiler.NewPattern("kanji", nil))

	o, err := Compile(root, dualFile(1), Config{})
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, "#contains[single,0,,,,,,,,](#term[m,,ja+en](kanji))", o.Condition)
	require.Equal(t, 1, o.TermCount)
	require.Equal(t, 1, o.SearchFieldCount())
	require.Equal(t, 0, o.SearchField[0])
	require.Equal(t, Normal, o.SearchType)
}

func TestCompileLikeWildcardPrefix(t *testing.T) {
	root := compiler.Comparison(compiler.Like, 0, "%abc")

	o, err := Compile(root, dualFile(1), Config{})
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, "#contains[single,0,,,,,,,,](#end[0](#term[m,,ja+en](abc)))", o.Condition)
	require.Equal(t, Normal, o.SearchType)
}

func TestCompileContainsFreeTextOperandSetsSearchType(t *testing.T) {
	root := compiler.NewContains([]int{0},
		compiler.NewFreeText("quick brown fox", nil, 1, 20))

	o, err := Compile(root, dualFile(1), Config{})
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, FreeText, o.SearchType)
	require.Equal(t, "#contains[single,0,,,,,,,,](#freetext[m,ja+en,1,20](quick brown fox))", o.Condition)
}

func TestCompileContainsRejectsOutOfRangeField(t *testing.T) {
	root := compiler.NewContains([]int{5}, compiler.NewPattern("kanji", nil))

	o, err := Compile(root, dualFile(1), Config{})
	require.NoError(t, err)
	require.Nil(t, o)
}

func TestCompileMixedFieldRejected(t *testing.T) {
	root := compiler.NewAnd("",
		compiler.Comparison(compiler.Equals, 0, "a"),
		compiler.Comparison(compiler.Equals, 1, "b"),
	)

	o, err := Compile(root, dualFile(2), Config{})
	require.NoError(t, err)
	require.Nil(t, o)
}

func TestCompileVerifyPredicate(t *testing.T) {
	root := compiler.NewAnd("",
		compiler.Comparison(compiler.Equals, 0, "hello"),
		compiler.Comparison(compiler.Equals, RowIDField, "42"),
	)

	o, err := Compile(root, dualFile(1), Config{})
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, Equal, o.SearchType)
	require.Equal(t, int64(42), o.RowID)
	require.Equal(t, []string{"hello"}, o.SectionValue)
}

func TestSplitLikeWildcardMiddle(t *testing.T) {
	segs, err := splitLike("abc%def", '\\')
	require.NoError(t, err)
	require.Equal(t, []likeSegment{
		{Value: "abc", BFront: false, BBack: true},
		{Value: "def", BFront: true, BBack: false},
	}, segs)
}

func TestDecrementTrailingSOH(t *testing.T) {
	got, ok := DecrementTrailingSOH("abc")
	require.True(t, ok)
	require.Equal(t, "abb", got)

	_, ok = DecrementTrailingSOH("\x01\x01")
	require.False(t, ok)
}

func TestRewriteForCollationEquals(t *testing.T) {
	rw := RewriteForCollation(term.Equals, "abc", 5)
	require.Equal(t, "abc  ", rw.Main.Value)
	require.True(t, rw.Main.HasOptional)
	require.Equal(t, rune(' '), rw.Main.OptionalChar)
	require.Equal(t, "abc", rw.Other.Value)
}
