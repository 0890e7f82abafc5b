package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/fts/term"
)

func TestCompileSingleWord(t *testing.T) {
	n := NewPattern("kanji", nil)
	cfg := Config{Mode: MatchDual, DefaultLang: term.ParseLang("ja+en")}

	res, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t, "#term[m,,ja+en](kanji)", res.Condition)
	require.Equal(t, 1, res.TermCount)
}

func TestCompileIdempotent(t *testing.T) {
	n := NewOr("", NewPattern("kanji", nil), NewWithin(0, 5, false,
		NewPattern("alpha", nil), NewPattern("beta", nil)))
	cfg := Config{Mode: MatchDual, DefaultLang: term.ParseLang("ja+en")}

	first, err := Compile(n, cfg)
	require.NoError(t, err)
	second, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t, first.Condition, second.Condition)
}

func TestCompileTail(t *testing.T) {
	n := Leaf(Tail)
	n.Operands = []*Node{NewPattern("abc", nil)}
	cfg := Config{Mode: MatchDual, DefaultLang: term.ParseLang("ja+en")}

	res, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t, "#end[0](#term[m,,ja+en](abc))", res.Condition)
}

func TestCompileHeadRejectedUnderNoLocation(t *testing.T) {
	n := Leaf(Head)
	n.Operands = []*Node{NewPattern("abc", nil)}
	cfg := Config{Mode: MatchDual, NoLocation: true}

	_, err := Compile(n, cfg)
	require.Error(t, err)
}

func TestCompileAndNotLeftAssociates(t *testing.T) {
	n := NewAndNot(NewPattern("a", nil), NewPattern("b", nil), NewPattern("c", nil))
	cfg := Config{Mode: MatchDual}

	res, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t,
		"#and-not(#and-not(#term[m,,](a),#term[m,,](b)),#term[m,,](c))",
		res.Condition)
}

func TestCompileFreeTextLeaf(t *testing.T) {
	n := NewFreeText("quick brown fox", term.ParseLang("en"), 1, 20)
	cfg := Config{Mode: MatchDual}

	res, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t, "#freetext[m,en,1,20](quick brown fox)", res.Condition)
	require.Equal(t, 1, res.TermCount)
}

func TestCompileWordList(t *testing.T) {
	n := NewWordList(
		NewWord("kanji", term.ParseLang("ja"), term.Essential, 1, 10),
		NewWord("index", term.ParseLang("en"), term.Helpful, 0.5, 100),
	)
	cfg := Config{Mode: MatchDual}

	res, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t,
		"#wordlist[2](#word[m,ja,essential,1,10](kanji),#word[m,en,helpful,0.5,100](index))",
		res.Condition)
	require.Equal(t, 2, res.TermCount)
}

func TestCompileWordListRejectsNonWordOperand(t *testing.T) {
	n := NewWordList(NewPattern("loose", nil))

	_, err := Compile(n, Config{Mode: MatchDual})
	require.Error(t, err)
}

func TestCompileExpandSynonymSingleExpansion(t *testing.T) {
	n := NewExpandSynonym(NewPattern("run", nil))
	cfg := Config{
		Mode: MatchDual,
		Expand: func(text string, lang term.Lang, rsc int) ([]string, error) {
			return []string{"run"}, nil
		},
	}

	res, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t, "#term[m,,](run)", res.Condition)
}

func TestCompileExpandSynonymMultipleExpansions(t *testing.T) {
	n := NewExpandSynonym(NewPattern("run", nil))
	cfg := Config{
		Mode: MatchDual,
		Expand: func(text string, lang term.Lang, rsc int) ([]string, error) {
			return []string{"run", "ran", "running"}, nil
		},
	}

	res, err := Compile(n, cfg)
	require.NoError(t, err)
	require.Equal(t, "#syn(#term[m,,](run),#term[m,,](ran),#term[m,,](running))", res.Condition)
	require.Equal(t, 3, res.TermCount)
}
