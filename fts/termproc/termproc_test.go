package termproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/fts/nlp"
	"github.com/dolthub/go-fulltext-index/fts/term"
)

// splitAnalyzer is a minimal whitespace-tokenizing nlp.Analyzer stub
// used only to exercise termproc's pool-building logic.
type splitAnalyzer struct{}

func (splitAnalyzer) Analyze(text string, mode nlp.Mode, defaultLang term.Lang) ([]nlp.Token, error) {
	fields := strings.Fields(text)
	toks := make([]nlp.Token, len(fields))
	for i, f := range fields {
		toks[i] = nlp.Token{Surface: f, Lang: defaultLang, Position: i}
	}
	return toks, nil
}

func TestBuildFreeTextInsertsVoidMatchHelpful(t *testing.T) {
	pool, err := BuildFreeText("kanji search", splitAnalyzer{}, Config{Mode: nlp.ModeDual, DefaultLang: term.ParseLang("ja+en")})
	require.NoError(t, err)
	require.Equal(t, 2, pool.Len())
	pool.Each(func(i int, e term.TermElement) bool {
		require.Equal(t, term.VoidMatch, e.MatchMode)
		require.Equal(t, term.Helpful, e.Category)
		return true
	})
}

func TestSetDocumentFrequencyDropsEmpty(t *testing.T) {
	pool := term.NewPool(0)
	pool.InsertTerm(term.TermElement{Term: term.New("kanji", nil)})
	pool.InsertTerm(term.TermElement{Term: term.New("", nil)})

	SetDocumentFrequency(pool, map[string]int64{"kanji": 10})
	require.Equal(t, 1, pool.Len())
	require.Equal(t, int64(10), pool.At(0).DF)
}

func TestWeightTermUsesCalculator(t *testing.T) {
	m := term.NewMap()
	kanji := term.New("kanji", nil)
	m.Add(kanji, 1, 1.0)
	m.Add(kanji, 2, 1.0)

	pool := term.NewPool(0)
	pool.InsertTerm(term.TermElement{Term: kanji})

	err := WeightTerm(m, pool, 100, Config{Calculator: "OkapiTf"})
	require.NoError(t, err)
	require.Greater(t, pool.At(0).TWV, 0.0)
}

func TestSelectTermForcesHelpfulRelatedAndBoundsCount(t *testing.T) {
	m := term.NewMap()
	a, b, c := term.New("a", nil), term.New("b", nil), term.New("c", nil)
	m.Add(a, 1, 5.0)
	m.Add(b, 1, 1.0)
	m.Add(c, 1, 3.0)

	cand := term.NewPool(0)
	cand.InsertTerm(term.TermElement{Term: a})
	cand.InsertTerm(term.TermElement{Term: b})
	cand.InsertTerm(term.TermElement{Term: c})

	pool2, err := SelectTerm(m, cand, 10, Config{MaxCandidate: 2, Calculator: "OkapiTf"})
	require.NoError(t, err)
	require.Equal(t, 2, pool2.Len())
	pool2.Each(func(i int, e term.TermElement) bool {
		require.Equal(t, term.HelpfulRelated, e.Category)
		return true
	})
	require.Equal(t, "a", pool2.At(0).Surface)
}

func TestResolveExtractorHint(t *testing.T) {
	kind, id, err := ResolveExtractorHint("@UNARSCID:7")
	require.NoError(t, err)
	require.Equal(t, UNAResource, kind)
	require.Equal(t, 7, id)

	_, _, err = ResolveExtractorHint("@BOGUS:1")
	require.Error(t, err)
}
