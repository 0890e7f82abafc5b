package fulltext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/fts/nlp"
	"github.com/dolthub/go-fulltext-index/fts/optionparser"
	"github.com/dolthub/go-fulltext-index/fts/term"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terms.db")
	e, err := New(Config{DirectoryPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestNewEngineDefaultsPostingCodec(t *testing.T) {
	e := newTestEngine(t)
	require.NotNil(t, e.PostingCodec())
}

func TestCompilePredicateContainsSingleWord(t *testing.T) {
	e := newTestEngine(t)
	root := compiler.NewContains([]int{0}, compiler.NewPattern("kanji", nil))

	o, err := e.CompilePredicate(root, optionparser.FileID{
		IndexingType:    optionparser.Dual,
		DefaultLanguage: term.ParseLang("ja+en"),
		KeyCount:        1,
		LanguageField:   -1,
	}, optionparser.ContainsOptions{})
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Equal(t, "#contains[single,0,,,,,,,,](#term[m,,ja+en](kanji))", o.Condition)
}

// splitAnalyzer is a minimal stub that returns the whole text as one
// token, used only to exercise Engine.BuildFreeTextPool's
// analyzer-registry resolution.
type splitAnalyzer struct{}

func (splitAnalyzer) Analyze(text string, mode nlp.Mode, defaultLang term.Lang) ([]nlp.Token, error) {
	return []nlp.Token{{Surface: text, Lang: defaultLang}}, nil
}

func TestBuildFreeTextPoolResolvesRegisteredAnalyzer(t *testing.T) {
	e := newTestEngine(t)
	e.Analyzers.Register(1, splitAnalyzer{})

	pool, err := e.BuildFreeTextPool("kanji", nlp.ModeDual, term.ParseLang("ja+en"), 1)
	require.NoError(t, err)
	require.Equal(t, 1, pool.Len())
}

func TestBuildFreeTextPoolUnregisteredAnalyzerErrors(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.BuildFreeTextPool("kanji", nlp.ModeDual, nil, 99)
	require.Error(t, err)
}
