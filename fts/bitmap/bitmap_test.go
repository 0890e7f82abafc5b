package bitmap

import (
	"testing"

	pilosa "github.com/pilosa/go-pilosa"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/fts/optionparser"
	"github.com/dolthub/go-fulltext-index/fts/term"
)

func schemaField(t *testing.T) *pilosa.Field {
	t.Helper()
	schema := pilosa.NewSchema()
	return schema.Index("db.tbl.idx").Field("body")
}

func TestBucketIDStable(t *testing.T) {
	require.Equal(t, BucketID("abc"), BucketID("abc"))
	require.NotEqual(t, BucketID("abc"), BucketID("abd"))
}

func TestClassifyMainEqualsProducesRowQueries(t *testing.T) {
	f := schemaField(t)
	rows, kind := classifyMain(f, optionparser.ParseValueList{
		{MatchMode: term.Equals, Value: "abc"},
	})
	require.Equal(t, mainRows, kind)
	require.Len(t, rows, 1)
}

// A Main list holding only ordered comparisons must report
// unconstrained, not an empty row set: the caller evaluates
// Stream.Other over the full candidate set, rather than reading the
// empty intersection as zero matches.
func TestClassifyMainRangeOnlyIsUnconstrained(t *testing.T) {
	f := schemaField(t)
	rows, kind := classifyMain(f, optionparser.ParseValueList{
		{MatchMode: term.GreaterThan, Value: "abb"},
		{MatchMode: term.LessThan, Value: "abd"},
	})
	require.Equal(t, mainUnconstrained, kind)
	require.Empty(t, rows)
}

func TestClassifyMainEmptyListIsUnconstrained(t *testing.T) {
	f := schemaField(t)
	_, kind := classifyMain(f, nil)
	require.Equal(t, mainUnconstrained, kind)
}

func TestClassifyMainStickyUnknownMatchesNothing(t *testing.T) {
	f := schemaField(t)
	_, kind := classifyMain(f, optionparser.ParseValueList{
		{MatchMode: term.Unknown},
	})
	require.Equal(t, mainEmpty, kind)
}

func TestClassifyMainEqualsAnchorWithResidualRange(t *testing.T) {
	f := schemaField(t)
	rows, kind := classifyMain(f, optionparser.ParseValueList{
		{MatchMode: term.Equals, Value: "abc"},
		{MatchMode: term.LessThanEquals, Value: "abd"},
	})
	require.Equal(t, mainRows, kind)
	require.Len(t, rows, 1)
}
