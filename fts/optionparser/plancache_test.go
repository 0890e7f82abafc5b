package optionparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
)

func TestPlannerKeepGetErase(t *testing.T) {
	pl := NewPlanner()

	_, ok := pl.Get("q1")
	require.False(t, ok)

	pl.Keep("q1", &OpenOption{Condition: "#term[m,,](a)"})
	p, ok := pl.Get("q1")
	require.True(t, ok)
	require.Equal(t, "#term[m,,](a)", p.Option.Condition)
	p.Release()

	require.True(t, pl.Erase("q1"))
	_, ok = pl.Get("q1")
	require.False(t, ok)
}

func TestPlanKeyIsStructural(t *testing.T) {
	f := dualFile(1)
	a := compiler.NewContains([]int{0}, compiler.NewPattern("kanji", nil))
	b := compiler.NewContains([]int{0}, compiler.NewPattern("kanji", nil))
	c := compiler.NewContains([]int{0}, compiler.NewPattern("sushi", nil))

	ka, err := PlanKey(a, f)
	require.NoError(t, err)
	kb, err := PlanKey(b, f)
	require.NoError(t, err)
	kc, err := PlanKey(c, f)
	require.NoError(t, err)

	require.Equal(t, ka, kb)
	require.NotEqual(t, ka, kc)
}

func TestPlannerEraseSkipsInUsePlan(t *testing.T) {
	pl := NewPlanner()
	pl.Keep("q1", &OpenOption{})

	p, ok := pl.Get("q1")
	require.True(t, ok)

	require.False(t, pl.Erase("q1"))

	p.Release()
	require.True(t, pl.Erase("q1"))
}
