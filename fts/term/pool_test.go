package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolInsertionOrderPreserved(t *testing.T) {
	p := NewPool(0)
	p.InsertTerm(TermElement{Term: New("b", nil)})
	p.InsertTerm(TermElement{Term: New("a", nil)})
	p.InsertTerm(TermElement{Term: New("c", nil)})

	require.Equal(t, 3, p.Len())
	require.Equal(t, "b", p.At(0).Normalized())
	require.Equal(t, "a", p.At(1).Normalized())
	require.Equal(t, "c", p.At(2).Normalized())
}

func TestPoolBoundedByMaxTerm(t *testing.T) {
	p := NewPool(2)
	p.InsertTerm(TermElement{Term: New("a", nil)})
	p.InsertTerm(TermElement{Term: New("b", nil)})
	p.InsertTerm(TermElement{Term: New("c", nil)})

	require.Equal(t, 2, p.Len())
}

func TestPoolSetDF(t *testing.T) {
	p := NewPool(0)
	p.InsertTerm(TermElement{Term: New("a", nil)})
	p.InsertTerm(TermElement{Term: New("a", nil)})
	p.InsertTerm(TermElement{Term: New("b", nil)})

	n := p.SetDF(New("a", nil), 42)
	require.Equal(t, 2, n)
	require.EqualValues(t, 42, p.At(0).DF)
	require.EqualValues(t, 42, p.At(1).DF)
	require.Zero(t, p.At(2).DF)
}

func TestPoolValidateDropsEmpty(t *testing.T) {
	p := NewPool(0)
	p.InsertTerm(TermElement{Term: New("a", nil)})
	p.InsertTerm(TermElement{Term: Term{}})
	p.Validate()

	require.Equal(t, 1, p.Len())
	require.Equal(t, "a", p.At(0).Normalized())
}

func TestMapWeightAndDocCount(t *testing.T) {
	m := NewMap()
	m.Add(New("kanji", nil), 1, 1.0)
	m.Add(New("kanji", nil), 2, 2.0)
	m.Add(New("kanji", nil), 1, 0.5)

	w, ok := m.Weight(New("kanji", nil))
	require.True(t, ok)
	require.InDelta(t, 3.5, w, 1e-9)
	require.Equal(t, 2, m.DocCount(New("kanji", nil)))

	_, ok = m.Weight(New("missing", nil))
	require.False(t, ok)
}
