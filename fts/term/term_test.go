package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLangDedupesAndOrders(t *testing.T) {
	l := ParseLang("ja+en+ja")
	require.Equal(t, "ja+en", l.String())
}

func TestParseLangEmpty(t *testing.T) {
	require.Nil(t, ParseLang(""))
}

func TestNewDerivesCharClass(t *testing.T) {
	tm := New("kanji", ParseLang("en"))
	require.Equal(t, "kanji", tm.Normalized())
	require.NotZero(t, tm.Type)
}

func TestTermEqualIgnoresLang(t *testing.T) {
	a := New("kanji", ParseLang("en"))
	b := New("kanji", ParseLang("ja"))
	require.True(t, a.Equal(b))
}

func TestTermEmpty(t *testing.T) {
	require.True(t, Term{}.Empty())
	require.False(t, New("x", nil).Empty())
}

func TestMatchModeString(t *testing.T) {
	require.Equal(t, "=", Equals.String())
	require.Equal(t, "like", Like.String())
	require.Equal(t, "void", VoidMatch.String())
}
