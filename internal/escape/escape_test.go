package escape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{
		"kanji",
		"kan(ji)",
		"a,b,c",
		"#window[0,5]",
		`back\slash`,
		"",
	}

	for _, c := range cases {
		enc := Encode(c)
		require.Equal(t, c, Decode(enc))
	}
}

func TestEncodeEscapesEverySpecialChar(t *testing.T) {
	require.Equal(t, `\#\(\)\,\[\]\\`, Encode("#(),[]\\"))
}

func TestEncodeLeavesPlainTextAlone(t *testing.T) {
	require.Equal(t, "kanji", Encode("kanji"))
}

func TestDecodeTrailingBackslash(t *testing.T) {
	require.Equal(t, `a\`, Decode(`a\`))
}
