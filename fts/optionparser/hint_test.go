package optionparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

func TestConfigureHintSeparatorsRejectsNonASCII(t *testing.T) {
	err := ConfigureHintSeparators([]string{"、"})
	require.Error(t, err)
	require.True(t, ftserrors.ErrNotSupported.Is(err))
}

func TestConfigureHintSeparatorsRejectsTooLong(t *testing.T) {
	err := ConfigureHintSeparators([]string{"---------------------"})
	require.Error(t, err)
	require.True(t, ftserrors.ErrNotSupported.Is(err))
}

func TestConfigureHintSeparatorsRejectsOverlap(t *testing.T) {
	err := ConfigureHintSeparators([]string{"::", ":"})
	require.Error(t, err)
	require.True(t, ftserrors.ErrNotSupported.Is(err))
}

func TestParseExtractorHint(t *testing.T) {
	n, err := parseExtractorHint("@UNARSCID:3")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = parseExtractorHint("@BOGUS:3")
	require.Error(t, err)
	require.True(t, ftserrors.ErrWrongParameter.Is(err))

	_, err = parseExtractorHint("@TERMRSCID:x")
	require.Error(t, err)
}
