package score

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// stubCalculator lets the External wrapper tests exercise Copy/Initialize
// delegation without an actual compiled .so plugin.
type stubCalculator struct {
	firstStep float64
	copies    int
}

func (s *stubCalculator) Initialize() []ArgumentType { return []ArgumentType{TermFrequency} }
func (s *stubCalculator) Prepare(Args) error         { return nil }
func (s *stubCalculator) FirstStep(Args) (float64, error) {
	return s.firstStep, nil
}
func (s *stubCalculator) SecondStep(Args) (float64, error) { return 1.0, nil }
func (s *stubCalculator) Copy() Calculator {
	s.copies++
	return &stubCalculator{firstStep: s.firstStep}
}

func TestExternalDelegatesToInner(t *testing.T) {
	inner := &stubCalculator{firstStep: 0.5}
	released := false
	ext := &External{
		libraryPath: "libfake.so",
		payload:     "payload",
		release:     func(Calculator) { released = true },
		inner:       inner,
	}

	require.Equal(t, []ArgumentType{TermFrequency}, ext.Initialize())

	fs, err := ext.FirstStep(nil)
	require.NoError(t, err)
	require.Equal(t, 0.5, fs)

	ss, err := ext.SecondStep(nil)
	require.NoError(t, err)
	require.Equal(t, 1.0, ss)

	cp := ext.Copy()
	extCp, ok := cp.(*External)
	require.True(t, ok)
	require.Equal(t, ext.libraryPath, extCp.libraryPath)
	require.NotSame(t, ext.inner, extCp.inner)

	ext.Release()
	require.True(t, released)
}

func TestLoadExternalRejectsMissingPayload(t *testing.T) {
	_, err := LoadExternal("no-colon-here")
	require.Error(t, err)
	require.True(t, ftserrors.ErrWrongParameter.Is(err))
}

func TestLoadExternalMissingLibraryIsFunctionNotFound(t *testing.T) {
	_, err := LoadExternal("/nonexistent/path/to/lib.so:payload")
	require.Error(t, err)
	require.True(t, ftserrors.ErrFunctionNotFound.Is(err))
}
