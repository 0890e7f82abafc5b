// Package score implements the pluggable TF/IDF-family scoring kernel
// described in spec §4.6: a small Calculator interface, the six
// built-in parameterized families, and a plugin-based loader for
// externally supplied calculators.
package score

import "github.com/dolthub/go-fulltext-index/ftserrors"

// ArgumentType enumerates the per-hit values a Calculator may declare
// it needs via Initialize.
type ArgumentType int

const (
	TermFrequency ArgumentType = iota
	DocumentLength
	AverageDocumentLength
	DocumentFrequency
	TotalDocumentFrequency
)

// Argument is one (type, value) pair passed into FirstStep/SecondStep,
// in the order Initialize declared them.
type Argument struct {
	Type  ArgumentType
	Value float64
}

// Args is a small helper over an Argument slice for calculators that
// want to look a value up by type rather than by position.
type Args []Argument

func (a Args) Get(t ArgumentType) (float64, bool) {
	for _, arg := range a {
		if arg.Type == t {
			return arg.Value, true
		}
	}
	return 0, false
}

// Calculator is the contract every scoring family implements (spec
// §4.6). FirstStep computes the term-frequency component, SecondStep
// the inverse-document-frequency component (a Calculator that has no
// IDF term returns 1.0, via baseCalculator below); Prepare precomputes
// any document-invariant constants from the first call's arguments;
// Copy clones the calculator for a new worker thread.
type Calculator interface {
	Initialize() []ArgumentType
	Prepare(args Args) error
	FirstStep(args Args) (float64, error)
	SecondStep(args Args) (float64, error)
	Copy() Calculator
}

// baseCalculator supplies the default SecondStep == 1.0 behavior so
// that TF-only calculators (OkapiTf, NormalizedOkapiTf) need not
// repeat it, and a no-op Prepare for calculators with nothing to
// precompute.
type baseCalculator struct{}

func (baseCalculator) Prepare(Args) error               { return nil }
func (baseCalculator) SecondStep(Args) (float64, error) { return 1.0, nil }

// idfFamily selects the IDF formula a calculator's y parameter
// chooses, per spec §4.6's table. Grounded on
// original_source/sydney/Driver/FullText2/TfIdfScoreCalculator.cpp,
// whose secondStep(y_, x_, df_, N_) implements exactly the y==0
// (Robertson original) vs. y!=0/x==0 (identity) vs. y!=0/x!=0 (Ogawa
// ratio) branch structure; the additional y values spec.md calls out
// (Harper-Croft, Ogawa2, "original") are implemented here as the
// closed forms the spec table gives.
func idfFamily(y int, x, df, n float64) (float64, error) {
	switch y {
	case 0:
		// Robertson original.
		return (x + logNat(n/df)) / (x + logNat(n)), nil
	case 1:
		if x == 0 {
			return 1.0, nil
		}
		// Ogawa.
		return logNat(1+x*n/df) / logNat(1+x*n), nil
	case 2:
		// Harper-Croft.
		return (x + logNat((n-df)/df)) / (x + logNat(n-1)), nil
	case 6, 7:
		// Ogawa2 ratio.
		if x == 0 {
			return 1.0, nil
		}
		return logNat(x*n/df) / logNat(x*n), nil
	case 9:
		// Raw original form: no normalization by the collection term.
		return logNat(n / df), nil
	default:
		return 0, ftserrors.ErrWrongParameter.New("unknown idf family y value")
	}
}
