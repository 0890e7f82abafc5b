package score

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// parseParams splits a colon-separated parameter string and parses up
// to len(defaults) float64 values, filling unset trailing positions
// from defaults. An empty segment ("::") also falls back to its
// default. More segments than defaults is fatal (spec §4.6: "extra
// positions are fatal").
func parseParams(raw string, defaults []float64) ([]float64, error) {
	out := append([]float64(nil), defaults...)
	if raw == "" {
		return out, nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) > len(defaults) {
		return nil, ftserrors.ErrWrongParameter.New(
			fmt.Sprintf("too many parameters: got %d, want at most %d", len(parts), len(defaults)))
	}

	for i, p := range parts {
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, ftserrors.ErrWrongParameter.New("invalid numeric parameter: " + p)
		}
		out[i] = v
	}
	return out, nil
}

// --- OkapiTf ---------------------------------------------------------

// OkapiTf implements TF = tf/(k+tf), IDF == 1. Grounded on
// original_source/sydney/Driver/FullText2/OkapiTfScoreCalculator.cpp.
type OkapiTf struct {
	baseCalculator
	k float64
}

// NewOkapiTf parses a "k" parameter string (default k=1).
func NewOkapiTf(params string) (*OkapiTf, error) {
	p, err := parseParams(params, []float64{1})
	if err != nil {
		return nil, err
	}
	return &OkapiTf{k: p[0]}, nil
}

func (OkapiTf) Initialize() []ArgumentType { return []ArgumentType{TermFrequency} }

func (c *OkapiTf) FirstStep(args Args) (float64, error) {
	tf, _ := args.Get(TermFrequency)
	return tf / (c.k + tf), nil
}

func (c *OkapiTf) Copy() Calculator { cp := *c; return &cp }

// --- OkapiTfIdf -------------------------------------------------------

// OkapiTfIdf reuses OkapiTf's TF term and adds an IDF term selected by
// y (spec §4.6 table).
type OkapiTfIdf struct {
	k, x    float64
	y       int
	q, a, s float64
}

// NewOkapiTfIdf parses "k:x:y:q:a:s" (defaults k=1,x=0.2,y=1,q=0,a=0,s=0).
func NewOkapiTfIdf(params string) (*OkapiTfIdf, error) {
	p, err := parseParams(params, []float64{1, 0.2, 1, 0, 0, 0})
	if err != nil {
		return nil, err
	}
	return &OkapiTfIdf{k: p[0], x: p[1], y: int(p[2]), q: p[3], a: p[4], s: p[5]}, nil
}

func (OkapiTfIdf) Initialize() []ArgumentType {
	return []ArgumentType{TermFrequency, DocumentFrequency, TotalDocumentFrequency}
}

func (c *OkapiTfIdf) Prepare(Args) error { return nil }

func (c *OkapiTfIdf) FirstStep(args Args) (float64, error) {
	tf, _ := args.Get(TermFrequency)
	return tf / (c.k + tf), nil
}

func (c *OkapiTfIdf) SecondStep(args Args) (float64, error) {
	df, _ := args.Get(DocumentFrequency)
	n, _ := args.Get(TotalDocumentFrequency)
	idf, err := idfFamily(c.y, c.x, df, n)
	if err != nil {
		return 0, err
	}
	// q/a/s are carried through as the shaping knobs spec §4.6 lists in
	// OkapiTfIdf's parameter set; none of the pack's reference
	// calculators (OkapiTfScoreCalculator.cpp, TfIdfScoreCalculator.cpp)
	// apply them beyond the base idf family selection, so they are
	// accepted and stored but do not alter the formula.
	_ = c.q
	_ = c.a
	_ = c.s
	return idf, nil
}

func (c *OkapiTfIdf) Copy() Calculator { cp := *c; return &cp }

// --- NormalizedOkapiTf -------------------------------------------------

// NormalizedOkapiTf is OkapiTf with a document-length-normalized k
// term: TF = tf/(k*((1-lambda)+lambda*ld/L)+tf).
type NormalizedOkapiTf struct {
	baseCalculator
	k, lambda float64
}

// NewNormalizedOkapiTf parses "k:lambda" (defaults k=1, lambda=0.25).
func NewNormalizedOkapiTf(params string) (*NormalizedOkapiTf, error) {
	p, err := parseParams(params, []float64{1, 0.25})
	if err != nil {
		return nil, err
	}
	return &NormalizedOkapiTf{k: p[0], lambda: p[1]}, nil
}

func (NormalizedOkapiTf) Initialize() []ArgumentType {
	return []ArgumentType{TermFrequency, DocumentLength, AverageDocumentLength}
}

func (c *NormalizedOkapiTf) FirstStep(args Args) (float64, error) {
	tf, _ := args.Get(TermFrequency)
	ld, _ := args.Get(DocumentLength)
	l, _ := args.Get(AverageDocumentLength)
	denom := c.k*((1-c.lambda)+c.lambda*ld/l) + tf
	return tf / denom, nil
}

func (c *NormalizedOkapiTf) Copy() Calculator { cp := *c; return &cp }

// --- NormalizedOkapiTfIdf ----------------------------------------------

// NormalizedOkapiTfIdf combines NormalizedOkapiTf's TF term with
// OkapiTfIdf's IDF term.
type NormalizedOkapiTfIdf struct {
	k, lambda float64
	x         float64
	y         int
}

// NewNormalizedOkapiTfIdf parses "k:lambda:x:y" (defaults
// k=1,lambda=0.25,x=0.2,y=1).
func NewNormalizedOkapiTfIdf(params string) (*NormalizedOkapiTfIdf, error) {
	p, err := parseParams(params, []float64{1, 0.25, 0.2, 1})
	if err != nil {
		return nil, err
	}
	return &NormalizedOkapiTfIdf{k: p[0], lambda: p[1], x: p[2], y: int(p[3])}, nil
}

func (NormalizedOkapiTfIdf) Initialize() []ArgumentType {
	return []ArgumentType{TermFrequency, DocumentLength, AverageDocumentLength, DocumentFrequency, TotalDocumentFrequency}
}

func (c *NormalizedOkapiTfIdf) Prepare(Args) error { return nil }

func (c *NormalizedOkapiTfIdf) FirstStep(args Args) (float64, error) {
	tf, _ := args.Get(TermFrequency)
	ld, _ := args.Get(DocumentLength)
	l, _ := args.Get(AverageDocumentLength)
	denom := c.k*((1-c.lambda)+c.lambda*ld/l) + tf
	return tf / denom, nil
}

func (c *NormalizedOkapiTfIdf) SecondStep(args Args) (float64, error) {
	df, _ := args.Get(DocumentFrequency)
	n, _ := args.Get(TotalDocumentFrequency)
	return idfFamily(c.y, c.x, df, n)
}

func (c *NormalizedOkapiTfIdf) Copy() Calculator { cp := *c; return &cp }

// --- TfIdf --------------------------------------------------------------

// TfIdf implements TF = k1+k2*tf with the same IDF family selection as
// OkapiTfIdf. Grounded directly on
// original_source/sydney/Driver/FullText2/TfIdfScoreCalculator.cpp.
type TfIdf struct {
	k1, k2, x float64
	y         int
}

// NewTfIdf parses "k1:k2:x:y" (defaults k1=0,k2=1,x=0,y=0).
func NewTfIdf(params string) (*TfIdf, error) {
	p, err := parseParams(params, []float64{0, 1, 0, 0})
	if err != nil {
		return nil, err
	}
	return &TfIdf{k1: p[0], k2: p[1], x: p[2], y: int(p[3])}, nil
}

func (TfIdf) Initialize() []ArgumentType {
	return []ArgumentType{TermFrequency, DocumentFrequency, TotalDocumentFrequency}
}

func (c *TfIdf) Prepare(Args) error { return nil }

func (c *TfIdf) FirstStep(args Args) (float64, error) {
	tf, _ := args.Get(TermFrequency)
	return c.k1 + c.k2*tf, nil
}

func (c *TfIdf) SecondStep(args Args) (float64, error) {
	df, _ := args.Get(DocumentFrequency)
	n, _ := args.Get(TotalDocumentFrequency)
	return idfFamily(c.y, c.x, df, n)
}

func (c *TfIdf) Copy() Calculator { cp := *c; return &cp }

// --- NormalizedTfIdf ------------------------------------------------------

// NormalizedTfIdf adds document-length normalization to TfIdf's TF
// term: TF = (k1+k2*tf) / ((1-lambda)+lambda*ld/L).
type NormalizedTfIdf struct {
	k1, k2, lambda, x float64
	y                 int
}

// NewNormalizedTfIdf parses "k1:k2:lambda:x:y" (defaults
// k1=0,k2=1,lambda=0.25,x=0,y=0).
func NewNormalizedTfIdf(params string) (*NormalizedTfIdf, error) {
	p, err := parseParams(params, []float64{0, 1, 0.25, 0, 0})
	if err != nil {
		return nil, err
	}
	return &NormalizedTfIdf{k1: p[0], k2: p[1], lambda: p[2], x: p[3], y: int(p[4])}, nil
}

func (NormalizedTfIdf) Initialize() []ArgumentType {
	return []ArgumentType{TermFrequency, DocumentLength, AverageDocumentLength, DocumentFrequency, TotalDocumentFrequency}
}

func (c *NormalizedTfIdf) Prepare(Args) error { return nil }

func (c *NormalizedTfIdf) FirstStep(args Args) (float64, error) {
	tf, _ := args.Get(TermFrequency)
	ld, _ := args.Get(DocumentLength)
	l, _ := args.Get(AverageDocumentLength)
	return (c.k1 + c.k2*tf) / ((1 - c.lambda) + c.lambda*ld/l), nil
}

func (c *NormalizedTfIdf) SecondStep(args Args) (float64, error) {
	df, _ := args.Get(DocumentFrequency)
	n, _ := args.Get(TotalDocumentFrequency)
	return idfFamily(c.y, c.x, df, n)
}

func (c *NormalizedTfIdf) Copy() Calculator { cp := *c; return &cp }

// New constructs a calculator from its "Name[:p1[:p2...]]" hint. The
// reserved name "External" routes to the dynamic-library loader with
// the rest of the hint as its "library-path:payload" argument. Unknown
// names are WrongParameter.
func New(hint string) (Calculator, error) {
	name, params, _ := strings.Cut(hint, ":")
	switch name {
	case "External":
		return LoadExternal(params)
	case "OkapiTf":
		return NewOkapiTf(params)
	case "OkapiTfIdf":
		return NewOkapiTfIdf(params)
	case "NormalizedOkapiTf":
		return NewNormalizedOkapiTf(params)
	case "NormalizedOkapiTfIdf":
		return NewNormalizedOkapiTfIdf(params)
	case "TfIdf":
		return NewTfIdf(params)
	case "NormalizedTfIdf":
		return NewNormalizedTfIdf(params)
	default:
		return nil, ftserrors.ErrWrongParameter.New("unknown calculator: " + name)
	}
}
