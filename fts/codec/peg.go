package codec

import (
	"fmt"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// PEG is the Parameterized Exponential Golomb coder, parameterized by
// lambda alone. Bucket i has boundary lambda3*(2^i - 1) and width
// lambda+i bits, per spec §4.5.
type PEG struct {
	lambda                    int
	lambda1, lambda2, lambda3 int // lambda+1, 2^lambda-1, 2^lambda
}

// NewPEG validates lambda and derives lambda1/lambda2/lambda3.
func NewPEG(lambda int) (*PEG, error) {
	if lambda < 0 || lambda > 31 {
		return nil, ftserrors.ErrBadArgument.New(fmt.Sprintf("invalid lambda: %d", lambda))
	}
	return &PEG{
		lambda:  lambda,
		lambda1: lambda + 1,
		lambda2: (1 << uint(lambda)) - 1,
		lambda3: 1 << uint(lambda),
	}, nil
}

// ParsePEG parses a bare "lambda" description.
func ParsePEG(desc string) (*PEG, error) {
	lambda, err := parseIntParam(desc, "lambda")
	if err != nil {
		return nil, err
	}
	return NewPEG(lambda)
}

func (p *PEG) boundary(i int) uint64 {
	return uint64(p.lambda3) * ((uint64(1) << uint(i)) - 1)
}
func (p *PEG) bits(i int) uint { return uint(p.lambda + i) }

// maxBucket caps the bucket walk so bits(i) = lambda+i never exceeds
// 63, keeping boundary() inside uint64 (see ETG.maxBucket for the same
// reasoning).
func (p *PEG) maxBucket() int {
	m := 63 - p.lambda
	if m < 0 {
		m = 0
	}
	return m
}

// Encode appends the PEG code for value (>= 1) to buf.
func (p *PEG) Encode(buf []byte, value uint64) ([]byte, error) {
	return encodeWith(p, buf, value)
}

// Decode reads one PEG-coded value from r.
func (p *PEG) Decode(r *bitReader) (uint64, error) {
	return decodeWith(p, r)
}

// String renders the "lambda" parameter description.
func (p *PEG) String() string {
	return fmt.Sprintf("%d", p.lambda)
}
