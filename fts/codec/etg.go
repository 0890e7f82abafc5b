package codec

import (
	"fmt"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// ETG is the Extended Golomb coder, parameterized by (lambda, factor).
// Bucket i has boundary values[i] = 2^lambda * (2^(i*factor) - 1) /
// (2^factor - 1) and width lambda + i*factor bits, per spec §4.5.
type ETG struct {
	lambda, factor   int
	lambda1, lambda2 int // lambda+1, 2^lambda
	factor1, factor2 int // factor+1, 2^factor
	values           [32]uint64
}

// NewETG validates (lambda, factor) and precomputes the bucket table.
func NewETG(lambda, factor int) (*ETG, error) {
	if lambda < 0 || lambda > 31 {
		return nil, ftserrors.ErrBadArgument.New(fmt.Sprintf("invalid lambda: %d", lambda))
	}
	if factor < 1 || factor > 31 {
		return nil, ftserrors.ErrBadArgument.New(fmt.Sprintf("invalid factor: %d", factor))
	}

	e := &ETG{
		lambda: lambda, factor: factor,
		lambda1: lambda + 1, lambda2: 1 << uint(lambda),
		factor1: factor + 1, factor2: 1 << uint(factor),
	}
	e.setValues()
	return e, nil
}

// setValues precomputes the bucket boundary table. The spec's
// closed-form values[i] = 2^lambda*(2^(i*factor)-1)/(2^factor-1) + 1
// is stated for 1-based postings; this implementation keeps buckets
// zero-based (Encode/Decode operate directly on values >= 1), so the
// "+1" offset is dropped here and values[0] is exactly 0.
func (e *ETG) setValues() {
	for i := 0; i < 32; i++ {
		e.values[i] = uint64(e.lambda2) * ((uint64(1) << uint(i*e.factor)) - 1) / uint64(e.factor2-1)
	}
}

// ParseETG parses a "lambda[:factor]" description (factor defaults to
// 1), matching ModInvertedExtendedGolombCoder::parse.
func ParseETG(desc string) (*ETG, error) {
	p1, p2, hasP2 := splitParam(desc)
	factor := 1
	if hasP2 {
		f, err := parseIntParam(p2, "factor")
		if err != nil {
			return nil, err
		}
		factor = f
	}
	lambda, err := parseIntParam(p1, "lambda")
	if err != nil {
		return nil, err
	}
	return NewETG(lambda, factor)
}

func (e *ETG) boundary(i int) uint64 { return e.values[i] }
func (e *ETG) bits(i int) uint       { return uint(e.lambda + i*e.factor) }

// maxBucket caps the bucket walk so that bits(i) never exceeds 63,
// keeping every boundary() and offset computation inside uint64. The
// spec's parameter range (lambda, factor both up to 31) can in theory
// describe buckets far wider than any real posting value ever reaches;
// this cap only matters for pathological parameter choices, not for
// realistic document-id/position sequences.
func (e *ETG) maxBucket() int {
	m := (63 - e.lambda) / e.factor
	if m > 31 {
		m = 31
	}
	if m < 0 {
		m = 0
	}
	return m
}

// Encode appends the ETG code for value (>= 1) to buf.
func (e *ETG) Encode(buf []byte, value uint64) ([]byte, error) {
	return encodeWith(e, buf, value)
}

// Decode reads one ETG-coded value from r.
func (e *ETG) Decode(r *bitReader) (uint64, error) {
	return decodeWith(e, r)
}

// String renders the "lambda:factor" parameter description.
func (e *ETG) String() string {
	return fmt.Sprintf("%d:%d", e.lambda, e.factor)
}
