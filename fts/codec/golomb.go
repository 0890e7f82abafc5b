// Package codec implements the Extended-Golomb (ETG) and
// Parameterized-Exponential-Golomb (PEG) variable-length integer
// codecs used to store posting-list document ids and position gaps
// (spec §4.5). Both codecs are exponential-bucket codes: value v is
// located in the bucket i such that boundary(i) <= v < boundary(i+1),
// written as a unary bucket selector followed by a fixed-width offset
// within the bucket; decode is the mirror operation. This structure,
// and the parameter validation/parsing it sits on, is grounded on
// original_source/sydney/Driver/FullText2/FtsInverted/
// ModInvertedExtendedGolombCoder.cpp and
// ModInvertedParameterizedExpGolombCoder.cpp.
package codec

import (
	"strconv"
	"strings"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// Coder is the common contract both codecs satisfy.
type Coder interface {
	// Encode appends the variable-length code for value to buf and
	// returns the extended slice. value must be >= 1.
	Encode(buf []byte, value uint64) ([]byte, error)
	// Decode reads one value from r, advancing it past the code.
	Decode(r *bitReader) (uint64, error)
	// String renders the coder's parameter string, e.g. "3:2" or "4".
	String() string
}

// bucketing is implemented by both coder kinds to share the
// encode/decode walk.
type bucketing interface {
	// boundary returns the smallest value whose bucket index is i.
	boundary(i int) uint64
	// bits returns the number of offset bits bucket i uses.
	bits(i int) uint
	// maxBucket is the largest valid bucket index (31 for ETG, whose
	// table is precomputed for i in [0, 31]; 63-lambda for PEG).
	maxBucket() int
}

func encodeWith(b bucketing, buf []byte, value uint64) ([]byte, error) {
	if value < 1 {
		return nil, ftserrors.ErrBadArgument.New("codec value must be >= 1, got 0")
	}

	i := 0
	for i < b.maxBucket() && value >= b.boundary(i+1) {
		i++
	}

	w := bitWriter{buf: buf}
	w.writeUnary(i)
	w.writeBits(value-b.boundary(i), b.bits(i))
	return w.bytes(), nil
}

func decodeWith(b bucketing, r *bitReader) (uint64, error) {
	i, err := r.readUnary()
	if err != nil {
		return 0, err
	}
	if i > b.maxBucket() {
		return 0, ftserrors.ErrBadArgument.New("codec: bucket index out of range")
	}
	offset, err := r.readBits(b.bits(i))
	if err != nil {
		return 0, err
	}
	return b.boundary(i) + offset, nil
}

// splitParam splits a "p1[:p2]" parameter string into its two
// (possibly absent) integer parts.
func splitParam(s string) (p1 string, p2 string, hasP2 bool) {
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		return s[:idx], s[idx+1:], true
	}
	return s, "", false
}

func parseIntParam(s, label string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ftserrors.ErrBadArgument.New("invalid " + label + " parameter: " + s)
	}
	return n, nil
}
