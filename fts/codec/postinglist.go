package codec

import "github.com/dolthub/go-fulltext-index/ftserrors"

// EncodeSequence encodes a sorted, strictly increasing, non-empty
// sequence of positive integers as gap-deltas (the first value is
// encoded as-is; every subsequent value is encoded as the gap from its
// predecessor), matching how PostingList document ids and position
// arrays are stored (spec §3/§4.5).
func EncodeSequence(c Coder, seq []uint64) ([]byte, error) {
	if len(seq) == 0 {
		return nil, ftserrors.ErrBadArgument.New("posting sequence must be non-empty")
	}

	var buf []byte
	var err error
	prev := uint64(0)
	for i, v := range seq {
		if i > 0 && v <= seq[i-1] {
			return nil, ftserrors.ErrBadArgument.New("posting sequence must be strictly increasing")
		}
		gap := v - prev
		buf, err = c.Encode(buf, gap)
		if err != nil {
			return nil, err
		}
		prev = v
	}
	return buf, nil
}

// DecodeSequence decodes n gap-delta-coded values from data.
func DecodeSequence(c Coder, data []byte, n int) ([]uint64, error) {
	r := newBitReader(data)
	out := make([]uint64, 0, n)
	prev := uint64(0)
	for i := 0; i < n; i++ {
		gap, err := c.Decode(r)
		if err != nil {
			return nil, err
		}
		// Each Encode call pads its code to a whole byte, so the next
		// code starts at the next byte boundary.
		r.pos = (r.pos + 7) / 8 * 8
		prev += gap
		out = append(out, prev)
	}
	return out, nil
}
