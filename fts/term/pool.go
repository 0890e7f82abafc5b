package term

// Pool is an insertion-order-preserving ordered multiset of
// TermElements, bounded by MaxTerm (spec §3: TermPool). A MaxTerm of 0
// means unbounded.
type Pool struct {
	MaxTerm int
	entries []TermElement
}

// NewPool creates an empty pool bounded by maxTerm entries.
func NewPool(maxTerm int) *Pool {
	return &Pool{MaxTerm: maxTerm}
}

// InsertTerm appends e to the pool in insertion order. If the pool is
// already at MaxTerm capacity the insertion is silently dropped --
// mirroring the source engine's cap-by-ignoring-the-rest behavior for
// pseudo-relevance candidate pools.
func (p *Pool) InsertTerm(e TermElement) {
	if p.MaxTerm > 0 && len(p.entries) >= p.MaxTerm {
		return
	}
	p.entries = append(p.entries, e)
}

// Len returns the number of entries currently in the pool.
func (p *Pool) Len() int { return len(p.entries) }

// At returns the entry at insertion-order index i.
func (p *Pool) At(i int) TermElement { return p.entries[i] }

// Each iterates the pool in insertion order. Returning false from fn
// stops iteration early.
func (p *Pool) Each(fn func(int, TermElement) bool) {
	for i, e := range p.entries {
		if !fn(i, e) {
			return
		}
	}
}

// SetDF sets the document frequency on every entry whose normalized
// term matches t. Returns the number of entries updated.
func (p *Pool) SetDF(t Term, df int64) int {
	n := 0
	for i := range p.entries {
		if p.entries[i].Term.Equal(t) {
			p.entries[i].DF = df
			n++
		}
	}
	return n
}

// SetWeight sets the term-weight/term-selection values on every entry
// whose normalized term matches t, the weighting counterpart to SetDF
// used by weightTerm/selectTerm (spec §4.3). Returns the number of
// entries updated.
func (p *Pool) SetWeight(t Term, twv, tsv float64) int {
	n := 0
	for i := range p.entries {
		if p.entries[i].Term.Equal(t) {
			p.entries[i].TWV = twv
			p.entries[i].TSV = tsv
			n++
		}
	}
	return n
}

// Validate drops every entry whose normalized form is empty, per
// spec §3's TermPool post-analysis validation step.
func (p *Pool) Validate() {
	kept := p.entries[:0]
	for _, e := range p.entries {
		if !e.Empty() {
			kept = append(kept, e)
		}
	}
	p.entries = kept
}

// Slice returns a defensive copy of the pool contents in insertion
// order.
func (p *Pool) Slice() []TermElement {
	out := make([]TermElement, len(p.entries))
	copy(out, p.entries)
	return out
}
