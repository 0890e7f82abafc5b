// Package nlp defines the narrow interface through which the query
// pipeline consumes an external morphological analyzer (spec §1: out
// of scope, consumed via a capability interface) and a small registry
// for resolving one by UNA resource id (spec §4.3's @UNARSCID/@NORMRSCID
// hints).
package nlp

import (
	"fmt"
	"sync"

	"github.com/dolthub/go-fulltext-index/fts/term"
)

// Mode selects the tokenization strategy the index was built with.
type Mode byte

const (
	// ModeDual ("m") runs both word-boundary and n-gram tokenization
	// and unions the results, the default for mixed-script text.
	ModeDual Mode = 'm'
	// ModeWord ("e") tokenizes on word boundaries only.
	ModeWord Mode = 'e'
	// ModeNgram ("n") tokenizes into fixed-length character n-grams.
	ModeNgram Mode = 'n'
)

// Token is one analyzed unit of text.
type Token struct {
	Surface  string
	Lang     term.Lang
	Position int
}

// Analyzer tokenizes natural-language text for a given indexing mode
// and resource id. Implementations are expected to be safe for
// concurrent use by multiple threads issuing independent Analyze
// calls, but per §5 the engine creates one analyzer instance per
// thread lazily from a resource id rather than sharing one instance.
type Analyzer interface {
	// Analyze tokenizes text, honoring mode and the default language
	// hint defaultLang (used when the analyzer cannot detect a
	// token's language on its own).
	Analyze(text string, mode Mode, defaultLang term.Lang) ([]Token, error)
}

// Registry resolves an Analyzer by UNA/normalization resource id, the
// way fts/score's external-calculator loader resolves a calculator by
// name: a small, lock-protected, process-wide table populated once at
// startup.
type Registry struct {
	mu        sync.RWMutex
	analyzers map[int]Analyzer
}

// NewRegistry creates an empty analyzer registry.
func NewRegistry() *Registry {
	return &Registry{analyzers: make(map[int]Analyzer)}
}

// Register installs an analyzer under resource id rscID.
func (r *Registry) Register(rscID int, a Analyzer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyzers[rscID] = a
}

// Resolve returns the analyzer registered under rscID, or an error if
// none is registered.
func (r *Registry) Resolve(rscID int) (Analyzer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.analyzers[rscID]
	if !ok {
		return nil, fmt.Errorf("nlp: no analyzer registered for resource id %d", rscID)
	}
	return a, nil
}
