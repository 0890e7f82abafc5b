// Package optionparser implements the OptionParser described in spec
// §4.1: it translates a read-only predicate tree plus a FileID
// describing the target index into a populated OpenOption store --
// the tea-expression Condition, search-type/cost fields, and the
// field-list the executor scans -- or reports that the index cannot
// execute the predicate so the planner can fall back to a table scan.
// It also compiles the collation-aware range rewrite (spec §4.2) and
// the #main/#other ParseValue stream fts/bitmap renders into a
// bitmap-driver query (spec §1.6).
package optionparser

import "github.com/dolthub/go-fulltext-index/fts/term"

// Collation selects the SQL collation semantics the key column was
// created with.
type Collation int

const (
	PadSpace Collation = iota
	NoPad
)

// IndexingType selects the tokenization strategy an index's CONTAINS
// operand was built with; it maps directly onto a
// fts/compiler.MatchChar for Pattern leaves.
type IndexingType byte

const (
	Dual  IndexingType = 'm'
	Word  IndexingType = 'e'
	Ngram IndexingType = 'n'
)

// FileID describes everything about the target index OptionParser
// needs beyond the predicate tree itself (spec §4.1's "plus a FileID
// describing the target index").
type FileID struct {
	Collation         Collation
	IndexingType      IndexingType
	KeyType           string
	Nullable          bool
	NoLocation        bool
	DefaultLanguage   term.Lang
	UNAResourceID     int
	ClusteringSupport bool
	KeyCount          int
	// LanguageField is the column index of the language section, or
	// -1 if the index carries no per-row language. Only consulted by
	// the Verify predicate shape (spec §4.1 step 5).
	LanguageField int
}

// RowIDField is the sentinel compiler.Node.FieldIndex value a Verify
// predicate's row-id comparison uses in place of a real column index
// (spec §4.1 step 5).
const RowIDField = -1

// SearchType selects the executor's search strategy (spec §6).
type SearchType int

const (
	Normal SearchType = iota
	FreeText
	Equal
)

// OpenMode is always Read per spec §6's Open-option keys table; kept
// as a named constant rather than a free string for callers that want
// to assert on it.
const OpenModeRead = "Read"

// OpenOption is the typed key/value store OptionParser.Compile
// populates, matching every key in spec §6's "Open-option keys"
// table.
type OpenOption struct {
	SearchType     SearchType
	Condition      string
	TermCount      int
	RowID          int64
	HasRowID       bool
	SectionValue   []string
	SectionLang    []string
	SearchField    []int
	SortOrder      int
	GroupBy        bool
	CacheAllObject bool
	FieldSelect    bool
	TargetField    []int
	OpenMode       string
}

// New returns an OpenOption with OpenMode defaulted to Read, the only
// value spec §6 allows for that key.
func New() *OpenOption {
	return &OpenOption{OpenMode: OpenModeRead}
}

// SearchFieldCount mirrors the SearchFieldCount open-option key.
func (o *OpenOption) SearchFieldCount() int { return len(o.SearchField) }

// TargetFieldNumber mirrors the TargetFieldNumber open-option key.
func (o *OpenOption) TargetFieldNumber() int { return len(o.TargetField) }
