// Package compiler implements the QueryCompiler described in spec
// §4.2: it translates a tree of logical predicate nodes into the
// tea-expression prefix string the executor consumes (spec §6's
// grammar), handling modifiers, synonyms, and weighting along the
// way. fts/optionparser builds on the primitive emitters here for its
// own LIKE/range-predicate translation, since both paths share the
// same tea-expression vocabulary.
package compiler

import "github.com/dolthub/go-fulltext-index/fts/term"

// NodeType enumerates the logical predicate node kinds spec §4.1's
// table names. A single Node type covers both the CONTAINS operand
// tree and the plain-SQL predicate tree optionparser translates,
// since both ultimately emit the same tea-expression primitives.
type NodeType int

const (
	// Within is a positional-proximity constraint over its operands
	// (spec: "Within(p1,p2,...)").
	Within NodeType = iota
	// And is a conjunction, optionally combiner-tagged.
	And
	// Or is a disjunction, optionally combiner-tagged.
	Or
	// AndNot is `A AND NOT B`; multi-operand forms left-associate.
	AndNot
	// Not negates its single operand; convertNormal rewrites
	// And(x, Not(y)) into AndNot(x, y) before emission.
	Not
	// Pattern is a leaf full-text term.
	Pattern
	// Head anchors its operand to the start of the field.
	Head
	// Tail anchors its operand to the end of the field.
	Tail
	// ExactWord, SimpleWord, StringWord, WordHead, WordTail are the
	// remaining #term match-mode leaves spec §4.1's table lists.
	ExactWord
	SimpleWord
	StringWord
	WordHead
	WordTail
	// Weight scales its operand's contribution to the score.
	Weight
	// Synonym groups operands as interchangeable alternatives.
	Synonym
	// ExpandSynonym expands a single Pattern operand via the UNA
	// resource before wrapping as Synonym.
	ExpandSynonym
	// FreeText is a natural-language query leaf: its Value is analyzed
	// into a weighted term pool downstream rather than matched
	// literally.
	FreeText
	// WordList groups Word leaves with caller-supplied categories and
	// weights.
	WordList
	// Word is one weighted word-list leaf.
	Word
	// Field references a column by index; used by the plain-SQL
	// predicate tree optionparser walks.
	Field
	// Literal is a constant value operand.
	Literal
	// Equals, EqualsToNull, NotEquals, GreaterThan,
	// GreaterThanEquals, LessThan, LessThanEquals, Like are the
	// plain-SQL comparison node kinds.
	Equals
	EqualsToNull
	NotEquals
	GreaterThan
	GreaterThanEquals
	LessThan
	LessThanEquals
	Like
	// Contains is the root of a CONTAINS predicate: Fields names the
	// target column(s) (sorted ascending, more than one for
	// multi-column full text) and Operands[0] is the operand
	// sub-tree this package's Compile translates.
	Contains
)

// Node is one node of either the CONTAINS operand tree or the
// plain-SQL predicate tree. Only the fields relevant to Type are
// populated; the zero value of the rest is ignored.
type Node struct {
	Type     NodeType
	Operands []*Node

	// Field/Literal leaves.
	FieldIndex int
	Value      string

	// Pattern leaf.
	Lang term.Lang

	// Within.
	Lower, Upper int
	Symmetric    bool

	// And/Or.
	Combiner string

	// Weight; also the scale parameter of FreeText and Word leaves.
	Scale float64

	// FreeText.
	WordLimit int

	// Word.
	Category term.Category
	DF       int64

	// Contains root.
	Fields []int
}

// Leaf constructs a childless node of the given type.
func Leaf(t NodeType) *Node { return &Node{Type: t} }

// NewPattern constructs a full-text term leaf.
func NewPattern(text string, lang term.Lang) *Node {
	return &Node{Type: Pattern, Value: text, Lang: lang}
}

// NewField constructs a column reference leaf.
func NewField(idx int) *Node { return &Node{Type: Field, FieldIndex: idx} }

// NewLiteral constructs a constant-value leaf.
func NewLiteral(v string) *Node { return &Node{Type: Literal, Value: v} }

// NewAnd/NewOr/NewAndNot/NewNot build the logical connective nodes.
func NewAnd(comb string, operands ...*Node) *Node {
	return &Node{Type: And, Combiner: comb, Operands: operands}
}

func NewOr(comb string, operands ...*Node) *Node {
	return &Node{Type: Or, Combiner: comb, Operands: operands}
}

func NewAndNot(operands ...*Node) *Node {
	return &Node{Type: AndNot, Operands: operands}
}

func NewNot(operand *Node) *Node {
	return &Node{Type: Not, Operands: []*Node{operand}}
}

// NewWithin builds a Within(lower, upper) proximity node, ordered ("o")
// when symmetric is true and unordered ("u") otherwise.
func NewWithin(lower, upper int, symmetric bool, operands ...*Node) *Node {
	return &Node{Type: Within, Lower: lower, Upper: upper, Symmetric: symmetric, Operands: operands}
}

// NewWeight builds a Weight(x)[scale] node.
func NewWeight(scale float64, operand *Node) *Node {
	return &Node{Type: Weight, Scale: scale, Operands: []*Node{operand}}
}

// NewSynonym/NewExpandSynonym build synonym-group nodes.
func NewSynonym(operands ...*Node) *Node { return &Node{Type: Synonym, Operands: operands} }

func NewExpandSynonym(operand *Node) *Node {
	return &Node{Type: ExpandSynonym, Operands: []*Node{operand}}
}

// NewFreeText builds a natural-language query leaf.
func NewFreeText(text string, lang term.Lang, scale float64, wordLimit int) *Node {
	return &Node{Type: FreeText, Value: text, Lang: lang, Scale: scale, WordLimit: wordLimit}
}

// NewWord builds one weighted word-list leaf.
func NewWord(text string, lang term.Lang, cat term.Category, scale float64, df int64) *Node {
	return &Node{Type: Word, Value: text, Lang: lang, Category: cat, Scale: scale, DF: df}
}

// NewWordList groups Word leaves.
func NewWordList(words ...*Node) *Node {
	return &Node{Type: WordList, Operands: words}
}

// Comparison builds an Equals/NotEquals/.../Like node with a Field and
// a Literal operand, the shape optionparser's setNormal/setEqual walk
// expects.
func Comparison(t NodeType, field int, literal string) *Node {
	return &Node{Type: t, Operands: []*Node{NewField(field), NewLiteral(literal)}}
}

// NewContains builds a CONTAINS predicate root over fields (sorted
// ascending by the caller) with operand as its translatable sub-tree.
func NewContains(fields []int, operand *Node) *Node {
	return &Node{Type: Contains, Fields: fields, Operands: []*Node{operand}}
}
