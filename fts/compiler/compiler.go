package compiler

import (
	"github.com/dolthub/go-fulltext-index/fts/term"
	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// Mode selects which #term match character a Pattern leaf renders
// with, derived from the target field's indexing type (spec §4.1:
// "m = m|e|n by indexing type").
type Mode = MatchChar

// Config carries the per-compile settings convertContains needs that
// are not part of the Node tree itself: the indexing mode and the
// default language used when a Pattern leaf carries none.
type Config struct {
	Mode        Mode
	NoLocation  bool
	DefaultLang term.Lang
	UNAResource int
	// Expand resolves a Pattern's surface text into its UNA synonym
	// expansions for ExpandSynonym nodes; nil disables expansion
	// (every ExpandSynonym degrades to its bare Pattern).
	Expand func(text string, lang term.Lang, unaResource int) ([]string, error)
}

// Result is the outcome of compiling one operand sub-tree: the
// rendered tea-expression and the running term-count the planner uses
// for cost estimation (spec §4.2).
type Result struct {
	Condition string
	TermCount int
}

// Compile translates a CONTAINS operand sub-tree (or any Node tree
// built from the same vocabulary) into its tea-expression, per spec
// §4.1's table. Compile is deterministic and free of side effects on
// n, so re-compiling the same tree always yields the same string
// (spec §8's "compilation idempotence" property).
func Compile(n *Node, cfg Config) (Result, error) {
	c := &compileState{cfg: cfg}
	cond, err := c.convert(n)
	if err != nil {
		return Result{}, err
	}
	return Result{Condition: cond, TermCount: c.termCount}, nil
}

type compileState struct {
	cfg       Config
	termCount int
	// unknown, when set, makes convert return Uk for every element.
	// Compile never sets it, so operand trees compiled here do not
	// degrade to Uk.
	unknown bool
}

func (c *compileState) convert(n *Node) (string, error) {
	if c.unknown {
		return Uk, nil
	}
	if n == nil {
		return "", ftserrors.ErrUnexpected.New("nil node in operand tree")
	}

	switch n.Type {
	case Within:
		return c.convertWithin(n)
	case And:
		return c.convertJoin(And, n)
	case Or:
		return c.convertJoin(Or, n)
	case AndNot:
		return c.convertAndNot(n)
	case Pattern:
		c.termCount++
		lang := n.Lang
		if len(lang) == 0 {
			lang = c.cfg.DefaultLang
		}
		return Term(c.cfg.Mode, lang, n.Value), nil
	case Head:
		if c.cfg.NoLocation {
			return "", ftserrors.ErrWrongParameter.New("HEAD predicate rejected: index has nolocation set")
		}
		inner, err := c.convert(n.Operands[0])
		if err != nil {
			return "", err
		}
		return Location(1, inner), nil
	case Tail:
		if c.cfg.NoLocation {
			return "", ftserrors.ErrWrongParameter.New("TAIL predicate rejected: index has nolocation set")
		}
		inner, err := c.convert(n.Operands[0])
		if err != nil {
			return "", err
		}
		return End(0, inner), nil
	case ExactWord, SimpleWord, StringWord, WordHead, WordTail:
		m, err := matchCharFor(n.Type)
		if err != nil {
			return "", err
		}
		c.termCount++
		lang := n.Lang
		if len(lang) == 0 {
			lang = c.cfg.DefaultLang
		}
		return Term(m, lang, n.Value), nil
	case Weight:
		inner, err := c.convert(n.Operands[0])
		if err != nil {
			return "", err
		}
		return Scale(n.Scale, inner), nil
	case Synonym:
		return c.convertSynOperands(n.Operands)
	case ExpandSynonym:
		return c.convertExpandSynonym(n)
	case FreeText:
		c.termCount++
		lang := n.Lang
		if len(lang) == 0 {
			lang = c.cfg.DefaultLang
		}
		return FreeTextExpr(c.cfg.Mode, lang, n.Scale, n.WordLimit, n.Value), nil
	case Word:
		c.termCount++
		lang := n.Lang
		if len(lang) == 0 {
			lang = c.cfg.DefaultLang
		}
		return WordExpr(c.cfg.Mode, lang, n.Category, n.Scale, n.DF, n.Value), nil
	case WordList:
		return c.convertWordList(n)
	default:
		return "", ftserrors.ErrWrongParameter.New("node type not valid inside a CONTAINS operand tree")
	}
}

func (c *compileState) convertWithin(n *Node) (string, error) {
	exprs, err := c.convertAll(n.Operands)
	if err != nil {
		return "", err
	}
	return Window(n.Lower, n.Upper, n.Symmetric, exprs...), nil
}

func (c *compileState) convertJoin(kind NodeType, n *Node) (string, error) {
	exprs, err := c.convertAll(n.Operands)
	if err != nil {
		return "", err
	}
	if kind == And {
		return AndExpr(n.Combiner, exprs...), nil
	}
	return OrExpr(n.Combiner, exprs...), nil
}

// convertAndNot left-associates a multi-operand AndNot(A,B,C,...)
// into nested #and-not(#and-not(A,B),C)... (spec §4.1's table).
func (c *compileState) convertAndNot(n *Node) (string, error) {
	if len(n.Operands) < 2 {
		return "", ftserrors.ErrUnexpected.New("AndNot requires at least two operands")
	}
	exprs, err := c.convertAll(n.Operands)
	if err != nil {
		return "", err
	}
	return AndNotExpr(exprs...), nil
}

func (c *compileState) convertAll(nodes []*Node) ([]string, error) {
	out := make([]string, len(nodes))
	for i, op := range nodes {
		e, err := c.convert(op)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// convertWordList renders #wordlist[n](...) over Word operands only.
func (c *compileState) convertWordList(n *Node) (string, error) {
	for _, op := range n.Operands {
		if op.Type != Word {
			return "", ftserrors.ErrWrongParameter.New("WordList operands must be Word leaves")
		}
	}
	exprs, err := c.convertAll(n.Operands)
	if err != nil {
		return "", err
	}
	return WordListExpr(exprs...), nil
}

func (c *compileState) convertSynOperands(nodes []*Node) (string, error) {
	exprs, err := c.convertAll(nodes)
	if err != nil {
		return "", err
	}
	return Syn(exprs...), nil
}

// convertExpandSynonym expands a single Pattern operand via the UNA
// resource (cfg.Expand) and emits #syn(...) only when more than one
// expansion results, otherwise the bare pattern (spec §4.1: "emit
// #syn(...) if >1 expansion").
func (c *compileState) convertExpandSynonym(n *Node) (string, error) {
	if len(n.Operands) != 1 || n.Operands[0].Type != Pattern {
		return "", ftserrors.ErrUnexpected.New("ExpandSynonym requires a single Pattern operand")
	}
	pat := n.Operands[0]
	if c.cfg.Expand == nil {
		return c.convert(pat)
	}
	lang := pat.Lang
	if len(lang) == 0 {
		lang = c.cfg.DefaultLang
	}
	expansions, err := c.cfg.Expand(pat.Value, lang, c.cfg.UNAResource)
	if err != nil {
		return "", err
	}
	if len(expansions) <= 1 {
		return c.convert(pat)
	}
	exprs := make([]string, len(expansions))
	for i, e := range expansions {
		c.termCount++
		exprs[i] = Term(c.cfg.Mode, lang, e)
	}
	return Syn(exprs...), nil
}
