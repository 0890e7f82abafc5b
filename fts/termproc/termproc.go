// Package termproc implements the TermProcessor described in spec
// §4.3: it turns free text or an explicit word list into a weighted
// term.Pool ready for the executor's OR-of-terms ranking path, and
// supports pseudo-relevance feedback against seed documents.
package termproc

import (
	"strconv"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-fulltext-index/fts/nlp"
	"github.com/dolthub/go-fulltext-index/fts/score"
	"github.com/dolthub/go-fulltext-index/fts/term"
	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// WordData is one caller-supplied entry of the WORDLIST procedure
// (spec §4.3): a term plus the category/scale a FREETEXT token never
// carries on input.
type WordData struct {
	Term     string
	Lang     term.Lang
	Category term.Category
	Scale    float64
	DF       int64
}

// Config configures a single TermProcessor run: the tokenization mode
// and default language the analyzer honors, the maxCandidate bound on
// a pseudo-relevance expansion pool, and the calculator hint used to
// turn TermMap accumulations into TWV/TSV weights.
type Config struct {
	Mode         nlp.Mode
	DefaultLang  term.Lang
	MaxCandidate int
	MaxTerm      int
	Calculator   string
	Tracer       opentracing.Tracer
}

func (c Config) calculatorHint() string {
	if c.Calculator == "" {
		return "TfIdf"
	}
	return c.Calculator
}

// BuildFreeText implements the FREETEXT procedure (spec §4.3 steps
// 1-2): tokenize through analyzer honoring cfg.Mode, insert every
// token into the pool with MatchMode::voidMatch and category Helpful.
// Document frequency is filled in separately via SetDocumentFrequency.
func BuildFreeText(text string, analyzer nlp.Analyzer, cfg Config) (*term.Pool, error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	span := tracer.StartSpan("fts.termproc.BuildFreeText")
	defer span.Finish()

	tokens, err := analyzer.Analyze(text, cfg.Mode, cfg.DefaultLang)
	if err != nil {
		return nil, err
	}

	pool := term.NewPool(cfg.MaxTerm)
	for _, tok := range tokens {
		pool.InsertTerm(term.TermElement{
			Term:      term.New(tok.Surface, tok.Lang),
			MatchMode: term.VoidMatch,
			Category:  term.Helpful,
			Position:  tok.Position,
			Original:  tok.Surface,
		})
	}
	return pool, nil
}

// BuildWordList implements the WORDLIST procedure (spec §4.3): each
// WordData already carries the category and optional scale a FREETEXT
// token has to default.
func BuildWordList(words []WordData, cfg Config) *term.Pool {
	pool := term.NewPool(cfg.MaxTerm)
	for _, w := range words {
		pool.InsertTerm(term.TermElement{
			Term:      term.New(w.Term, w.Lang),
			MatchMode: term.VoidMatch,
			Category:  w.Category,
			Scale:     w.Scale,
			DF:        w.DF,
			Original:  w.Term,
		})
	}
	return pool
}

// SetDocumentFrequency fills in df values supplied by the caller
// (spec §4.3 step 3) and drops entries with an empty normalized
// string.
func SetDocumentFrequency(pool *term.Pool, df map[string]int64) {
	pool.Each(func(i int, e term.TermElement) bool {
		if v, ok := df[e.Term.Normalized()]; ok {
			pool.SetDF(e.Term, v)
		}
		return true
	})
	pool.Validate()
}

// BuildTermMap analyzes a set of seed documents (spec §4.3's pseudo-
// relevance "Build TermMap by analyzing seed texts") into a TermMap,
// one weight increment per token occurrence.
func BuildTermMap(seeds []SeedDocument, analyzer nlp.Analyzer, cfg Config) (*term.Map, error) {
	m := term.NewMap()
	for docID, seed := range seeds {
		tokens, err := analyzer.Analyze(seed.Text, cfg.Mode, seed.Lang)
		if err != nil {
			return nil, err
		}
		for _, tok := range tokens {
			m.Add(term.New(tok.Surface, tok.Lang), int64(docID), 1.0)
		}
	}
	return m, nil
}

// SeedDocument is one pseudo-relevance feedback seed (spec §4.3:
// "R={(text, lang), ...}").
type SeedDocument struct {
	Text string
	Lang term.Lang
}

// WeightTerm implements weightTerm(map, pool1, collectionSize) (spec
// §4.3): every pool1 entry's TWV/TSV are set from the calculator's
// FirstStep/SecondStep applied to the term's TermMap weight and the
// collection size, so initial query terms are ranked the same way a
// scored hit is (fts/score's Calculator family, spec §4.6).
func WeightTerm(m *term.Map, pool *term.Pool, collectionSize int64, cfg Config) error {
	calc, err := score.New(cfg.calculatorHint())
	if err != nil {
		return err
	}

	var werr error
	pool.Each(func(i int, e term.TermElement) bool {
		tf, _ := m.Weight(e.Term)
		df := float64(m.DocCount(e.Term))
		if df == 0 {
			df = 1
		}
		twv, err := calc.FirstStep(score.Args{{Type: score.TermFrequency, Value: tf}})
		if err != nil {
			werr = err
			return false
		}
		tsv, err := calc.SecondStep(score.Args{
			{Type: score.DocumentFrequency, Value: df},
			{Type: score.TotalDocumentFrequency, Value: float64(collectionSize)},
		})
		if err != nil {
			werr = err
			return false
		}
		pool.SetWeight(e.Term, twv, tsv)
		return true
	})
	return werr
}

// SelectTerm implements selectTerm(map, cand2, pool2, collectionSize)
// (spec §4.3): candidate expansion terms are weighted the same way as
// WeightTerm and the top maxCandidate by TWV*TSV survive into pool2,
// their category forced to HelpfulRelated.
func SelectTerm(m *term.Map, candidates *term.Pool, collectionSize int64, cfg Config) (*term.Pool, error) {
	if err := WeightTerm(m, candidates, collectionSize, cfg); err != nil {
		return nil, err
	}

	entries := candidates.Slice()
	sortByScoreDesc(entries)

	limit := cfg.MaxCandidate
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}

	pool2 := term.NewPool(cfg.MaxTerm)
	for _, e := range entries[:limit] {
		e.Category = term.HelpfulRelated
		pool2.InsertTerm(e)
	}

	logrus.WithFields(logrus.Fields{"candidates": len(entries), "selected": limit}).
		Debug("termproc: selectTerm expansion complete")
	return pool2, nil
}

func sortByScoreDesc(entries []term.TermElement) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].TWV*entries[j].TSV > entries[j-1].TWV*entries[j-1].TSV; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// ResolveExtractorHint parses the "@TERMRSCID:n" / "@UNARSCID:n" /
// "@NORMRSCID:n" extractor-hint grammar (spec §4.3's Configuration
// section), returning which resource kind was selected and its id.
type HintKind int

const (
	TermResource HintKind = iota
	UNAResource
	NormResource
)

func ResolveExtractorHint(hint string) (HintKind, int, error) {
	switch {
	case strings.HasPrefix(hint, "@TERMRSCID:"):
		n, err := strconv.Atoi(hint[len("@TERMRSCID:"):])
		if err != nil {
			return 0, 0, ftserrors.ErrWrongParameter.New("invalid resource id in extractor hint: " + hint)
		}
		return TermResource, n, nil
	case strings.HasPrefix(hint, "@UNARSCID:"):
		n, err := strconv.Atoi(hint[len("@UNARSCID:"):])
		if err != nil {
			return 0, 0, ftserrors.ErrWrongParameter.New("invalid resource id in extractor hint: " + hint)
		}
		return UNAResource, n, nil
	case strings.HasPrefix(hint, "@NORMRSCID:"):
		n, err := strconv.Atoi(hint[len("@NORMRSCID:"):])
		if err != nil {
			return 0, 0, ftserrors.ErrWrongParameter.New("invalid resource id in extractor hint: " + hint)
		}
		return NormResource, n, nil
	default:
		return 0, 0, ftserrors.ErrWrongParameter.New("unrecognized extractor hint: " + hint)
	}
}
