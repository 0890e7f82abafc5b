// Package fulltext wires the six components spec.md describes --
// OptionParser, QueryCompiler, TermProcessor, BTreeDirectory,
// PostingCodec and ScoreKernel -- into one Engine, the way the teacher
// engine's root package assembles its analyzer/catalog/process-list
// into one Engine value (see sqle.New in the pack's engine.go).
package fulltext

import (
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-fulltext-index/fts/bitmap"
	"github.com/dolthub/go-fulltext-index/fts/btree"
	"github.com/dolthub/go-fulltext-index/fts/codec"
	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/fts/nlp"
	"github.com/dolthub/go-fulltext-index/fts/optionparser"
	"github.com/dolthub/go-fulltext-index/fts/score"
	"github.com/dolthub/go-fulltext-index/fts/term"
	"github.com/dolthub/go-fulltext-index/fts/termproc"
)

// Config configures a new Engine. DirectoryPath names the bolt-backed
// B-tree directory file; Tracer and Logger default to no-op
// implementations, mirroring the teacher's Config{VersionPostfix,
// IsReadOnly, ...} pattern of optional knobs with safe zero values.
type Config struct {
	DirectoryPath string
	Tracer        opentracing.Tracer
	Logger        *logrus.Logger
	Calculator    string
	PostingCodec  codec.Coder
}

// Engine bundles the query-compilation pipeline (OptionParser +
// QueryCompiler), the TermProcessor's analyzer registry, the
// BTreeDirectory, the posting codec and the score calculator behind
// one value, analogous to how the teacher's Engine bundles its
// Analyzer, Catalog and ProcessList.
type Engine struct {
	Directory *btree.Directory
	Analyzers *nlp.Registry
	Bitmap    *bitmap.Driver

	tracer       opentracing.Tracer
	logger       *logrus.Logger
	calculator   string
	postingCodec codec.Coder
}

// New opens (creating if absent) the B-tree directory at
// cfg.DirectoryPath and returns a ready-to-use Engine. Callers should
// defer Engine.Close().
func New(cfg Config) (*Engine, error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	dir, err := btree.Create(cfg.DirectoryPath, tracer)
	if err != nil {
		return nil, err
	}

	pc := cfg.PostingCodec
	if pc == nil {
		pc, err = codec.NewETG(3, 1)
		if err != nil {
			return nil, err
		}
	}

	return &Engine{
		Directory:    dir,
		Analyzers:    nlp.NewRegistry(),
		tracer:       tracer,
		logger:       logger,
		calculator:   cfg.Calculator,
		postingCodec: pc,
	}, nil
}

// WithBitmap attaches a pilosa-backed bitmap secondary-index driver to
// the engine (spec §1.6), mirroring the teacher's
// Engine.WithBackgroundThreads fluent-setter style.
func (e *Engine) WithBitmap(d *bitmap.Driver) *Engine {
	e.Bitmap = d
	return e
}

// Close releases the B-tree directory's underlying bolt handle.
func (e *Engine) Close() error {
	return e.Directory.Close()
}

// CompilePredicate implements the OptionParser + QueryCompiler stage
// of the pipeline for a plain-SQL or CONTAINS predicate tree (spec
// §4.1/§4.2): translate root into a populated OpenOption, or (nil,
// nil) if the index cannot execute it.
func (e *Engine) CompilePredicate(root *compiler.Node, file optionparser.FileID, opts optionparser.ContainsOptions) (*optionparser.OpenOption, error) {
	return optionparser.Compile(root, file, optionparser.Config{
		ContainsOptions: opts,
		Tracer:          e.tracer,
	})
}

// CompileBitmapStream compiles a plain comparison predicate over one
// bitmap-indexed column into the #main/#other condition stream the
// bitmap driver executes (spec §1.6), honoring PAD SPACE vs NO PAD
// collation semantics.
func (e *Engine) CompileBitmapStream(root *compiler.Node, file optionparser.FileID, queryNoPad bool, padWidth int) (*optionparser.Stream, error) {
	return optionparser.CompileStream(root, file, queryNoPad, padWidth)
}

// BuildFreeTextPool implements the TermProcessor's FREETEXT procedure
// (spec §4.3) against the analyzer registered for unaRscID.
func (e *Engine) BuildFreeTextPool(text string, mode nlp.Mode, defaultLang term.Lang, unaRscID int) (*term.Pool, error) {
	analyzer, err := e.Analyzers.Resolve(unaRscID)
	if err != nil {
		return nil, err
	}
	return termproc.BuildFreeText(text, analyzer, termproc.Config{
		Mode:        mode,
		DefaultLang: defaultLang,
		Calculator:  e.calculator,
		Tracer:      e.tracer,
	})
}

// ScoreCalculator constructs the engine's default scoring calculator
// (spec §4.6), or the built-in/external calculator hint's calculator
// when hint is non-empty.
func (e *Engine) ScoreCalculator(hint string) (score.Calculator, error) {
	if hint == "" {
		hint = e.calculator
	}
	if hint == "" {
		hint = "TfIdf"
	}
	return score.New(hint)
}

// PostingCodec returns the posting-list integer codec the engine was
// configured with (spec §4.5).
func (e *Engine) PostingCodec() codec.Coder {
	return e.postingCodec
}
