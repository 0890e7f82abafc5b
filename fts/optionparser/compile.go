package optionparser

import (
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
)

// Config carries the settings Compile needs beyond the predicate tree
// and FileID themselves.
type Config struct {
	ContainsOptions ContainsOptions
	BulkMaxSize     int
	Tracer          opentracing.Tracer
}

// Compile implements spec §4.1's top-level algorithm: dispatch on the
// predicate root (CONTAINS, then a plain-SQL shape, then the Verify
// shape) and return the populated OpenOption, or (nil, nil) if the
// index cannot execute the predicate so the planner falls back to a
// table scan.
func Compile(root *compiler.Node, file FileID, cfg Config) (*OpenOption, error) {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	span := tracer.StartSpan("fts.optionparser.compile")
	defer span.Finish()

	if root.Type == compiler.Contains {
		o, err := setContains(root, file, cfg.ContainsOptions)
		if err != nil {
			return nil, err
		}
		if o == nil {
			logrus.WithField("fields", root.Fields).Debug("optionparser: CONTAINS cannot be executed by index")
		}
		return o, nil
	}

	o, err := setNormal(root, file, cfg.BulkMaxSize)
	if err != nil {
		return nil, err
	}
	if o != nil {
		return o, nil
	}
	if !isVerifyShaped(root) {
		return nil, nil
	}
	return setEqual(root, file)
}

// isVerifyShaped is a cheap pre-check so setNormal is tried first for
// the common ordinary-predicate case and setEqual only walks the tree
// again when there's a real chance it matches: an And whose operands
// are all Equals, or a bare Equals against the row-id field.
func isVerifyShaped(n *compiler.Node) bool {
	if n.Type == compiler.Equals {
		return fieldOf(n) == RowIDField
	}
	if n.Type != compiler.And {
		return false
	}
	for _, op := range n.Operands {
		if op.Type != compiler.Equals {
			return false
		}
	}
	return true
}
