package optionparser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// ContainsOptions is the set of `CONTAINS(col, 'text', OptName=value, ...)`
// modifiers. Calculator, Combiner, ScoreCombiner and ClusteredCombiner
// are checked against enumerated whitelists and Extractor against the
// extractor-hint grammar. AverageLength, Df, Calculator, Combiner,
// Expand, Extractor and ScoreFunction are embedded as literal text in
// the #contains header; ClusteredLimit, ScoreCombiner and
// ClusteredCombiner are not written into the header.
type ContainsOptions struct {
	Calculator        string
	Combiner          string
	AverageLength     string
	Df                string
	Expand            string
	Extractor         string
	ScoreFunction     string
	ClusteredLimit    string
	ScoreCombiner     string
	ClusteredCombiner string
}

// validCombiners/validCalculators are the enumerated whitelists the
// combiner and calculator options are validated against; unknown names
// are WrongParameter.
var validCombiners = map[string]bool{"sum": true, "max": true, "min": true, "avg": true, "": true}

var validCalculators = map[string]bool{
	"OkapiTf": true, "OkapiTfIdf": true, "NormalizedOkapiTf": true,
	"NormalizedOkapiTfIdf": true, "TfIdf": true, "NormalizedTfIdf": true, "": true,
}

func validateCalculatorName(hint string) error {
	if hint == "" {
		return nil
	}
	name, _, _ := cutHint(hint)
	if name == "External" {
		return nil
	}
	if !validCalculators[name] {
		return ftserrors.ErrWrongParameter.New("unknown calculator: " + name)
	}
	return nil
}

func validateCombiner(name string) error {
	if !validCombiners[name] {
		return ftserrors.ErrWrongParameter.New("unknown combiner: " + name)
	}
	return nil
}

// setContains implements spec §4.1 steps 1-3 for a CONTAINS root:
// extract and validate the field list, validate the calculator,
// combiner and extractor options, translate the operand sub-tree via
// fts/compiler, and
// assemble the #contains[...] header.
func setContains(n *compiler.Node, file FileID, opts ContainsOptions) (*OpenOption, error) {
	fields := append([]int(nil), n.Fields...)
	if len(fields) == 0 {
		return nil, nil // cannot execute by index: no target field
	}
	for _, f := range fields {
		if f >= file.KeyCount {
			return nil, nil
		}
	}
	sort.Ints(fields)

	if err := validateCalculatorName(opts.Calculator); err != nil {
		return nil, err
	}
	if err := validateCombiner(opts.Combiner); err != nil {
		return nil, err
	}
	if err := validateCombiner(opts.ScoreCombiner); err != nil {
		return nil, err
	}
	if err := validateCombiner(opts.ClusteredCombiner); err != nil {
		return nil, err
	}
	if opts.Extractor != "" {
		if _, err := parseExtractorHint(opts.Extractor); err != nil {
			return nil, err
		}
	}

	cfg := compiler.Config{
		Mode:        compiler.MatchChar(file.IndexingType),
		NoLocation:  file.NoLocation,
		DefaultLang: file.DefaultLanguage,
		UNAResource: file.UNAResourceID,
	}
	res, err := compiler.Compile(n.Operands[0], cfg)
	if err != nil {
		return nil, err
	}

	o := New()
	o.SearchType = Normal
	if op := n.Operands[0]; op.Type == compiler.FreeText || op.Type == compiler.WordList {
		o.SearchType = FreeText
	}
	o.Condition = containsHeader(fields, opts) + "(" + res.Condition + ")"
	o.TermCount = res.TermCount
	o.SearchField = fields
	return o, nil
}

// containsHeader renders the #contains[...] header shared by both a
// true CONTAINS predicate (setContains) and an ordinary predicate
// against a full-text-indexed column (setNormal): spec §8 scenario 2
// shows a LIKE predicate's Condition wrapped in the same header
// setContains produces, so the executor sees one uniform shape
// regardless of which SQL surface produced it.
func containsHeader(fields []int, opts ContainsOptions) string {
	kind := "single"
	if len(fields) > 1 {
		kind = "multi"
	}
	return fmt.Sprintf("#contains[%s,%s,%s,%s,%s,%s,%s,%s,%s,%s]",
		kind, joinInts(fields), "", opts.AverageLength, opts.Df, opts.Calculator,
		opts.Combiner, opts.Expand, opts.Extractor, opts.ScoreFunction)
}

func joinInts(fields []int) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, "+")
}

// parseExtractorHint validates the "@TERMRSCID:n" / "@UNARSCID:n" /
// "@NORMRSCID:n" extractor hint grammar (spec §4.3's Configuration
// section).
func parseExtractorHint(hint string) (int, error) {
	name, rest, ok := cutHint(hint)
	if !ok {
		return 0, ftserrors.ErrWrongParameter.New("unrecognized extractor hint: " + hint)
	}
	switch name {
	case "@TERMRSCID", "@UNARSCID", "@NORMRSCID":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return 0, ftserrors.ErrWrongParameter.New("invalid resource id in extractor hint: " + hint)
		}
		return n, nil
	}
	return 0, ftserrors.ErrWrongParameter.New("unrecognized extractor hint: " + hint)
}
