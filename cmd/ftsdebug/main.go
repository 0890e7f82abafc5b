// Command ftsdebug compiles a single CONTAINS(...) pattern against one
// field into its tea-expression and prints the result, for inspecting
// what the query-compilation pipeline produces without standing up a
// full engine. Flag-based CLI shape grounded on the pack's aretext
// main.go (stdlib flag, explicit exitWithError).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
	"github.com/dolthub/go-fulltext-index/fts/term"
)

var (
	field      = flag.Int("field", 0, "target field index")
	lang       = flag.String("lang", "ja+en", "default language tag, e.g. ja+en")
	mode       = flag.String("mode", "m", "indexing mode: m (dual), e (word), n (ngram)")
	noLocation = flag.Bool("nolocation", false, "compile as if the index carries no positional data")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	pattern := flag.Arg(0)
	if pattern == "" {
		printUsage()
		os.Exit(2)
	}

	if len(*mode) != 1 {
		exitWithError(fmt.Errorf("mode must be a single character (m, e or n)"))
	}

	root := compiler.NewContains([]int{*field}, compiler.NewPattern(pattern, nil))
	cfg := compiler.Config{
		Mode:        compiler.MatchChar((*mode)[0]),
		NoLocation:  *noLocation,
		DefaultLang: term.ParseLang(*lang),
	}

	res, err := compiler.Compile(root.Operands[0], cfg)
	if err != nil {
		exitWithError(err)
	}

	fmt.Printf("%s(%s)\n", containsHeader(*field), res.Condition)
	fmt.Printf("termCount: %d\n", res.TermCount)
}

func containsHeader(field int) string {
	return fmt.Sprintf("#contains[single,%d,,,,,,,,]", field)
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...] pattern\n", os.Args[0])
	flag.PrintDefaults()
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
