package termproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dolthub/go-fulltext-index/fts/term"
)

// GetFormula renders a kept WordData as a CONTAINS pattern fragment
// (spec §4.3's output-formula-assembly rule). proximity is
// paramProximity1 for initial terms, paramProximity2 for related
// terms; its sign selects symmetric (positive) vs asymmetric
// (negative) word order and its magnitude is the within() upper
// bound.
func GetFormula(e term.TermElement, proximity int) string {
	surface := strings.TrimSpace(e.Surface)
	if proximity != 0 && strings.ContainsRune(surface, ' ') {
		words := strings.Fields(surface)
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = quoteLiteral(w)
		}
		order := "symmetric"
		n := proximity
		if proximity < 0 {
			order = "asymmetric"
			n = -proximity
		}
		return fmt.Sprintf("within(%s %s upper %d)", strings.Join(quoted, " "), order, n)
	}
	return quoteLiteral(collapseMixedScriptSpaces(surface))
}

// quoteLiteral wraps s in single quotes, doubling embedded single
// quotes per spec §4.3's escaping rule.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// collapseMixedScriptSpaces keeps a space between two ASCII-alphanumeric
// neighbours and drops it otherwise, per spec §4.3: "spaces that
// separate ASCII-alphanumeric neighbours are preserved when
// proximity=0; surrounding spaces of mixed-script tokens are dropped."
func collapseMixedScriptSpaces(s string) string {
	words := strings.Split(s, " ")
	var b strings.Builder
	for i, w := range words {
		if i > 0 && isASCIIAlnum(words[i-1]) && isASCIIAlnum(w) {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return b.String()
}

func isASCIIAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
