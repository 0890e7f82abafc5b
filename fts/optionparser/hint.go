package optionparser

import (
	"strings"
	"sync"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// The hint-separator set is process-wide. It is sealed the first time
// a hint is parsed, so reconfiguration can never race an in-flight
// parse; the original engine kept this state in a lazily built global
// matcher.
var hintSeps = struct {
	mu     sync.Mutex
	sealed bool
	seps   []string
}{seps: []string{":"}}

const maxSeparatorLen = 20

// ConfigureHintSeparators replaces the separator set the
// CALCULATOR/EXTRACTOR hint grammar splits on. A separator that is
// empty, contains a non-ASCII byte, exceeds 20 bytes, or overlaps
// another separator is NotSupported, as is configuring after the
// first hint has been parsed.
func ConfigureHintSeparators(seps []string) error {
	if len(seps) == 0 {
		return ftserrors.ErrNotSupported.New("empty hint separator set")
	}
	for i, s := range seps {
		if s == "" || len(s) > maxSeparatorLen {
			return ftserrors.ErrNotSupported.New("hint separator length out of range: " + s)
		}
		for j := 0; j < len(s); j++ {
			if s[j] >= 0x80 {
				return ftserrors.ErrNotSupported.New("non-ascii hint separator: " + s)
			}
		}
		for _, o := range seps[:i] {
			if strings.Contains(s, o) || strings.Contains(o, s) {
				return ftserrors.ErrNotSupported.New("overlapping hint separators: " + o + ", " + s)
			}
		}
	}

	hintSeps.mu.Lock()
	defer hintSeps.mu.Unlock()
	if hintSeps.sealed {
		return ftserrors.ErrNotSupported.New("hint separators already in use")
	}
	hintSeps.seps = append([]string(nil), seps...)
	return nil
}

// cutHint splits s at the first occurrence of any configured
// separator, sealing the separator set.
func cutHint(s string) (before, after string, found bool) {
	hintSeps.mu.Lock()
	hintSeps.sealed = true
	seps := hintSeps.seps
	hintSeps.mu.Unlock()

	best, bestLen := -1, 0
	for _, sep := range seps {
		if idx := strings.Index(s, sep); idx >= 0 && (best < 0 || idx < best) {
			best, bestLen = idx, len(sep)
		}
	}
	if best < 0 {
		return s, "", false
	}
	return s[:best], s[best+bestLen:], true
}
