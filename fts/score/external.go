package score

import (
	"fmt"
	"plugin"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// ExternalFactory is the C-ABI-shaped contract an external scoring
// library exports under the symbol name "DBGetScoreCalculator": given
// the hint's payload, it returns a freshly allocated Calculator. The
// matching "DBReleaseScoreCalculator" symbol releases one; go-fulltext-
// index never frees an external calculator itself (spec §4.6: "never
// delete across the boundary").
type ExternalFactory func(payload string) (Calculator, error)

// ExternalReleaser releases a Calculator previously returned by an
// ExternalFactory.
type ExternalReleaser func(Calculator)

const (
	getSymbol     = "DBGetScoreCalculator"
	releaseSymbol = "DBReleaseScoreCalculator"
)

// pluginLoader caches opened libraries by path, the same
// resolve-once-then-reuse shape termfx-morfx's
// internal/registry/registry.go uses for LoadPlugin: dynamic-library
// loading is process-wide and should not repeat `plugin.Open` per
// query.
type pluginLoader struct {
	mu   sync.Mutex
	libs map[string]*plugin.Plugin
}

var loader = &pluginLoader{libs: make(map[string]*plugin.Plugin)}

func (l *pluginLoader) open(path string) (*plugin.Plugin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if p, ok := l.libs[path]; ok {
		return p, nil
	}
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	l.libs[path] = p
	return p, nil
}

// External wraps a Calculator loaded from a dynamic library, so that
// Copy() recurses into the wrapped calculator's own Copy() (spec
// §4.6) rather than re-opening the library.
type External struct {
	libraryPath string
	payload     string
	release     ExternalReleaser
	inner       Calculator
}

// LoadExternal parses a "dll-name:payload" hint, opens the named
// dynamic library, resolves its DBGetScoreCalculator/
// DBReleaseScoreCalculator entry points, and constructs one
// Calculator instance from payload. Either entry point missing raises
// ErrFunctionNotFound (spec §7).
func LoadExternal(hint string) (*External, error) {
	libraryPath, payload, ok := strings.Cut(hint, ":")
	if !ok {
		return nil, ftserrors.ErrWrongParameter.New("external calculator hint missing payload: " + hint)
	}

	p, err := loader.open(libraryPath)
	if err != nil {
		return nil, ftserrors.ErrFunctionNotFound.New(
			fmt.Sprintf("cannot open library %s: %v", libraryPath, err))
	}

	getSym, err := p.Lookup(getSymbol)
	if err != nil {
		return nil, ftserrors.ErrFunctionNotFound.New(getSymbol + " not found in " + libraryPath)
	}
	factory, ok := getSym.(func(string) (Calculator, error))
	if !ok {
		return nil, ftserrors.ErrFunctionNotFound.New(getSymbol + " has unexpected signature in " + libraryPath)
	}

	releaseSym, err := p.Lookup(releaseSymbol)
	if err != nil {
		return nil, ftserrors.ErrFunctionNotFound.New(releaseSymbol + " not found in " + libraryPath)
	}
	releaser, ok := releaseSym.(func(Calculator))
	if !ok {
		return nil, ftserrors.ErrFunctionNotFound.New(releaseSymbol + " has unexpected signature in " + libraryPath)
	}

	inner, err := factory(payload)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"library": libraryPath,
	}).Debug("score: loaded external calculator")

	return &External{libraryPath: libraryPath, payload: payload, release: releaser, inner: inner}, nil
}

func (e *External) Initialize() []ArgumentType            { return e.inner.Initialize() }
func (e *External) Prepare(args Args) error               { return e.inner.Prepare(args) }
func (e *External) FirstStep(args Args) (float64, error)  { return e.inner.FirstStep(args) }
func (e *External) SecondStep(args Args) (float64, error) { return e.inner.SecondStep(args) }

// Copy recurses into the wrapped calculator's own Copy(), per spec
// §4.6, instead of re-opening the library.
func (e *External) Copy() Calculator {
	return &External{
		libraryPath: e.libraryPath,
		payload:     e.payload,
		release:     e.release,
		inner:       e.inner.Copy(),
	}
}

// Release hands the wrapped calculator back to the library's release
// function; go-fulltext-index must never call delete/GC-free it
// directly.
func (e *External) Release() {
	if e.release != nil {
		e.release(e.inner)
	}
}
