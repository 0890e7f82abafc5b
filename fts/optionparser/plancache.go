package optionparser

import (
	"strconv"
	"sync"

	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/go-fulltext-index/fts/compiler"
)

// Plan is one cached compilation result, reusable across executions of
// the same prepared statement. The plan's own lock marks it in-use so
// the cache never erases a plan an executor still holds.
type Plan struct {
	mu     sync.Mutex
	Option *OpenOption
}

// Acquire marks the plan in-use. Callers must Release when done.
func (p *Plan) Acquire() { p.mu.Lock() }

// Release ends a use begun by Acquire or Planner.Get.
func (p *Plan) Release() { p.mu.Unlock() }

// PlanKey derives the cache key for a compiled predicate from the
// predicate tree and target index descriptor, so two statements with
// the same structure share one cached plan regardless of how they
// were spelled.
func PlanKey(root *compiler.Node, file FileID) (string, error) {
	h, err := hashstructure.Hash(struct {
		Root *compiler.Node
		File FileID
	}{root, file}, nil)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(h, 16), nil
}

// Planner caches compiled plans by statement key. Map operations are
// serialized under a single critical section; Erase additionally
// try-locks the plan itself, so an in-use plan stays cached until its
// holder releases it.
type Planner struct {
	mu    sync.Mutex
	plans map[string]*Plan
}

// NewPlanner creates an empty plan cache.
func NewPlanner() *Planner {
	return &Planner{plans: make(map[string]*Plan)}
}

// Keep stores o under key, replacing any previously cached plan.
func (pl *Planner) Keep(key string, o *OpenOption) *Plan {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	p := &Plan{Option: o}
	pl.plans[key] = p
	return p
}

// Get returns the plan cached under key, already acquired for use;
// callers must Release it. ok=false when nothing is cached under key.
func (pl *Planner) Get(key string) (p *Plan, ok bool) {
	pl.mu.Lock()
	p, ok = pl.plans[key]
	pl.mu.Unlock()
	if ok {
		p.Acquire()
	}
	return p, ok
}

// Erase removes the plan cached under key. A plan currently acquired
// by another holder is left in place and false is returned.
func (pl *Planner) Erase(key string) bool {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	p, ok := pl.plans[key]
	if !ok {
		return false
	}
	if !p.mu.TryLock() {
		return false
	}
	delete(pl.plans, key)
	p.mu.Unlock()
	return true
}
