package filter

import (
	"strings"
	"time"

	"benchscope/internal/index"
	"benchscope/internal/model"
	"benchscope/internal/selection"
	"benchscope/internal/util/logx"
)

// Engine filters one store. Facet selections are resolved through the
// inverted index; text and expression checks only run on the candidates.
// The last result is memoized on the selection key. Results are identical
// to Apply over the same store.
//
// An Engine is not safe for concurrent use; the UI drives it from its
// event loop.
type Engine struct {
	store   *model.Store
	idx     *index.Index
	lowered [][len(searchFields)]string

	memoKey string
	memo    []model.Record
	hits    int
	misses  int
}

func NewEngine(store *model.Store) *Engine {
	defer logx.Since("filter: index build", time.Now())
	recs := store.Records()
	lowered := make([][len(searchFields)]string, len(recs))
	for i := range recs {
		for j, f := range searchFields {
			lowered[i][j] = strings.ToLower(recs[i].Get(f))
		}
	}
	return &Engine{store: store, idx: index.Build(recs), lowered: lowered}
}

func (e *Engine) Store() *model.Store { return e.store }

func (e *Engine) Index() *index.Index { return e.idx }

// Stats reports memo hits and misses.
func (e *Engine) Stats() (hits, misses int) { return e.hits, e.misses }

// Filter returns the records matching sel. The returned slice must be
// treated as read-only; it may be the store's own slice or a memoized
// result.
func (e *Engine) Filter(sel *selection.State) []model.Record {
	recs := e.store.Records()
	if sel == nil || sel.IsEmpty() {
		return recs
	}
	key := sel.Key()
	if e.memo != nil && key == e.memoKey {
		e.hits++
		return e.memo
	}
	e.misses++
	start := time.Now()
	out := e.compute(recs, sel)
	e.memoKey, e.memo = key, out
	logx.Debugf("filter: %d/%d records in %s (%s)", len(out), len(recs), time.Since(start), key)
	return out
}

func (e *Engine) compute(recs []model.Record, sel *selection.State) []model.Record {
	ev, err := NewEvaluator(sel)
	if err != nil {
		logx.Warnf("filter: expression rejected: %v", err)
		return []model.Record{}
	}
	bm, all := e.idx.Candidates(sel)
	if all {
		out := make([]model.Record, 0, len(recs)/4)
		for i := range recs {
			if e.matchRest(ev, i) {
				out = append(out, recs[i])
			}
		}
		return out
	}
	out := make([]model.Record, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if e.matchRest(ev, i) {
			out = append(out, recs[i])
		}
	}
	return out
}

// matchRest checks the non-facet categories using the pre-lowered fields.
func (e *Engine) matchRest(ev *Evaluator, i int) bool {
	if ev.query != "" {
		found := false
		for _, v := range e.lowered[i] {
			if v != "" && strings.Contains(v, ev.query) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return ev.matchExpr(&e.store.Records()[i])
}
