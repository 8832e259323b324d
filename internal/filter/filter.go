// Package filter narrows a record set to the records a selection matches.
package filter

import (
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"benchscope/internal/facet"
	"benchscope/internal/model"
	"benchscope/internal/selection"
	"benchscope/internal/util/logx"
)

// searchFields are the fields the free-text query is matched against.
var searchFields = [...]model.Field{
	model.FieldID,
	model.FieldTask,
	model.FieldSubtask,
	model.FieldDescription,
	model.FieldArea,
}

// Evaluator is a selection compiled for repeated matching.
type Evaluator struct {
	query      string // lower-cased
	tasks      map[string]struct{}
	modalities map[string]struct{}
	areas      map[string]struct{}
	years      map[string]struct{}
	expr       *govaluate.EvaluableExpression
}

// NewEvaluator compiles sel. The only failure is an expression that does
// not compile. The evaluator shares sel's value sets, so compile again after
// mutating sel.
func NewEvaluator(sel *selection.State) (*Evaluator, error) {
	e := &Evaluator{
		query:      strings.ToLower(sel.Query()),
		tasks:      sel.Set(facet.Task),
		modalities: sel.Set(facet.Modality),
		areas:      sel.Set(facet.Area),
		years:      sel.Set(facet.Year),
	}
	if x := strings.TrimSpace(sel.Expr()); x != "" {
		expr, err := govaluate.NewEvaluableExpression(x)
		if err != nil {
			return nil, err
		}
		e.expr = expr
	}
	return e, nil
}

// Match reports whether r passes every active category.
func (e *Evaluator) Match(r *model.Record) bool {
	return e.matchFacets(r) && e.matchText(r) && e.matchExpr(r)
}

func (e *Evaluator) matchText(r *model.Record) bool {
	if e.query == "" {
		return true
	}
	for _, f := range searchFields {
		v := r.Get(f)
		if v == "" {
			continue
		}
		if strings.Contains(strings.ToLower(v), e.query) {
			return true
		}
	}
	return false
}

// matchFacets applies split-and-intersect to task and modality and
// whole-value equality to area and year.
func (e *Evaluator) matchFacets(r *model.Record) bool {
	if len(e.tasks) > 0 && !model.HasAtom(r.Task, e.tasks) {
		return false
	}
	if len(e.modalities) > 0 && !model.HasAtom(r.Modalities, e.modalities) {
		return false
	}
	if len(e.areas) > 0 && !hasWhole(r.Area, e.areas) {
		return false
	}
	if len(e.years) > 0 && !hasWhole(r.YearPublished, e.years) {
		return false
	}
	return true
}

func hasWhole(v string, set map[string]struct{}) bool {
	if v == "" {
		return false
	}
	_, ok := set[v]
	return ok
}

func (e *Evaluator) matchExpr(r *model.Record) bool {
	if e.expr == nil {
		return true
	}
	result, err := e.expr.Evaluate(Params(r))
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// Params exposes a record to filter expressions. year_num is present only
// when the year parses as a number.
func Params(r *model.Record) map[string]any {
	params := map[string]any{
		"id":               r.ID,
		"task":             r.Task,
		"subtask":          r.Subtask,
		"description":      r.Description,
		"area":             r.Area,
		"modalities":       r.Modalities,
		"associated_tasks": r.AssociatedTasks,
		"year":             r.YearPublished,
		"license":          r.License,
		"languages":        r.Languages,
		"dataset_size":     r.DatasetSize,
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(r.YearPublished), 64); err == nil {
		params["year_num"] = n
	}
	return params
}

// Apply returns the records matching sel in their original order. With an
// empty selection the input slice itself is returned. An expression that
// fails to compile matches nothing.
func Apply(records []model.Record, sel *selection.State) []model.Record {
	if sel == nil || sel.IsEmpty() {
		return records
	}
	ev, err := NewEvaluator(sel)
	if err != nil {
		logx.Warnf("filter: expression rejected: %v", err)
		return []model.Record{}
	}
	out := make([]model.Record, 0, len(records)/4)
	for i := range records {
		if ev.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
