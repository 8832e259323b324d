// Package selection holds what the user currently filters by: the free-text
// query, the chosen values of each facet and an optional expression.
package selection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"benchscope/internal/facet"
)

// State is mutated only through its methods. The zero value is an empty
// selection.
type State struct {
	query    string
	expr     string
	selected map[facet.Category]map[string]struct{}
}

func New() *State { return &State{} }

func (s *State) Query() string { return s.query }

// Expr is the optional boolean expression applied on top of the facets.
func (s *State) Expr() string { return s.expr }

// SetQuery stores q verbatim; case folding happens at match time.
func (s *State) SetQuery(q string) { s.query = q }

// Toggle adds value to category when included is true and removes it
// otherwise. Both directions are idempotent.
func (s *State) Toggle(c facet.Category, value string, included bool) {
	if included {
		if s.selected == nil {
			s.selected = make(map[facet.Category]map[string]struct{}, len(facet.Categories))
		}
		set := s.selected[c]
		if set == nil {
			set = make(map[string]struct{})
			s.selected[c] = set
		}
		set[value] = struct{}{}
		return
	}
	if set := s.selected[c]; set != nil {
		delete(set, value)
		if len(set) == 0 {
			delete(s.selected, c)
		}
	}
}

// SetYears replaces the whole year selection.
func (s *State) SetYears(values []string) { s.replace(facet.Year, values) }

func (s *State) replace(c facet.Category, values []string) {
	if len(values) == 0 {
		delete(s.selected, c)
		return
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	if s.selected == nil {
		s.selected = make(map[facet.Category]map[string]struct{}, len(facet.Categories))
	}
	s.selected[c] = set
}

// SetExpr validates expr and stores it. On error the state is unchanged.
// A blank expression clears it.
func (s *State) SetExpr(expr string) error {
	if strings.TrimSpace(expr) == "" {
		s.expr = ""
		return nil
	}
	if _, err := govaluate.NewEvaluableExpression(expr); err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}
	s.expr = expr
	return nil
}

// ClearAll empties the query, the expression and every facet in one step.
func (s *State) ClearAll() {
	*s = State{}
}

// Has reports whether value is selected in c.
func (s *State) Has(c facet.Category, value string) bool {
	_, ok := s.selected[c][value]
	return ok
}

// Set returns the live selection set of c, or nil when the category is
// inactive. Callers must not modify it.
func (s *State) Set(c facet.Category) map[string]struct{} {
	return s.selected[c]
}

// Selected returns the chosen values of c in sorted order.
func (s *State) Selected(c facet.Category) []string {
	set := s.selected[c]
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ActiveCount is the number of selected facet values across categories.
func (s *State) ActiveCount() int {
	n := 0
	for _, set := range s.selected {
		n += len(set)
	}
	return n
}

// FacetsEmpty reports whether no facet category is active.
func (s *State) FacetsEmpty() bool { return s.ActiveCount() == 0 }

// IsEmpty reports whether the selection filters nothing at all.
func (s *State) IsEmpty() bool {
	return s.query == "" && strings.TrimSpace(s.expr) == "" && s.FacetsEmpty()
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	c := &State{query: s.query, expr: s.expr}
	for cat, set := range s.selected {
		for v := range set {
			c.Toggle(cat, v, true)
		}
	}
	return c
}

// Key is a deterministic encoding of the state. Two states with the same
// key select the same records.
func (s *State) Key() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strconv.Quote(s.query))
	b.WriteString(";x=")
	b.WriteString(strconv.Quote(strings.TrimSpace(s.expr)))
	for _, c := range facet.Categories {
		vals := s.Selected(c)
		if len(vals) == 0 {
			continue
		}
		b.WriteByte(';')
		b.WriteString(string(c))
		b.WriteByte('=')
		for i, v := range vals {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(v))
		}
	}
	return b.String()
}

func (s *State) String() string { return s.Key() }
