// Package facet derives the option lists offered as filter dimensions.
// Options always come from the whole record set, never from a filtered
// view, so they do not shrink while the user narrows the results.
package facet

import (
	"sort"
	"strings"

	"benchscope/internal/model"
)

// Category is a filter dimension.
type Category string

const (
	Task     Category = "task"
	Modality Category = "modality"
	Area     Category = "area"
	Year     Category = "year"
)

// Categories lists every category in panel order.
var Categories = []Category{Task, Modality, Area, Year}

// Field returns the record field a category draws its options from.
func (c Category) Field() model.Field {
	switch c {
	case Task:
		return model.FieldTask
	case Modality:
		return model.FieldModalities
	case Area:
		return model.FieldArea
	case Year:
		return model.FieldYearPublished
	}
	return -1
}

// ParseCategory accepts the category name or a plural form of it.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "task", "tasks":
		return Task, true
	case "modality", "modalities":
		return Modality, true
	case "area", "areas":
		return Area, true
	case "year", "years", "year_published":
		return Year, true
	}
	return "", false
}

// Extract returns the sorted, de-duplicated atoms of field across records.
// Values are compared byte-wise and case-sensitively; empty atoms are
// dropped. An empty record set yields an empty, non-nil slice.
func Extract(records []model.Record, field model.Field) []string {
	set := make(map[string]struct{}, 64)
	for i := range records {
		v := records[i].Get(field)
		if v == "" {
			continue
		}
		for _, a := range model.Atoms(v) {
			set[a] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Options holds the option list of every category.
type Options struct {
	Tasks      []string `json:"tasks"`
	Modalities []string `json:"modalities"`
	Areas      []string `json:"areas"`
	Years      []string `json:"years"`
}

// ExtractAll computes all four option lists in one call.
func ExtractAll(records []model.Record) Options {
	return Options{
		Tasks:      Extract(records, Task.Field()),
		Modalities: Extract(records, Modality.Field()),
		Areas:      Extract(records, Area.Field()),
		Years:      Extract(records, Year.Field()),
	}
}

// Get returns the option list of c.
func (o Options) Get(c Category) []string {
	switch c {
	case Task:
		return o.Tasks
	case Modality:
		return o.Modalities
	case Area:
		return o.Areas
	case Year:
		return o.Years
	}
	return nil
}

// DefaultLimit is how many options a facet panel lists before asking the
// user to search.
const DefaultLimit = 20

// Narrow filters options by a case-insensitive substring and caps the
// result at limit (limit <= 0 means no cap). total is the match count
// before capping.
func Narrow(values []string, search string, limit int) (shown []string, total int) {
	matched := values
	if search != "" {
		q := strings.ToLower(search)
		matched = make([]string, 0, len(values))
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), q) {
				matched = append(matched, v)
			}
		}
	}
	total = len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total
}
