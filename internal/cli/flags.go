package cli

import (
	"github.com/spf13/pflag"

	"benchscope/internal/facet"
	"benchscope/internal/selection"
)

// selectionFlags are the filter flags shared by search and export.
type selectionFlags struct {
	tasks      []string
	modalities []string
	areas      []string
	years      []string
	expr       string
}

func (f *selectionFlags) bind(fs *pflag.FlagSet) {
	// StringArray keeps commas inside values such as "Computer Vision, Graphics"
	fs.StringArrayVar(&f.tasks, "task", nil, "only datasets with this task (repeatable)")
	fs.StringArrayVar(&f.modalities, "modality", nil, "only datasets with this modality (repeatable)")
	fs.StringArrayVar(&f.areas, "area", nil, "only datasets in this area (repeatable)")
	fs.StringArrayVar(&f.years, "year", nil, "only datasets published in this year (repeatable)")
	fs.StringVar(&f.expr, "expr", "", `expression filter, e.g. 'year_num >= 2018 && license != ""'`)
}

func (f *selectionFlags) build(query string) (*selection.State, error) {
	s := selection.New()
	s.SetQuery(query)
	add := func(c facet.Category, vals []string) {
		for _, v := range vals {
			s.Toggle(c, v, true)
		}
	}
	add(facet.Task, f.tasks)
	add(facet.Modality, f.modalities)
	add(facet.Area, f.areas)
	s.SetYears(f.years)
	if err := s.SetExpr(f.expr); err != nil {
		return nil, err
	}
	return s, nil
}
