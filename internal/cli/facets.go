package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"benchscope/internal/facet"
	"benchscope/internal/index"
)

type facetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type facetList struct {
	Category facet.Category `json:"category"`
	Total    int            `json:"total"`
	Options  []facetOption  `json:"options"`
}

func newFacetsCmd(a *app) *cobra.Command {
	var (
		search string
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "facets [task|modality|area|year]",
		Short: "List filter options with dataset counts",
		Long: `Lists the distinct options of each facet across the whole dataset.
Task and modality values are split on commas; area and year are listed
as they appear.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := facet.Categories
			if len(args) == 1 {
				c, ok := facet.ParseCategory(args[0])
				if !ok {
					return fmt.Errorf("unknown facet %q (want task, modality, area or year)", args[0])
				}
				cats = []facet.Category{c}
			}
			res, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			recs := res.Store.Records()
			idx := index.Build(recs)
			lists := make([]facetList, 0, len(cats))
			for _, c := range cats {
				shown, total := facet.Narrow(facet.Extract(recs, c.Field()), search, limit)
				fl := facetList{Category: c, Total: total, Options: make([]facetOption, len(shown))}
				for i, v := range shown {
					fl.Options[i] = facetOption{Value: v, Count: idx.Count(c, v)}
				}
				lists = append(lists, fl)
			}
			if asJSON {
				data, err := json.MarshalIndent(lists, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal facets: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}
			for i, fl := range lists {
				if i > 0 {
					cmd.Println()
				}
				if len(fl.Options) < fl.Total {
					cmd.Printf("%s (showing %d of %d)\n", fl.Category, len(fl.Options), fl.Total)
				} else {
					cmd.Printf("%s (%d)\n", fl.Category, fl.Total)
				}
				for _, o := range fl.Options {
					cmd.Printf("  %-48s %d\n", o.Value, o.Count)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "only options containing this text (case-insensitive)")
	cmd.Flags().IntVarP(&limit, "limit", "n", facet.DefaultLimit, "maximum options per facet (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
