package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"benchscope/internal/filter"
	"benchscope/internal/model"
	"benchscope/internal/util/logx"
)

type searchResult struct {
	Total   int            `json:"total"`
	Matched int            `json:"matched"`
	Records []model.Record `json:"records"`
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		sf     selectionFlags
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Print datasets matching a query and filters",
		Long: `Matches the query case-insensitively against dataset id, task, subtask,
description and area, then applies facet and expression filters.
Values inside one facet are OR-ed; different facets are AND-ed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			sel, err := sf.build(query)
			if err != nil {
				return err
			}
			res, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			start := time.Now()
			matched := filter.NewEngine(res.Store).Filter(sel)
			logx.Debugf("search: %s matched %d in %s", sel, len(matched), time.Since(start))
			out := searchResult{Total: res.Store.Len(), Matched: len(matched), Records: matched}
			if limit > 0 && len(out.Records) > limit {
				out.Records = out.Records[:limit]
			}
			if asJSON {
				return outputSearchJSON(cmd, out)
			}
			return outputSearchTable(cmd, out)
		},
	}
	sf.bind(cmd.Flags())
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of results (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

func outputSearchJSON(cmd *cobra.Command, res searchResult) error {
	if res.Records == nil {
		res.Records = []model.Record{}
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, res searchResult) error {
	if res.Matched == 0 {
		cmd.Printf("No datasets match (0 of %d).\n", res.Total)
		return nil
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(cellStyle).
		Headers("ID", "TASK", "AREA", "YEAR", "MODALITIES")
	for i := range res.Records {
		r := &res.Records[i]
		t.Row(r.ID, clip(r.Task, 40), clip(r.Area, 30), r.YearPublished, clip(r.Modalities, 24))
	}
	cmd.Println(t.String())
	if len(res.Records) < res.Matched {
		cmd.Printf("showing %d of %d matches (%d datasets total)\n", len(res.Records), res.Matched, res.Total)
	} else {
		cmd.Printf("%d of %d datasets\n", res.Matched, res.Total)
	}
	return nil
}

// cellStyle pads every cell. Columns are sized to their widest rendered
// cell and the row renderer reserves room for its "…" tail, so unpadded
// cells that fill their column would lose their last rune.
func cellStyle(row, _ int) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	if row == 0 {
		return st.Bold(true)
	}
	return st
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
