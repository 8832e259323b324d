package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"benchscope/internal/export"
	"benchscope/internal/filter"
	"benchscope/internal/util/logx"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		sf     selectionFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "export [query]",
		Short: "Write the filtered datasets as CSV or NDJSON",
		Long: `Applies the same query and filters as search and writes every match.
The destination is --out; without it (or with "-") records go to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.ExportFormat
			}
			if format == "" {
				format = string(export.FormatCSV)
			}
			f := export.Format(format)
			if f != export.FormatCSV && f != export.FormatJSON {
				return fmt.Errorf("--format must be csv or json, got %q", format)
			}
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
			recs := filter.NewEngine(res.Store).Filter(sel)
			out := a.cfg.ExportOut
			if out == "" || out == "-" {
				if f == export.FormatJSON {
					return export.WriteNDJSON(cmd.OutOrStdout(), recs)
				}
				return export.WriteCSV(cmd.OutOrStdout(), recs)
			}
			if err := export.ToFile(out, f, recs); err != nil {
				return err
			}
			logx.Infof("export: wrote %d records to %s (%s)", len(recs), out, f)
			return nil
		},
	}
	sf.bind(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", "", "csv or json (NDJSON); defaults to --export or csv")
	return cmd
}
