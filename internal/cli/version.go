package cli

import (
	"github.com/spf13/cobra"

	"benchscope/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("benchscope version %s\n", version.String())
		},
	}
}
