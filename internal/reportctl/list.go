package reportctl

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List the resources that have a report",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, closeFn, err := rootOpts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			for _, name := range cat.Reports() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
