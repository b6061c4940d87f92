package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/resale_ledger/internal/platform/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version and commit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit:  %s\n", version.Version, version.Commit)
		},
	}
}
